package permit

import "testing"

func TestStoreSeedsDefaults(t *testing.T) {
	s := NewStore()

	property := s.Property()
	if property.Address != "123 Main Street, Springfield" {
		t.Fatalf("default address = %q", property.Address)
	}
	if property.Zoning != ZoningResidential || property.PropertyType != PropertySingleFamily {
		t.Fatalf("default property enums = %q/%q", property.Zoning, property.PropertyType)
	}

	pool := s.Pool()
	if pool.PoolType != PoolInground || pool.Length != "30" || pool.Width != "15" || pool.Depth != "6" {
		t.Fatalf("default pool = %+v", pool)
	}
	if !pool.Heating || pool.HeatingType != HeatingGas {
		t.Fatalf("default heating = %v/%q", pool.Heating, pool.HeatingType)
	}
	if pool.DivingBoard {
		t.Fatalf("diving board should default off")
	}
}

func TestEditFields(t *testing.T) {
	s := NewStore()

	if err := s.Edit(EntityProperty, "address", "456 Elm Avenue"); err != nil {
		t.Fatalf("edit address: %v", err)
	}
	if err := s.Edit(EntityPool, "length", "42.5"); err != nil {
		t.Fatalf("edit length: %v", err)
	}
	if err := s.Edit(EntityPool, "divingBoard", "true"); err != nil {
		t.Fatalf("edit divingBoard: %v", err)
	}

	if got := s.Property().Address; got != "456 Elm Avenue" {
		t.Fatalf("address = %q", got)
	}
	if got := s.Pool().Length; got != "42.5" {
		t.Fatalf("length = %q", got)
	}
	if !s.Pool().DivingBoard {
		t.Fatalf("divingBoard not set")
	}
}

func TestEditRejectsUnknownTargets(t *testing.T) {
	s := NewStore()

	if err := s.Edit("vehicle", "address", "x"); err == nil {
		t.Fatalf("unknown entity accepted")
	}
	if err := s.Edit(EntityProperty, "color", "blue"); err == nil {
		t.Fatalf("unknown property field accepted")
	}
	if err := s.Edit(EntityPool, "heating", "maybe"); err == nil {
		t.Fatalf("non-boolean accepted for heating")
	}
}

func TestHeatingOffClearsHeatingType(t *testing.T) {
	s := NewStore()
	if err := s.Edit(EntityPool, "heating", "false"); err != nil {
		t.Fatalf("edit heating: %v", err)
	}
	pool := s.Pool()
	if pool.Heating {
		t.Fatalf("heating still on")
	}
	if pool.HeatingType != "" {
		t.Fatalf("heatingType = %q, want cleared", pool.HeatingType)
	}
}

func TestResetRestoresDefaults(t *testing.T) {
	s := NewStore()
	if err := s.Edit(EntityProperty, "address", ""); err != nil {
		t.Fatalf("edit: %v", err)
	}
	s.Reset()
	if s.Property() != DefaultProperty() {
		t.Fatalf("property not reseeded: %+v", s.Property())
	}
	if s.Pool() != DefaultPool() {
		t.Fatalf("pool not reseeded: %+v", s.Pool())
	}
}

func TestPropertyComplete(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*PropertyInfo)
		complete bool
	}{
		{"defaults", func(p *PropertyInfo) {}, true},
		{"empty address", func(p *PropertyInfo) { p.Address = "" }, false},
		{"whitespace lot size", func(p *PropertyInfo) { p.LotSize = "   " }, false},
		{"no zoning", func(p *PropertyInfo) { p.Zoning = "" }, false},
		{"no property type", func(p *PropertyInfo) { p.PropertyType = "" }, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := DefaultProperty()
			tc.mutate(&p)
			if got := PropertyComplete(p); got != tc.complete {
				t.Fatalf("PropertyComplete = %v, want %v", got, tc.complete)
			}
		})
	}
}

func TestPoolComplete(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*PoolInfo)
		complete bool
	}{
		{"defaults", func(p *PoolInfo) {}, true},
		{"missing depth", func(p *PoolInfo) { p.Depth = "" }, false},
		{"whitespace width", func(p *PoolInfo) { p.Width = "\t" }, false},
		{"heating without type", func(p *PoolInfo) { p.HeatingType = "" }, false},
		{"no heating no type", func(p *PoolInfo) { p.Heating = false; p.HeatingType = "" }, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := DefaultPool()
			tc.mutate(&p)
			if got := PoolComplete(p); got != tc.complete {
				t.Fatalf("PoolComplete = %v, want %v", got, tc.complete)
			}
		})
	}
}
