// Package permit holds the mutable application data the wizard collects:
// the property description and the pool specification. Values are plain
// strings the way the form captures them; semantic validation (ranges,
// units, legal rules) is the compliance service's job, not ours.
package permit

import (
	"fmt"
	"strconv"
	"strings"
)

// Zoning classifies the property's zoning designation.
type Zoning string

const (
	ZoningResidential Zoning = "residential"
	ZoningCommercial  Zoning = "commercial"
	ZoningMixed       Zoning = "mixed"
)

// ZoningValues returns every selectable zoning designation in display order.
func ZoningValues() []Zoning {
	return []Zoning{ZoningResidential, ZoningCommercial, ZoningMixed}
}

// PropertyType classifies the dwelling on the property.
type PropertyType string

const (
	PropertySingleFamily PropertyType = "single-family"
	PropertyMultiFamily  PropertyType = "multi-family"
	PropertyCondo        PropertyType = "condo"
	PropertyTownhouse    PropertyType = "townhouse"
)

// PropertyTypeValues returns every selectable property type in display order.
func PropertyTypeValues() []PropertyType {
	return []PropertyType{PropertySingleFamily, PropertyMultiFamily, PropertyCondo, PropertyTownhouse}
}

// PoolType distinguishes inground from aboveground construction.
type PoolType string

const (
	PoolInground    PoolType = "inground"
	PoolAboveground PoolType = "aboveground"
)

// PoolTypeValues returns every selectable pool type in display order.
func PoolTypeValues() []PoolType {
	return []PoolType{PoolInground, PoolAboveground}
}

// HeatingType identifies the heater technology. Only meaningful while
// Heating is true; the store clears it when heating is switched off.
type HeatingType string

const (
	HeatingGas      HeatingType = "gas"
	HeatingElectric HeatingType = "electric"
	HeatingSolar    HeatingType = "solar"
	HeatingHeatPump HeatingType = "heat-pump"
)

// HeatingTypeValues returns every selectable heating type in display order.
func HeatingTypeValues() []HeatingType {
	return []HeatingType{HeatingGas, HeatingElectric, HeatingSolar, HeatingHeatPump}
}

// PropertyInfo describes the property the pool will be built on.
// All fields are free-form user input; decimal fields stay strings.
type PropertyInfo struct {
	Address      string       `json:"address"`
	LotSize      string       `json:"lotSize"`
	Zoning       Zoning       `json:"zoning"`
	PropertyType PropertyType `json:"propertyType"`
}

// PoolInfo describes the pool being applied for. Dimensions are decimal
// strings in feet.
type PoolInfo struct {
	PoolType    PoolType    `json:"poolType"`
	Length      string      `json:"length"`
	Width       string      `json:"width"`
	Depth       string      `json:"depth"`
	Heating     bool        `json:"heating"`
	Lighting    bool        `json:"lighting"`
	DivingBoard bool        `json:"divingBoard"`
	Fence       bool        `json:"fence"`
	HeatingType HeatingType `json:"heatingType,omitempty"`
}

// Entity names the record an edit targets.
type Entity string

const (
	EntityProperty Entity = "property"
	EntityPool     Entity = "pool"
)

// DefaultProperty returns the placeholder property seeded when a new
// application starts.
func DefaultProperty() PropertyInfo {
	return PropertyInfo{
		Address:      "123 Main Street, Springfield",
		LotSize:      "0.25",
		Zoning:       ZoningResidential,
		PropertyType: PropertySingleFamily,
	}
}

// DefaultPool returns the placeholder pool specification seeded when a new
// application starts.
func DefaultPool() PoolInfo {
	return PoolInfo{
		PoolType:    PoolInground,
		Length:      "30",
		Width:       "15",
		Depth:       "6",
		Heating:     true,
		Lighting:    true,
		DivingBoard: false,
		Fence:       true,
		HeatingType: HeatingGas,
	}
}

// Store owns the property and pool values for the active application.
// It is seeded with the defaults and mutated only through Edit.
type Store struct {
	property PropertyInfo
	pool     PoolInfo
}

// NewStore creates a store seeded with the default example values.
func NewStore() *Store {
	s := &Store{}
	s.Reset()
	return s
}

// Reset restores both records to their default seed values.
func (s *Store) Reset() {
	s.property = DefaultProperty()
	s.pool = DefaultPool()
}

// Property returns a copy of the current property record.
func (s *Store) Property() PropertyInfo {
	return s.property
}

// Pool returns a copy of the current pool record.
func (s *Store) Pool() PoolInfo {
	return s.pool
}

// Edit applies a single keyed mutation to the named entity. Boolean fields
// accept "true"/"false"; enum fields accept their string value verbatim.
func (s *Store) Edit(entity Entity, key, value string) error {
	switch entity {
	case EntityProperty:
		return s.editProperty(key, value)
	case EntityPool:
		return s.editPool(key, value)
	default:
		return fmt.Errorf("permit: unknown entity %q", entity)
	}
}

func (s *Store) editProperty(key, value string) error {
	switch key {
	case "address":
		s.property.Address = value
	case "lotSize":
		s.property.LotSize = value
	case "zoning":
		s.property.Zoning = Zoning(value)
	case "propertyType":
		s.property.PropertyType = PropertyType(value)
	default:
		return fmt.Errorf("permit: unknown property field %q", key)
	}
	return nil
}

func (s *Store) editPool(key, value string) error {
	switch key {
	case "poolType":
		s.pool.PoolType = PoolType(value)
	case "length":
		s.pool.Length = value
	case "width":
		s.pool.Width = value
	case "depth":
		s.pool.Depth = value
	case "heatingType":
		s.pool.HeatingType = HeatingType(value)
	case "heating", "lighting", "divingBoard", "fence":
		flag, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("permit: field %q expects a boolean: %w", key, err)
		}
		switch key {
		case "heating":
			s.pool.Heating = flag
			if !flag {
				// heatingType is meaningless without heating
				s.pool.HeatingType = ""
			}
		case "lighting":
			s.pool.Lighting = flag
		case "divingBoard":
			s.pool.DivingBoard = flag
		case "fence":
			s.pool.Fence = flag
		}
	default:
		return fmt.Errorf("permit: unknown pool field %q", key)
	}
	return nil
}

// filled reports whether a free-form value carries content. Whitespace-only
// input counts as not provided.
func filled(value string) bool {
	return strings.TrimSpace(value) != ""
}

// PropertyComplete reports whether every property field has been provided.
func PropertyComplete(p PropertyInfo) bool {
	return filled(p.Address) &&
		filled(p.LotSize) &&
		filled(string(p.Zoning)) &&
		filled(string(p.PropertyType))
}

// PoolComplete reports whether the pool specification can leave the pool
// step: type and all three dimensions present, and a heating type chosen
// whenever heating is enabled.
func PoolComplete(p PoolInfo) bool {
	if !filled(string(p.PoolType)) || !filled(p.Length) || !filled(p.Width) || !filled(p.Depth) {
		return false
	}
	if p.Heating && !filled(string(p.HeatingType)) {
		return false
	}
	return true
}
