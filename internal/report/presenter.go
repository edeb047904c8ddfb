// Package report maps a validation result into what the results screen
// shows and into the downloadable text artifact. The summaries it presents
// come from the validator's echo, not the local form, so the screen reflects
// what was actually validated.
package report

import (
	"sort"

	"poolpermit/internal/validator"
)

// Tone frames the results banner.
type Tone string

const (
	TonePositive   Tone = "positive"
	ToneCorrective Tone = "corrective"
)

// Banner is the headline block at the top of the results screen.
type Banner struct {
	Tone     Tone
	Headline string
	Detail   string
}

// Row is one rendered checklist line, in the order the service returned it.
type Row struct {
	Item    string
	Passed  bool
	Details string
}

// Field is one labeled summary value.
type Field struct {
	Label string
	Value string
}

// View is the display model for the results screen. MissingItems and
// ComplianceNotes are nil when the service reported none, so the sections
// are omitted entirely rather than rendered empty.
type View struct {
	Banner          Banner
	Checklist       []Row
	MissingItems    []string
	ComplianceNotes []string
	PropertySummary []Field
	PoolSummary     []Field
	DocumentStatus  []Field
	CanDownload     bool
}

// propertyFieldOrder and poolFieldOrder pin the echoed summary fields to the
// form's order; keys the service adds beyond these sort alphabetically after.
var propertyFieldOrder = []string{"address", "lotSize", "zoning", "propertyType"}

var poolFieldOrder = []string{"poolType", "length", "width", "depth", "heating", "heatingType", "lighting", "divingBoard", "fence"}

// Present builds the display model for a validation result.
func Present(result *validator.Result) View {
	view := View{
		Banner:          banner(result),
		MissingItems:    copyList(result.MissingItems),
		ComplianceNotes: copyList(result.ComplianceNotes),
		PropertySummary: orderedFields(result.PropertySummary, propertyFieldOrder),
		PoolSummary:     orderedFields(result.PoolSummary, poolFieldOrder),
		DocumentStatus:  orderedFields(result.DocumentStatus, nil),
		CanDownload:     result.Complete(),
	}
	for _, item := range result.Checklist {
		view.Checklist = append(view.Checklist, Row{
			Item:    item.Item,
			Passed:  item.Passed(),
			Details: item.Details,
		})
	}
	return view
}

func banner(result *validator.Result) Banner {
	if result.Complete() {
		return Banner{
			Tone:     TonePositive,
			Headline: "Application Complete",
			Detail:   "Your pool permit application passed the compliance review.",
		}
	}
	return Banner{
		Tone:     ToneCorrective,
		Headline: "Application Incomplete",
		Detail:   "The compliance review found items that need attention before this application can be approved.",
	}
}

func copyList(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}

// orderedFields flattens a summary map using the preferred key order first,
// then any remaining keys alphabetically.
func orderedFields(summary map[string]string, preferred []string) []Field {
	if len(summary) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(summary))
	var fields []Field
	for _, key := range preferred {
		if value, ok := summary[key]; ok {
			fields = append(fields, Field{Label: key, Value: value})
			seen[key] = true
		}
	}
	var rest []string
	for key := range summary {
		if !seen[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	for _, key := range rest {
		fields = append(fields, Field{Label: key, Value: summary[key]})
	}
	return fields
}
