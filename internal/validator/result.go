package validator

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Status is the overall verdict of a compliance check.
type Status string

const (
	StatusComplete   Status = "complete"
	StatusIncomplete Status = "incomplete"
)

// Checklist item outcomes.
const (
	CheckPass = "pass"
	CheckFail = "fail"
)

// ChecklistItem is one line of the compliance report, in the order the
// service returned it.
type ChecklistItem struct {
	Item    string `json:"item"`
	Status  string `json:"status"`
	Details string `json:"details,omitempty"`
}

// Passed reports whether this checklist line passed.
func (c ChecklistItem) Passed() bool {
	return c.Status == CheckPass
}

// Result is the structured compliance report parsed from the service
// response. The summaries echo back what the service actually validated,
// which may differ from the local form if the narrative was misread.
type Result struct {
	ValidationStatus Status            `json:"validation_status"`
	Checklist        []ChecklistItem   `json:"checklist"`
	PropertySummary  map[string]string `json:"property_summary,omitempty"`
	PoolSummary      map[string]string `json:"pool_summary,omitempty"`
	DocumentStatus   map[string]string `json:"document_status,omitempty"`
	MissingItems     []string          `json:"missing_items,omitempty"`
	ComplianceNotes  []string          `json:"compliance_notes,omitempty"`
}

// Complete reports whether the service judged the application complete.
func (r *Result) Complete() bool {
	return r != nil && r.ValidationStatus == StatusComplete
}

// resultSchema is the contract a payload must satisfy before it is accepted
// as a Result. Parsing is all-or-nothing: a payload that fails the schema is
// rejected entirely rather than mapped into a partial report.
const resultSchema = `{
	"type": "object",
	"required": ["validation_status", "checklist"],
	"properties": {
		"validation_status": {"type": "string", "enum": ["complete", "incomplete"]},
		"checklist": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["item", "status"],
				"properties": {
					"item": {"type": "string"},
					"status": {"type": "string", "enum": ["pass", "fail"]},
					"details": {"type": "string"}
				}
			}
		},
		"property_summary": {"type": "object", "additionalProperties": {"type": "string"}},
		"pool_summary": {"type": "object", "additionalProperties": {"type": "string"}},
		"document_status": {"type": "object", "additionalProperties": {"type": "string"}},
		"missing_items": {"type": "array", "items": {"type": "string"}},
		"compliance_notes": {"type": "array", "items": {"type": "string"}}
	}
}`

var resultSchemaLoader = gojsonschema.NewStringLoader(resultSchema)

// parseResult interprets raw as a Result payload. The service may wrap the
// report in a "result" field or return it as the response body itself; both
// shapes are accepted. Anything else fails with ErrMalformedResponse.
func parseResult(raw json.RawMessage) (*Result, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty response payload", ErrMalformedResponse)
	}

	var envelope struct {
		Result json.RawMessage `json:"result"`
	}
	payload := raw
	if err := json.Unmarshal(raw, &envelope); err == nil && len(envelope.Result) > 0 && string(envelope.Result) != "null" {
		payload = envelope.Result
	}

	check, err := gojsonschema.Validate(resultSchemaLoader, gojsonschema.NewBytesLoader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if !check.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrMalformedResponse, describeSchemaErrors(check))
	}

	var result Result
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return &result, nil
}

func describeSchemaErrors(check *gojsonschema.Result) string {
	var parts []string
	for _, desc := range check.Errors() {
		parts = append(parts, desc.String())
	}
	return strings.Join(parts, "; ")
}
