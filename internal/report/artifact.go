package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"poolpermit/internal/validator"
)

// ArtifactFilename is the suggested name for the downloadable summary.
const ArtifactFilename = "pool_permit_application.txt"

var safetyFlagKeys = map[string]bool{
	"heating":     true,
	"lighting":    true,
	"divingBoard": true,
	"fence":       true,
}

// RenderArtifact generates the plain-text application summary from a
// completed validation result. Offering the artifact for an incomplete
// result is an error; the download control must stay hidden until the
// service reports the application complete.
func RenderArtifact(result *validator.Result, generatedAt time.Time) (string, error) {
	if !result.Complete() {
		return "", fmt.Errorf("report: artifact requires a complete validation result, got %q", result.ValidationStatus)
	}

	var b strings.Builder
	b.WriteString("SWIMMING POOL PERMIT APPLICATION\n")
	b.WriteString("================================\n\n")

	b.WriteString("PROPERTY INFORMATION\n")
	writeFields(&b, orderedFields(result.PropertySummary, propertyFieldOrder))
	b.WriteString("\n")

	b.WriteString("POOL SPECIFICATION\n")
	var spec, flags []Field
	for _, field := range orderedFields(result.PoolSummary, poolFieldOrder) {
		if safetyFlagKeys[field.Label] {
			flags = append(flags, field)
		} else {
			spec = append(spec, field)
		}
	}
	writeFields(&b, spec)
	b.WriteString("\n")

	b.WriteString("SAFETY & FEATURES\n")
	writeFields(&b, flags)
	b.WriteString("\n")

	fmt.Fprintf(&b, "Validation Status: %s\n", result.ValidationStatus)
	fmt.Fprintf(&b, "Checklist Items Reviewed: %d\n", len(result.Checklist))
	fmt.Fprintf(&b, "Generated: %s\n", generatedAt.Format(time.RFC1123))

	if len(result.ComplianceNotes) > 0 {
		b.WriteString("\nCOMPLIANCE NOTES\n")
		for _, note := range result.ComplianceNotes {
			fmt.Fprintf(&b, "- %s\n", note)
		}
	}

	return b.String(), nil
}

// WriteArtifact renders the artifact and saves it under dir, returning the
// written path.
func WriteArtifact(result *validator.Result, dir string, generatedAt time.Time) (string, error) {
	content, err := RenderArtifact(result, generatedAt)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("report: ensure export dir: %w", err)
	}
	path := filepath.Join(dir, ArtifactFilename)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("report: write artifact: %w", err)
	}
	return path, nil
}

func writeFields(b *strings.Builder, fields []Field) {
	if len(fields) == 0 {
		b.WriteString("(not reported)\n")
		return
	}
	for _, field := range fields {
		fmt.Fprintf(b, "%s: %s\n", labelFor(field.Label), field.Value)
	}
}

var fieldLabels = map[string]string{
	"address":      "Address",
	"lotSize":      "Lot Size (acres)",
	"zoning":       "Zoning",
	"propertyType": "Property Type",
	"poolType":     "Pool Type",
	"length":       "Length (ft)",
	"width":        "Width (ft)",
	"depth":        "Depth (ft)",
	"heating":      "Heating",
	"heatingType":  "Heating Type",
	"lighting":     "Lighting",
	"divingBoard":  "Diving Board",
	"fence":        "Safety Fence",
}

func labelFor(key string) string {
	if label, ok := fieldLabels[key]; ok {
		return label
	}
	return key
}
