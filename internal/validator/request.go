package validator

import (
	"fmt"
	"strings"

	"poolpermit/internal/permit"
)

// BuildNarrative renders the application into the fixed free-text template
// the compliance service expects. Only category names are listed for
// documents; file bytes stay local.
func BuildNarrative(property permit.PropertyInfo, pool permit.PoolInfo, categories []string) string {
	var b strings.Builder

	b.WriteString("Please validate the following swimming pool permit application for municipal compliance.\n\n")

	b.WriteString("PROPERTY INFORMATION:\n")
	fmt.Fprintf(&b, "Address: %s\n", property.Address)
	fmt.Fprintf(&b, "Lot Size: %s acres\n", property.LotSize)
	fmt.Fprintf(&b, "Zoning: %s\n", property.Zoning)
	fmt.Fprintf(&b, "Property Type: %s\n\n", property.PropertyType)

	b.WriteString("POOL SPECIFICATIONS:\n")
	fmt.Fprintf(&b, "Pool Type: %s\n", pool.PoolType)
	fmt.Fprintf(&b, "Dimensions: %s ft x %s ft, %s ft deep\n", pool.Length, pool.Width, pool.Depth)
	if pool.Heating {
		fmt.Fprintf(&b, "Heating: yes (%s)\n", pool.HeatingType)
	} else {
		b.WriteString("Heating: no\n")
	}
	fmt.Fprintf(&b, "Lighting: %s\n", yesNo(pool.Lighting))
	fmt.Fprintf(&b, "Diving Board: %s\n", yesNo(pool.DivingBoard))
	fmt.Fprintf(&b, "Safety Fence: %s\n\n", yesNo(pool.Fence))

	b.WriteString("SUBMITTED DOCUMENTS:\n")
	if len(categories) == 0 {
		b.WriteString("No documents attached.\n")
	} else {
		for _, category := range categories {
			fmt.Fprintf(&b, "- %s\n", category)
		}
	}

	b.WriteString("\nReturn a structured validation report with an overall validation_status, a per-requirement checklist, echoed property and pool summaries, the status of each expected document, any missing items, and compliance notes.\n")

	return b.String()
}

func yesNo(flag bool) string {
	if flag {
		return "yes"
	}
	return "no"
}
