// Package render serializes a grouped citation result for presentation:
// flattened plain text for clipboard export, ordered JSON for the HTTP
// layer, and a PDF cover sheet.
package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/coolbeans/attex/pkg/group"
)

// Text flattens a grouped result to plain text: for each section in output
// order, the heading line (omitted for the pre-section bucket), one
// "(num) desc" line per citation, then a blank line separating sections.
func Text(result group.GroupedResult) string {
	var out strings.Builder
	for _, sec := range result.Sections {
		if sec.Name != "" {
			out.WriteString(sec.Name)
			out.WriteString("\n")
		}
		for _, item := range sec.Items {
			fmt.Fprintf(&out, "(%d) %s\n", item.Num, item.Desc)
		}
		out.WriteString("\n")
	}
	return out.String()
}

// JSON encodes a grouped result as indented JSON. Sections are a slice, so
// the dialect's output order survives encoding.
func JSON(result group.GroupedResult) ([]byte, error) {
	if result.Sections == nil {
		result.Sections = []group.Section{}
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}
	return data, nil
}
