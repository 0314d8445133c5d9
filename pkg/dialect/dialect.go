// Package dialect identifies the two cover-letter conventions the extraction
// pipeline understands and exposes their behavioral differences as a small
// strategy value shared by the classifier, resolver, and orderer.
package dialect

import (
	"fmt"
	"strings"
)

// Dialect selects one of the two recognized document conventions.
type Dialect string

const (
	// FreeText is the keyword-headed free-text convention: section headers
	// begin with a small fixed set of uppercase evidentiary phrases.
	FreeText Dialect = "freetext"

	// Outline is the Roman-numeral outline convention: section headers carry
	// an "I.", "II.", ... prefix followed by a title.
	Outline Dialect = "outline"
)

// Parse resolves a user-supplied dialect name.
// Accepts the canonical names plus the legacy single-letter aliases.
func Parse(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "freetext", "free-text", "a":
		return FreeText, nil
	case "outline", "b":
		return Outline, nil
	default:
		return "", fmt.Errorf("unknown dialect: %q (use freetext or outline)", name)
	}
}

// Profile captures the dialect-specific behavior of the shared pipeline.
// Both legacy extraction variants collapse into parameterizations of the
// same six-stage flow through this value.
type Profile struct {
	Dialect Dialect

	// StrictAssignment enforces document-wide uniqueness of attachment
	// numbers: once a number is assigned to a section it may not move to a
	// later one, and a pre-section citation vacates its slot when the same
	// number reappears inside a real section.
	StrictAssignment bool

	// OutlineOrdered sorts sections by the numeric value of their leading
	// Roman-numeral prefix instead of document-encounter order.
	OutlineOrdered bool

	// UppercaseHeaders normalizes accepted section headers to upper case.
	UppercaseHeaders bool
}

// Profile returns the behavior profile for the dialect.
func (d Dialect) Profile() Profile {
	switch d {
	case Outline:
		return Profile{
			Dialect:          Outline,
			StrictAssignment: true,
			OutlineOrdered:   true,
		}
	default:
		return Profile{
			Dialect:          FreeText,
			UppercaseHeaders: true,
		}
	}
}

// String returns the canonical dialect name.
func (d Dialect) String() string {
	return string(d)
}
