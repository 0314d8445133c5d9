package citation

import (
	"regexp"
	"strings"

	"github.com/coolbeans/attex/pkg/dialect"
)

var (
	// whitespaceRunPattern collapses internal whitespace runs.
	whitespaceRunPattern = regexp.MustCompile(`\s+`)

	// pageRefPattern removes page-reference fragments like ", pages 12-13",
	// "page 7", or "pp. 3, 5".
	pageRefPattern = regexp.MustCompile(`(?i)[,;\s]*\b(?:pages?|pp\.)\s*\d+(?:\s*[-–—,]\s*\d+)*`)

	// leadingJunkPattern strips stray dashes, colons, and commas left at the
	// start of a sliced description.
	leadingJunkPattern = regexp.MustCompile(`^[\s\-–—−:;,]+`)

	// trailingJunkPattern strips dangling punctuation from the end of a
	// description before the terminal period is applied.
	trailingJunkPattern = regexp.MustCompile(`[\s\-–—−:;,.]+$`)

	// trailingParenPattern drops unmatched closing parentheses left behind
	// by anchor slicing.
	trailingParenPattern = regexp.MustCompile(`\)+$`)

	// isCommaAvailablePattern fixes the "is, available at" comma splice.
	isCommaAvailablePattern = regexp.MustCompile(`(?i)\bis,\s+available\s+at\b`)

	// danglingAvailableAtPattern matches an "available at" phrase left at
	// the end of a description when its URL broke onto the next line.
	danglingAvailableAtPattern = regexp.MustCompile(`(?i),?\s*\bavailable\s+at\s*[:\-–—]?\s*$`)

	// bareCVPattern matches a description that opens with an unqualified
	// "CV" token.
	bareCVPattern = regexp.MustCompile(`^CV\b`)
)

// Cleaner normalizes raw citation descriptions into their stored form.
// Pure string transform; safe for concurrent use.
type Cleaner struct {
	profile dialect.Profile
}

// NewCleaner creates a cleaner for the given dialect.
func NewCleaner(d dialect.Dialect) *Cleaner {
	return &Cleaner{profile: d.Profile()}
}

// Clean normalizes a raw citation into its final form. Returns false when
// the citation is unusable (no description text survives cleaning, or the
// number is not positive); such units are skipped, never fatal.
func (c *Cleaner) Clean(raw Raw) (Citation, bool) {
	if raw.Num <= 0 {
		return Citation{}, false
	}

	desc := raw.Desc
	url := raw.URL
	if url == "" {
		// Descriptions assembled outside the recognizers may still carry
		// the clause inline.
		desc, url = extractURL(desc)
	}

	desc = whitespaceRunPattern.ReplaceAllString(desc, " ")
	desc = pageRefPattern.ReplaceAllString(desc, "")
	desc = danglingAvailableAtPattern.ReplaceAllString(desc, "")
	desc = leadingJunkPattern.ReplaceAllString(desc, "")
	desc = trailingParenPattern.ReplaceAllString(strings.TrimSpace(desc), "")
	desc = trailingJunkPattern.ReplaceAllString(desc, "")

	if c.profile.Dialect == dialect.FreeText {
		desc = polishCV(desc)
	}

	if desc == "" {
		return Citation{}, false
	}

	// A description ending in a URL takes no terminal period; anything else
	// takes exactly one.
	if url != "" {
		desc = desc + ", available at " + url
		desc = isCommaAvailablePattern.ReplaceAllString(desc, "is available at")
	} else {
		desc += "."
	}

	return Citation{Num: raw.Num, Desc: desc}, true
}

// polishCV expands a bare leading "CV" token to "Petitioner's CV". Skipped
// when the description is already qualified.
func polishCV(desc string) string {
	if !bareCVPattern.MatchString(desc) {
		return desc
	}
	return "Petitioner's CV" + desc[len("CV"):]
}
