// Package section classifies document paragraphs as section headers and
// normalizes accepted headings into canonical form.
package section

import (
	"regexp"
	"strings"

	"github.com/coolbeans/attex/pkg/dialect"
)

var (
	// outlineHeaderPattern matches Roman-numeral outline headers like
	// "II. Extraordinary Ability".
	outlineHeaderPattern = regexp.MustCompile(`(?i)^([IVXLCDM]+)\.\s+\S.*$`)

	// outlinePrefixPattern isolates the numeral prefix of an accepted
	// outline heading.
	outlinePrefixPattern = regexp.MustCompile(`(?i)^[IVXLCDM]+\.\s+`)

	// pageRangeParenPattern matches trailing page-range parentheticals like
	// "(Pages 17-26)" that mark table-of-contents echoes.
	pageRangeParenPattern = regexp.MustCompile(`(?i)\(\s*pages?\s+\d+\s*(?:[-–—]\s*\d+)?\s*\)\s*[.:]?\s*$`)

	// dotLeaderPattern matches the dot leaders tables of contents insert
	// between a heading and its page number.
	dotLeaderPattern = regexp.MustCompile(`\.{3,}`)

	// trailingPageNumberPattern matches a bare page number at the end of an
	// outline heading, another table-of-contents echo.
	trailingPageNumberPattern = regexp.MustCompile(`\s\d+$`)

	// whitespaceRunPattern collapses internal whitespace runs.
	whitespaceRunPattern = regexp.MustCompile(`\s+`)

	// trailingPunctuationPattern strips terminal punctuation from an
	// accepted heading.
	trailingPunctuationPattern = regexp.MustCompile(`[.:;,\s]+$`)
)

// freeTextHeaderPrefixes is the fixed keyword set that opens a free-text
// dialect section header. Matching is case-sensitive: the conventions write
// headers in upper case, and a case-insensitive match would misfire on
// narrative sentences beginning with "Evidence".
var freeTextHeaderPrefixes = []string{
	"EVIDENCE",
	"DOCUMENTATION TO ESTABLISH",
	"SUSTAINED NATIONAL OR INTERNATIONAL ACCLAIM",
}

// Classifier decides whether a paragraph is a section header under one
// dialect's header grammar and produces the normalized heading.
// Safe for concurrent use: all state is immutable after construction.
type Classifier struct {
	profile dialect.Profile
}

// NewClassifier creates a classifier for the given dialect.
func NewClassifier(d dialect.Dialect) *Classifier {
	return &Classifier{profile: d.Profile()}
}

// Classify returns the normalized heading and true when the paragraph is an
// accepted section header, or ("", false) for ordinary text. Candidate
// headers containing "CONCLUSION" or looking like table-of-contents echoes
// are rejected and treated as ordinary text.
func (c *Classifier) Classify(paragraph string) (string, bool) {
	trimmed := strings.TrimSpace(paragraph)
	if trimmed == "" {
		return "", false
	}

	if !c.isCandidate(trimmed) {
		return "", false
	}
	if c.isExcluded(trimmed) {
		return "", false
	}

	return c.normalize(trimmed), true
}

// isCandidate checks the dialect's header grammar.
func (c *Classifier) isCandidate(paragraph string) bool {
	if c.profile.Dialect == dialect.Outline {
		return outlineHeaderPattern.MatchString(paragraph)
	}
	for _, prefix := range freeTextHeaderPrefixes {
		if strings.HasPrefix(paragraph, prefix) {
			return true
		}
	}
	return false
}

// isExcluded rejects conclusion headers and table-of-contents echoes.
func (c *Classifier) isExcluded(paragraph string) bool {
	if strings.Contains(strings.ToUpper(paragraph), "CONCLUSION") {
		return true
	}
	if pageRangeParenPattern.MatchString(paragraph) {
		return true
	}
	if c.profile.Dialect == dialect.Outline {
		flattened := strings.TrimSpace(dotLeaderPattern.ReplaceAllString(paragraph, " "))
		if trailingPageNumberPattern.MatchString(flattened) {
			return true
		}
	}
	return false
}

// normalize produces the canonical heading for an accepted header.
func (c *Classifier) normalize(paragraph string) string {
	heading := whitespaceRunPattern.ReplaceAllString(paragraph, " ")
	heading = pageRangeParenPattern.ReplaceAllString(heading, "")
	heading = trailingPunctuationPattern.ReplaceAllString(heading, "")
	heading = strings.TrimSpace(heading)

	// The numeral prefix stays out of pronoun substitution: a bare "I."
	// is a numeral, not a pronoun.
	var prefix string
	if c.profile.Dialect == dialect.Outline {
		if loc := outlinePrefixPattern.FindStringIndex(heading); loc != nil {
			prefix, heading = heading[:loc[1]], heading[loc[1]:]
		}
	}

	// Pronoun substitution runs before upper-casing so the replacement
	// templates keep the dialect's header case.
	heading = normalizePronouns(heading, "Petitioner")

	if c.profile.UppercaseHeaders {
		heading = strings.ToUpper(heading)
		heading = canonicalizeHeading(heading)
	}
	return prefix + heading
}
