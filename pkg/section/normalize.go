package section

import (
	"fmt"
	"regexp"
	"strings"
)

// pronounRule rewrites a first-person phrase into its third-person form.
// The template's %s slot receives the dialect-cased "Petitioner" token.
type pronounRule struct {
	pattern  *regexp.Regexp
	template string
}

// pronounRules run in order: multi-word phrase patterns first, so that the
// generic standalone-pronoun substitutions at the end never fire inside a
// phrase that needs different grammar ("that I have" -> "that Petitioner
// has", not "that Petitioner have"). The bare "I" rule is case-sensitive;
// a lowercase "i" standing alone is noise, not a pronoun worth rewriting.
var pronounRules = []pronounRule{
	{regexp.MustCompile(`(?i)\babout me\b`), "about %s"},
	{regexp.MustCompile(`(?i)\bthat I have\b`), "that %s has"},
	{regexp.MustCompile(`(?i)\bof my\b`), "of %s's"},
	{regexp.MustCompile(`(?i)\bI have\b`), "%s has"},
	{regexp.MustCompile(`(?i)\bI am\b`), "%s is"},
	{regexp.MustCompile(`(?i)\bmy\b`), "%s's"},
	{regexp.MustCompile(`(?i)\bme\b`), "%s"},
	{regexp.MustCompile(`\bI\b`), "%s"},
}

// normalizePronouns replaces first-person references in a heading with
// third-person "Petitioner" forms. Best-effort text polish, not a
// grammatical model: headings are short and formulaic enough that the
// ordered phrase list covers the forms that occur in practice.
func normalizePronouns(heading, petitioner string) string {
	for _, rule := range pronounRules {
		replacement := fmt.Sprintf(rule.template, petitioner)
		heading = rule.pattern.ReplaceAllString(heading, replacement)
	}
	return heading
}

// canonicalHeading maps a keyword fingerprint to a fixed heading string.
type canonicalHeading struct {
	keywords  []string
	canonical string
}

// canonicalHeadings collapses known near-duplicate headings that appear
// under slightly different wording across documents, so the same logical
// section is never emitted twice.
var canonicalHeadings = []canonicalHeading{
	{
		keywords:  []string{"PUBLISHED MATERIAL", "ABOUT"},
		canonical: "EVIDENCE OF PUBLISHED MATERIAL ABOUT PETITIONER",
	},
	{
		keywords:  []string{"JUDGE", "WORK OF OTHERS"},
		canonical: "EVIDENCE OF PARTICIPATION AS A JUDGE OF THE WORK OF OTHERS",
	},
}

// canonicalizeHeading replaces a heading with its canonical form when it
// carries all of a known fingerprint's keywords.
func canonicalizeHeading(heading string) string {
	upper := strings.ToUpper(heading)
	for _, candidate := range canonicalHeadings {
		allPresent := true
		for _, keyword := range candidate.keywords {
			if !strings.Contains(upper, keyword) {
				allPresent = false
				break
			}
		}
		if allPresent {
			return candidate.canonical
		}
	}
	return heading
}
