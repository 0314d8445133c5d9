// Package segment splits converted document text into paragraph units for
// the downstream classifier and extractor.
package segment

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Paragraphs splits a UTF-8 text blob into trimmed, non-empty paragraph
// strings on one-or-more newline boundaries. Input is NFC-normalized first
// so that dash and quote variants produced by word processors compare
// predictably in the recognizer patterns. Pure and total: never fails on
// valid UTF-8 text.
func Paragraphs(text string) []string {
	text = norm.NFC.String(text)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var paragraphs []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		paragraphs = append(paragraphs, trimmed)
	}
	return paragraphs
}
