// Package pipeline composes the six extraction stages into one synchronous
// pass over a document's text: segmentation, section classification,
// citation recognition, description cleaning, dedup/assignment resolution,
// and section ordering.
package pipeline

import (
	"errors"
	"strings"

	"github.com/coolbeans/attex/pkg/citation"
	"github.com/coolbeans/attex/pkg/dialect"
	"github.com/coolbeans/attex/pkg/group"
	"github.com/coolbeans/attex/pkg/section"
	"github.com/coolbeans/attex/pkg/segment"
)

// ErrEmptyDocument reports that the converted document contained no text.
var ErrEmptyDocument = errors.New("document contains no text")

// Extractor runs the full extraction pipeline for one dialect. All fields
// are immutable after construction; per-call state lives in a resolver
// created inside Extract, so one Extractor is safe for concurrent calls.
type Extractor struct {
	dialect    dialect.Dialect
	classifier *section.Classifier
	cascade    []citation.Recognizer
	cleaner    *citation.Cleaner
}

// New creates an extractor for the given dialect.
func New(d dialect.Dialect) *Extractor {
	return &Extractor{
		dialect:    d,
		classifier: section.NewClassifier(d),
		cascade:    citation.Cascade(),
		cleaner:    citation.NewCleaner(d),
	}
}

// Extract transforms document text into the grouped, deduplicated citation
// list. Deterministic and pure: identical input text yields an identical
// result. Returns ErrEmptyDocument when no non-blank text is present;
// paragraphs that match no recognizer are silently skipped.
func (e *Extractor) Extract(text string) (group.GroupedResult, error) {
	if strings.TrimSpace(text) == "" {
		return group.GroupedResult{}, ErrEmptyDocument
	}

	resolver := group.NewResolver(e.dialect)
	paragraphs := segment.Paragraphs(text)
	for i := 0; i < len(paragraphs); i++ {
		paragraph := paragraphs[i]
		if name, ok := e.classifier.Classify(paragraph); ok {
			resolver.SetSection(name)
			continue
		}
		raws := citation.Extract(paragraph, e.cascade)

		// A line break after "available at" strands the URL on its own
		// paragraph; a bare URL line following a citation paragraph is its
		// continuation, not a unit of its own.
		if len(raws) > 0 && i+1 < len(paragraphs) {
			if url, ok := citation.BareURL(paragraphs[i+1]); ok && citation.AttachContinuationURL(raws, url) {
				i++
			}
		}

		for _, raw := range raws {
			if cleaned, ok := e.cleaner.Clean(raw); ok {
				resolver.Add(cleaned)
			}
		}
	}
	return resolver.Result(), nil
}
