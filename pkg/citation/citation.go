// Package citation provides the attachment-citation recognizer cascade and
// description cleaner for petition cover-letter text. Each recognizer
// matches one citation surface syntax within a paragraph; the first
// recognizer that matches anything in a paragraph is used exclusively for
// that paragraph.
package citation

// Citation is a single parsed reference to an attachment: the document's own
// attachment number and a cleaned, human-readable description.
type Citation struct {
	Num  int    `json:"num"`
	Desc string `json:"desc"`
}

// Raw is a recognizer's output before cleaning: the attachment number, the
// description text as found (with any URL clause extracted out of it), the
// URL if one accompanied the citation, and the byte offset of the match in
// the source paragraph.
type Raw struct {
	Num    int
	Desc   string
	URL    string
	Offset int
}

// Recognizer matches one citation surface syntax within a paragraph.
// Implementations are side-effect-free and safe for concurrent use.
type Recognizer interface {
	// Name returns the human-readable recognizer name.
	Name() string

	// Recognize extracts all citations of this recognizer's form from the
	// paragraph. Returns an empty slice when the form does not occur;
	// declining is expected, not an error.
	Recognize(paragraph string) []Raw
}

// Cascade returns the fixed recognizer cascade in match-priority order:
// line-leading citations, embedded parenthetical citations, then plain
// enumerations.
func Cascade() []Recognizer {
	return []Recognizer{
		NewLineLeadingRecognizer(),
		NewParentheticalRecognizer(),
		NewEnumerationRecognizer(),
	}
}

// Extract runs the cascade over one non-header paragraph. The first
// recognizer that matches anything wins the paragraph; its matches then get
// a secondary scan that attaches loose "available at" URLs to the nearest
// preceding description lacking one. A paragraph matching no recognizer
// yields nil; most paragraphs are narrative prose.
func Extract(paragraph string, cascade []Recognizer) []Raw {
	for _, recognizer := range cascade {
		raws := recognizer.Recognize(paragraph)
		if len(raws) > 0 {
			attachLooseURLs(paragraph, raws)
			return raws
		}
	}
	return nil
}
