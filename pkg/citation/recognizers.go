package citation

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// chainAnchorPattern locates chained ", Attachment M - ..." continuation
	// fragments inside an already-matched description. The dash may be a
	// hyphen, en dash, em dash, or minus sign.
	chainAnchorPattern = regexp.MustCompile(`(?i),?\s*\bAttachment\s+(\d+)\s*[-–—−]\s*`)

	// urlPattern grabs a full URL up to whitespace, a closing parenthesis,
	// or a closing bracket.
	urlPattern = regexp.MustCompile(`https?://[^\s)\]]+`)

	// availableAtPattern matches an "available at <URL>" clause in any of
	// its observed phrasings (optional comma, optional colon or dash).
	availableAtPattern = regexp.MustCompile(`(?i),?\s*\bavailable\s+at\s*[:\-–—]?\s*(https?://[^\s)\]]+)`)

	// bareURLPattern matches a paragraph that consists of nothing but a
	// URL, the continuation form word processors produce when a line breaks
	// after "available at".
	bareURLPattern = regexp.MustCompile(`^(https?://\S+?)[.,;]?$`)
)

// LineLeadingRecognizer matches paragraphs that begin with an
// "Attachment N - description" citation, optionally prefixed with "See".
type LineLeadingRecognizer struct {
	pattern *regexp.Regexp
}

// NewLineLeadingRecognizer creates the recognizer with compiled patterns.
func NewLineLeadingRecognizer() *LineLeadingRecognizer {
	return &LineLeadingRecognizer{
		pattern: regexp.MustCompile(`(?i)^(?:See\s+)?Attachment\s+(\d+)\s*[-–—−]\s*(\S.*)$`),
	}
}

// Name returns the recognizer name.
func (r *LineLeadingRecognizer) Name() string {
	return "line-leading"
}

// Recognize extracts the leading citation plus any chained continuations.
func (r *LineLeadingRecognizer) Recognize(paragraph string) []Raw {
	match := r.pattern.FindStringSubmatchIndex(paragraph)
	if match == nil {
		return nil
	}
	num, err := strconv.Atoi(paragraph[match[2]:match[3]])
	if err != nil || num <= 0 {
		return nil
	}
	return splitChained(num, paragraph[match[4]:match[5]], match[4])
}

// ParentheticalRecognizer matches embedded "(See Attachment N – description)"
// citations; several may occur in one paragraph.
type ParentheticalRecognizer struct {
	pattern *regexp.Regexp
}

// NewParentheticalRecognizer creates the recognizer with compiled patterns.
func NewParentheticalRecognizer() *ParentheticalRecognizer {
	return &ParentheticalRecognizer{
		pattern: regexp.MustCompile(`(?i)\(\s*See\s+Attachment\s+(\d+)\s*[-–—−]\s*([^)]*)\)`),
	}
}

// Name returns the recognizer name.
func (r *ParentheticalRecognizer) Name() string {
	return "embedded-parenthetical"
}

// Recognize extracts every parenthetical citation in the paragraph.
func (r *ParentheticalRecognizer) Recognize(paragraph string) []Raw {
	var raws []Raw
	for _, match := range r.pattern.FindAllStringSubmatchIndex(paragraph, -1) {
		num, err := strconv.Atoi(paragraph[match[2]:match[3]])
		if err != nil || num <= 0 {
			continue
		}
		body := paragraph[match[4]:match[5]]
		raws = append(raws, splitChained(num, body, match[4])...)
	}
	return raws
}

// EnumerationRecognizer matches plain enumerations
// "(N) description[, available at: URL]." — the common case for itemized
// attachment lists. The paragraph must begin with an enumeration anchor;
// numbers are capped at three digits so year parentheticals like "(1954)"
// never register.
type EnumerationRecognizer struct {
	anchorPattern *regexp.Regexp
}

// NewEnumerationRecognizer creates the recognizer with compiled patterns.
func NewEnumerationRecognizer() *EnumerationRecognizer {
	return &EnumerationRecognizer{
		anchorPattern: regexp.MustCompile(`\(\s*(\d{1,3})\s*\)\s*`),
	}
}

// Name returns the recognizer name.
func (r *EnumerationRecognizer) Name() string {
	return "plain-enumeration"
}

// Recognize slices the paragraph between enumeration anchors, yielding one
// citation per anchor plus any chained continuations inside each slice.
func (r *EnumerationRecognizer) Recognize(paragraph string) []Raw {
	anchors := r.anchorPattern.FindAllStringSubmatchIndex(paragraph, -1)
	if len(anchors) == 0 || anchors[0][0] != 0 {
		return nil
	}

	var raws []Raw
	for i, anchor := range anchors {
		num, err := strconv.Atoi(paragraph[anchor[2]:anchor[3]])
		if err != nil || num <= 0 {
			continue
		}
		end := len(paragraph)
		if i+1 < len(anchors) {
			end = anchors[i+1][0]
		}
		body := paragraph[anchor[1]:end]
		raws = append(raws, splitChained(num, body, anchor[1])...)
	}
	return raws
}

// splitChained splits a matched description into the main citation and any
// chained ", Attachment M - description" continuation fragments, each an
// independent citation inheriting only a URL found in its own fragment. The
// main description is truncated at the first chained anchor. Fragments with
// an unparseable number are dropped, not fatal.
func splitChained(num int, body string, baseOffset int) []Raw {
	anchors := chainAnchorPattern.FindAllStringSubmatchIndex(body, -1)

	mainEnd := len(body)
	if len(anchors) > 0 {
		mainEnd = anchors[0][0]
	}

	raws := make([]Raw, 0, len(anchors)+1)
	if raw, ok := newRaw(num, body[:mainEnd], baseOffset); ok {
		raws = append(raws, raw)
	}

	for i, anchor := range anchors {
		fragNum, err := strconv.Atoi(body[anchor[2]:anchor[3]])
		if err != nil || fragNum <= 0 {
			continue
		}
		fragEnd := len(body)
		if i+1 < len(anchors) {
			fragEnd = anchors[i+1][0]
		}
		if raw, ok := newRaw(fragNum, body[anchor[1]:fragEnd], baseOffset+anchor[1]); ok {
			raws = append(raws, raw)
		}
	}
	return raws
}

// newRaw builds a Raw with the URL extracted out of the description text.
func newRaw(num int, text string, offset int) (Raw, bool) {
	desc, url := extractURL(text)
	desc = strings.TrimSpace(desc)
	if desc == "" && url == "" {
		return Raw{}, false
	}
	return Raw{Num: num, Desc: desc, URL: url, Offset: offset}, true
}

// extractURL pulls a URL out of the text, preferring a full "available at"
// clause over a bare URL, and returns the remaining description plus the
// URL stripped of trailing sentence punctuation.
func extractURL(text string) (string, string) {
	if match := availableAtPattern.FindStringSubmatchIndex(text); match != nil {
		url := strings.TrimRight(text[match[2]:match[3]], ".,;")
		return text[:match[0]] + text[match[1]:], url
	}
	if loc := urlPattern.FindStringIndex(text); loc != nil {
		url := strings.TrimRight(text[loc[0]:loc[1]], ".,;")
		return text[:loc[0]] + text[loc[1]:], url
	}
	return text, ""
}

// BareURL reports whether the paragraph is a lone URL continuation line and
// returns the URL stripped of trailing sentence punctuation.
func BareURL(paragraph string) (string, bool) {
	match := bareURLPattern.FindStringSubmatch(strings.TrimSpace(paragraph))
	if match == nil {
		return "", false
	}
	return match[1], true
}

// AttachContinuationURL assigns a continuation-line URL to the last citation
// lacking one. Returns false when every citation already carries a URL, in
// which case the line is not a continuation of these citations.
func AttachContinuationURL(raws []Raw, url string) bool {
	for i := len(raws) - 1; i >= 0; i-- {
		if raws[i].URL == "" {
			raws[i].URL = url
			return true
		}
	}
	return false
}

// attachLooseURLs scans the whole paragraph for "available at <URL>" phrases
// that did not land inside any captured group and attaches each to the
// nearest preceding citation that lacks a URL.
func attachLooseURLs(paragraph string, raws []Raw) {
	used := make(map[string]bool)
	for _, raw := range raws {
		if raw.URL != "" {
			used[raw.URL] = true
		}
	}

	for _, match := range availableAtPattern.FindAllStringSubmatchIndex(paragraph, -1) {
		url := strings.TrimRight(paragraph[match[2]:match[3]], ".,;")
		if used[url] {
			continue
		}
		best := -1
		for i := range raws {
			if raws[i].URL != "" || raws[i].Offset > match[0] {
				continue
			}
			if best == -1 || raws[i].Offset > raws[best].Offset {
				best = i
			}
		}
		if best >= 0 {
			raws[best].URL = url
			used[url] = true
		}
	}
}
