package citation

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// ignoreOffsets compares recognizer output without the byte offsets, which
// are an implementation detail of the loose-URL scan.
var ignoreOffsets = cmpopts.IgnoreFields(Raw{}, "Offset")

func TestLineLeadingRecognizer(t *testing.T) {
	recognizer := NewLineLeadingRecognizer()

	cases := []struct {
		name      string
		paragraph string
		expected  []Raw
	}{
		{
			name:      "basic",
			paragraph: "Attachment 7 - Letter of recommendation from Dr. Smith",
			expected:  []Raw{{Num: 7, Desc: "Letter of recommendation from Dr. Smith"}},
		},
		{
			name:      "see prefix",
			paragraph: "See Attachment 2 - Award certificate",
			expected:  []Raw{{Num: 2, Desc: "Award certificate"}},
		},
		{
			name:      "en dash",
			paragraph: "Attachment 12 – Conference program",
			expected:  []Raw{{Num: 12, Desc: "Conference program"}},
		},
		{
			name:      "available at clause extracted",
			paragraph: "Attachment 3 - Diploma, available at: https://example.edu/diploma",
			expected:  []Raw{{Num: 3, Desc: "Diploma", URL: "https://example.edu/diploma"}},
		},
		{
			name:      "chained continuation",
			paragraph: "Attachment 2 - Letter A, Attachment 3 - Letter B",
			expected: []Raw{
				{Num: 2, Desc: "Letter A"},
				{Num: 3, Desc: "Letter B"},
			},
		},
		{
			name:      "chained fragment keeps its own url",
			paragraph: "Attachment 2 - Letter A, Attachment 3 - Letter B, available at https://x.example/b",
			expected: []Raw{
				{Num: 2, Desc: "Letter A"},
				{Num: 3, Desc: "Letter B", URL: "https://x.example/b"},
			},
		},
		{
			name:      "narrative prose declines",
			paragraph: "The petitioner submitted many attachments with this filing.",
			expected:  nil,
		},
		{
			name:      "mid-paragraph citation declines",
			paragraph: "As shown in Attachment 4 - the award certificate is enclosed.",
			expected:  nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := recognizer.Recognize(tc.paragraph)
			if diff := cmp.Diff(tc.expected, got, ignoreOffsets, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Recognize(%q) mismatch (-want +got):\n%s", tc.paragraph, diff)
			}
		})
	}
}

func TestParentheticalRecognizer(t *testing.T) {
	recognizer := NewParentheticalRecognizer()

	cases := []struct {
		name      string
		paragraph string
		expected  []Raw
	}{
		{
			name:      "embedded citation",
			paragraph: "The award received wide coverage (See Attachment 4 – Press release) that year.",
			expected:  []Raw{{Num: 4, Desc: "Press release"}},
		},
		{
			name:      "multiple occurrences",
			paragraph: "He won twice (See Attachment 1 - First medal) and again (See Attachment 2 - Second medal).",
			expected: []Raw{
				{Num: 1, Desc: "First medal"},
				{Num: 2, Desc: "Second medal"},
			},
		},
		{
			name:      "url inside parenthetical",
			paragraph: "Coverage was national (See Attachment 5 – Article, available at https://news.example/a).",
			expected:  []Raw{{Num: 5, Desc: "Article", URL: "https://news.example/a"}},
		},
		{
			name:      "plain parenthetical declines",
			paragraph: "The petitioner (a chemist) won the award.",
			expected:  nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := recognizer.Recognize(tc.paragraph)
			if diff := cmp.Diff(tc.expected, got, ignoreOffsets, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Recognize(%q) mismatch (-want +got):\n%s", tc.paragraph, diff)
			}
		})
	}
}

func TestEnumerationRecognizer(t *testing.T) {
	recognizer := NewEnumerationRecognizer()

	cases := []struct {
		name      string
		paragraph string
		expected  []Raw
	}{
		{
			name:      "single item",
			paragraph: "(1) National Award, pages 12-13.",
			expected:  []Raw{{Num: 1, Desc: "National Award, pages 12-13."}},
		},
		{
			name:      "with available at clause",
			paragraph: "(3) Diploma from State University, available at: http://example.edu/diploma",
			expected:  []Raw{{Num: 3, Desc: "Diploma from State University", URL: "http://example.edu/diploma"}},
		},
		{
			name:      "chained continuation inside item",
			paragraph: "(2) Letter A, Attachment 3 - Letter B, Attachment 4 - Letter C.",
			expected: []Raw{
				{Num: 2, Desc: "Letter A"},
				{Num: 3, Desc: "Letter B"},
				{Num: 4, Desc: "Letter C."},
			},
		},
		{
			name:      "does not match mid-paragraph",
			paragraph: "As described in item (3) above, the award is enclosed.",
			expected:  nil,
		},
		{
			name:      "year parenthetical declines",
			paragraph: "(1954) was the year of the decision.",
			expected:  nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := recognizer.Recognize(tc.paragraph)
			if diff := cmp.Diff(tc.expected, got, ignoreOffsets, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Recognize(%q) mismatch (-want +got):\n%s", tc.paragraph, diff)
			}
		})
	}
}

func TestExtractCascadeFirstMatchWins(t *testing.T) {
	cascade := Cascade()

	// A line-leading citation wins the paragraph even though the
	// enumeration grammar could also fire further in.
	paragraph := "Attachment 9 - Salary survey"
	got := Extract(paragraph, cascade)
	if len(got) != 1 || got[0].Num != 9 {
		t.Fatalf("Expected single citation 9, got %+v", got)
	}

	// Narrative prose matches nothing; that is expected, not an error.
	if got := Extract("No citations appear in this sentence.", cascade); got != nil {
		t.Errorf("Expected nil for prose, got %+v", got)
	}
}

func TestExtractAttachesLooseURL(t *testing.T) {
	cascade := Cascade()
	paragraph := "The company grew rapidly (See Attachment 6 – Annual report), available at https://corp.example/report."

	got := Extract(paragraph, cascade)
	if len(got) != 1 {
		t.Fatalf("Expected 1 citation, got %d", len(got))
	}
	if got[0].URL != "https://corp.example/report" {
		t.Errorf("Expected loose URL to attach, got %q", got[0].URL)
	}
}

func TestExtractLooseURLGoesToNearestPreceding(t *testing.T) {
	cascade := Cascade()
	paragraph := "(1) First article, available at https://a.example/1. (2) Second article, available at https://b.example/2."

	got := Extract(paragraph, cascade)
	if len(got) != 2 {
		t.Fatalf("Expected 2 citations, got %d: %+v", len(got), got)
	}
	if got[0].URL != "https://a.example/1" {
		t.Errorf("First citation URL = %q, want https://a.example/1", got[0].URL)
	}
	if got[1].URL != "https://b.example/2" {
		t.Errorf("Second citation URL = %q, want https://b.example/2", got[1].URL)
	}
}

func TestBareURL(t *testing.T) {
	cases := []struct {
		name      string
		paragraph string
		expected  string
		ok        bool
	}{
		{
			name:      "plain url line",
			paragraph: "https://news.example/story",
			expected:  "https://news.example/story",
			ok:        true,
		},
		{
			name:      "trailing period trimmed",
			paragraph: "https://news.example/story.",
			expected:  "https://news.example/story",
			ok:        true,
		},
		{
			name:      "surrounding whitespace trimmed",
			paragraph: "  https://news.example/story  ",
			expected:  "https://news.example/story",
			ok:        true,
		},
		{
			name:      "url with trailing prose declined",
			paragraph: "https://news.example/story covers the award.",
			ok:        false,
		},
		{
			name:      "prose declined",
			paragraph: "See the article online.",
			ok:        false,
		},
		{
			name:      "citation line declined",
			paragraph: "See Attachment 2 - Feature article.",
			ok:        false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := BareURL(tc.paragraph)
			if ok != tc.ok {
				t.Fatalf("BareURL(%q) ok=%v, want %v", tc.paragraph, ok, tc.ok)
			}
			if ok && got != tc.expected {
				t.Errorf("BareURL(%q) = %q, want %q", tc.paragraph, got, tc.expected)
			}
		})
	}
}

func TestAttachContinuationURL(t *testing.T) {
	t.Run("last url-less citation receives it", func(t *testing.T) {
		raws := []Raw{
			{Num: 1, Desc: "First", URL: ""},
			{Num: 2, Desc: "Second", URL: ""},
		}
		if !AttachContinuationURL(raws, "https://x.example/2") {
			t.Fatal("Expected URL to attach")
		}
		if raws[0].URL != "" || raws[1].URL != "https://x.example/2" {
			t.Errorf("URL attached to wrong citation: %+v", raws)
		}
	})

	t.Run("declined when all citations carry urls", func(t *testing.T) {
		raws := []Raw{{Num: 1, Desc: "First", URL: "https://a.example/1"}}
		if AttachContinuationURL(raws, "https://x.example/2") {
			t.Error("Expected attach to decline")
		}
		if raws[0].URL != "https://a.example/1" {
			t.Errorf("Existing URL overwritten: %+v", raws)
		}
	})
}
