// Package group assigns cleaned citations to sections, resolves duplicate
// attachment numbers to a single best description, and orders sections for
// output.
package group

import (
	"sort"
	"strings"

	"github.com/coolbeans/attex/pkg/citation"
	"github.com/coolbeans/attex/pkg/dialect"
	"github.com/coolbeans/attex/pkg/section"
)

// Section is a named grouping of citations corresponding to a document
// heading. Name == "" denotes the pre-section bucket: citations encountered
// before any recognized header.
type Section struct {
	Name  string              `json:"name"`
	Items []citation.Citation `json:"items"`
}

// GroupedResult is the ordered final answer: the pre-section bucket (if
// non-empty) first, then sections in dialect-specific order. Every
// attachment number appears in exactly one section.
type GroupedResult struct {
	Sections []Section `json:"sections"`
}

// Resolver accumulates citations in encounter order and produces the final
// per-section, per-number unique grouping. One resolver serves one call;
// it is the request-scoped parse context and must not be shared.
type Resolver struct {
	profile dialect.Profile

	current string
	order   []string
	known   map[string]bool
	items   map[string]map[int]string // section -> num -> best desc so far

	// assigned tracks the owning section per number under strict
	// assignment (outline dialect).
	assigned map[int]string
}

// NewResolver creates an empty resolver for the given dialect.
func NewResolver(d dialect.Dialect) *Resolver {
	r := &Resolver{
		profile:  d.Profile(),
		known:    make(map[string]bool),
		items:    make(map[string]map[int]string),
		assigned: make(map[int]string),
	}
	r.ensureSection("")
	return r
}

// SetSection switches the current section, creating it if new. Called by
// the pipeline when the classifier accepts a header.
func (r *Resolver) SetSection(name string) {
	r.ensureSection(name)
	r.current = name
}

// Add records one cleaned citation against the current section, applying
// the dedup and assignment policy for the dialect.
func (r *Resolver) Add(c citation.Citation) {
	if c.Num <= 0 || c.Desc == "" {
		return
	}

	if !r.profile.StrictAssignment {
		// Free-text dialect: duplicates resolve within each section's own
		// accumulated list; cross-section repeats fall out at the final pass.
		r.place(r.current, c)
		return
	}

	owner, seen := r.assigned[c.Num]
	switch {
	case !seen:
		r.assigned[c.Num] = r.current
		r.place(r.current, c)
	case owner == r.current:
		r.place(owner, c)
	case owner == "":
		// A pre-section citation vacates its provisional slot when the same
		// number reappears inside a real section: first real section wins.
		if best, ok := r.items[""][c.Num]; ok {
			delete(r.items[""], c.Num)
			r.place(r.current, citation.Citation{Num: c.Num, Desc: best})
		}
		r.assigned[c.Num] = r.current
		r.place(r.current, c)
	default:
		// Already owned by a different section; later repeats are dropped.
	}
}

// Result finalizes the grouping: duplicate numbers resolved, empty sections
// dropped, items sorted ascending by number, sections ordered per dialect
// with the pre-section bucket first.
func (r *Resolver) Result() GroupedResult {
	names := r.orderedNames()

	var result GroupedResult
	emitted := make(map[int]bool)
	for _, name := range names {
		byNum := r.items[name]
		nums := make([]int, 0, len(byNum))
		for num := range byNum {
			if emitted[num] {
				// Free-text dialect only: a number claimed by an earlier
				// section in output order stays there.
				continue
			}
			nums = append(nums, num)
		}
		if len(nums) == 0 {
			continue
		}
		sort.Ints(nums)

		sec := Section{Name: name, Items: make([]citation.Citation, 0, len(nums))}
		for _, num := range nums {
			emitted[num] = true
			sec.Items = append(sec.Items, citation.Citation{Num: num, Desc: byNum[num]})
		}
		result.Sections = append(result.Sections, sec)
	}
	return result
}

// ensureSection registers a section name, preserving encounter order.
func (r *Resolver) ensureSection(name string) {
	if r.known[name] {
		return
	}
	r.known[name] = true
	r.order = append(r.order, name)
	r.items[name] = make(map[int]string)
}

// place stores a citation in a section, keeping the better description when
// the number is already present there.
func (r *Resolver) place(name string, c citation.Citation) {
	r.ensureSection(name)
	existing, ok := r.items[name][c.Num]
	if !ok || betterDesc(c.Desc, existing) {
		r.items[name][c.Num] = c.Desc
	}
}

// betterDesc reports whether candidate should replace existing: a
// URL-bearing description beats one without, then a strictly longer
// description wins. Ties keep the first seen.
func betterDesc(candidate, existing string) bool {
	candidateHasURL := hasURL(candidate)
	existingHasURL := hasURL(existing)
	if candidateHasURL != existingHasURL {
		return candidateHasURL
	}
	return len(candidate) > len(existing)
}

func hasURL(desc string) bool {
	return strings.Contains(desc, "http://") || strings.Contains(desc, "https://")
}

// orderedNames returns section names in output order: pre-section bucket
// first, then encounter order (free-text) or Roman-numeral outline order
// with non-numeraled sections after, alphabetically (outline).
func (r *Resolver) orderedNames() []string {
	named := make([]string, 0, len(r.order))
	for _, name := range r.order {
		if name != "" {
			named = append(named, name)
		}
	}

	if r.profile.OutlineOrdered {
		sort.SliceStable(named, func(i, j int) bool {
			ni := section.LeadingNumeral(named[i])
			nj := section.LeadingNumeral(named[j])
			switch {
			case ni > 0 && nj > 0:
				return ni < nj
			case ni > 0:
				return true
			case nj > 0:
				return false
			default:
				return named[i] < named[j]
			}
		})
	}

	return append([]string{""}, named...)
}
