package logbook

import (
	"cmp"
	"slices"
	"sort"

	"github.com/thesavant42/astrolog/internal/models"
)

// BuildFacetOptions derives the selectable values of every facet from the
// full record collection. Types, constellations and telescopes are sorted
// ascending; dates are sorted most recent first. FacetAll leads each list.
func BuildFacetOptions(records []models.LogRecord) models.FacetOptions {
	types := newValueSet()
	consts := newValueSet()
	scopes := newValueSet()
	dates := newValueSet()

	for _, r := range records {
		types.add(r.Type)
		consts.add(r.Constellation)
		scopes.add(r.Telescope)
		if r.DateTime != "" {
			dates.add(r.DatePart())
		}
	}

	sortedDates := dates.values()
	// DD.MM.YYYY does not sort as text
	slices.SortStableFunc(sortedDates, func(a, b string) int {
		return cmp.Compare(ParseDateTime(b+" 00:00"), ParseDateTime(a+" 00:00"))
	})

	return models.FacetOptions{
		Types:          withAll(types.sorted()),
		Constellations: withAll(consts.sorted()),
		Telescopes:     withAll(scopes.sorted()),
		Dates:          withAll(sortedDates),
	}
}

// CountFacetValues counts how many records carry each value of a facet.
// The models.FacetAll entry holds the number of records.
func CountFacetValues(records []models.LogRecord, kind models.FacetKind) map[string]int {
	counts := map[string]int{models.FacetAll: len(records)}
	for _, r := range records {
		if v := r.FacetValue(kind); v != "" {
			counts[v]++
		}
	}
	return counts
}

func withAll(values []string) []string {
	return append([]string{models.FacetAll}, values...)
}

// valueSet collects distinct non-empty strings in first-seen order
type valueSet struct {
	seen  map[string]bool
	order []string
}

func newValueSet() *valueSet {
	return &valueSet{seen: make(map[string]bool)}
}

func (s *valueSet) add(v string) {
	if v == "" || s.seen[v] {
		return
	}
	s.seen[v] = true
	s.order = append(s.order, v)
}

func (s *valueSet) values() []string {
	return slices.Clone(s.order)
}

func (s *valueSet) sorted() []string {
	out := s.values()
	sort.Strings(out)
	return out
}
