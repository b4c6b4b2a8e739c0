package logbook

import (
	"strings"

	"github.com/thesavant42/astrolog/internal/models"
)

// ApplyFilters returns the records matching every active facet and the
// search text, in their original order. The input slice is not modified.
func ApplyFilters(records []models.LogRecord, state models.FilterState) []models.LogRecord {
	filtered := make([]models.LogRecord, 0, len(records))
	for _, r := range records {
		if matches(r, state) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

func matches(r models.LogRecord, state models.FilterState) bool {
	if state.Type != models.FacetAll && r.Type != state.Type {
		return false
	}
	if state.Constellation != models.FacetAll && r.Constellation != state.Constellation {
		return false
	}
	if state.Scope != models.FacetAll && r.Telescope != state.Scope {
		return false
	}
	if state.Date != models.FacetAll && r.DatePart() != state.Date {
		return false
	}
	if state.Search != "" {
		if !strings.Contains(strings.ToLower(searchText(r)), state.Search) {
			return false
		}
	}
	return true
}

// searchText joins the fields free-text search looks at
func searchText(r models.LogRecord) string {
	return strings.Join([]string{
		r.ID, r.Name, r.Notes, r.Type, r.Constellation, r.Telescope,
	}, " ")
}

// NormalizeSearch trims and lower-cases user search input
func NormalizeSearch(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}
