package logbook

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/thesavant42/astrolog/internal/models"
)

// DefaultPageSize is how many records are visible before "show more"
const DefaultPageSize = 20

// ErrUnknownFacet is returned by SetFacet for a kind outside models.FacetKinds
var ErrUnknownFacet = errors.New("unknown facet")

// Cache persists the last imported file so a session can be restored
type Cache interface {
	Save(rawText, fileName string) error
	LoadLast() (models.ImportSnapshot, bool, error)
}

// Session owns the loaded records, the filter state and the pagination
// cursor. Every entry point recomputes the view before returning, so View()
// always reflects the latest event. A Session is not safe for concurrent use.
type Session struct {
	records  []models.LogRecord
	facets   models.FacetOptions
	filter   models.FilterState
	limit    int
	pageSize int
	loaded   bool
	fileName string

	view models.View

	cache  Cache
	logger *log.Logger
}

// Option configures a Session
type Option func(*Session)

// WithPageSize sets the pagination step; values below 1 are ignored
func WithPageSize(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// WithLogger sets the logger used for import and cache events
func WithLogger(logger *log.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithCache enables saving imports and restoring the last one
func WithCache(c Cache) Option {
	return func(s *Session) {
		s.cache = c
	}
}

// NewSession creates an empty session with default filters
func NewSession(opts ...Option) *Session {
	s := &Session{
		filter:   models.NewFilterState(),
		pageSize: DefaultPageSize,
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.limit = s.pageSize
	s.facets = BuildFacetOptions(nil)
	s.recompute()
	return s
}

// change describes what an entry point did to the state
type change struct {
	resetPage bool
}

// apply is the single place where pagination is reset and the view rebuilt
func (s *Session) apply(c change) {
	if c.resetPage {
		s.limit = s.pageSize
	}
	s.recompute()
}

// ImportRawText replaces the record collection with the parsed text,
// rebuilds facet options, clears facet selections and resets the
// pagination cursor. The search text is kept.
func (s *Session) ImportRawText(text string) {
	s.apply(s.load(text))
}

// Import is ImportRawText plus a best-effort save to the cache
func (s *Session) Import(text, fileName string) {
	c := s.load(text)
	s.fileName = fileName
	if s.cache != nil {
		if err := s.cache.Save(text, fileName); err != nil {
			s.logger.Warn("Failed to cache import", "file", fileName, "error", err)
		}
	}
	s.apply(c)
}

func (s *Session) load(text string) change {
	s.records = ParseTSV(text)
	s.facets = BuildFacetOptions(s.records)
	search := s.filter.Search
	s.filter = models.NewFilterState()
	s.filter.Search = search
	s.loaded = true
	s.logger.Info("Imported logs",
		"records", len(s.records),
		"types", len(s.facets.Types)-1,
		"constellations", len(s.facets.Constellations)-1,
		"telescopes", len(s.facets.Telescopes)-1,
		"dates", len(s.facets.Dates)-1,
	)
	return change{resetPage: true}
}

// Restore imports the last cached file, if any. It reports the file name
// and whether anything was restored.
func (s *Session) Restore() (string, bool, error) {
	if s.cache == nil {
		return "", false, nil
	}
	snap, ok, err := s.cache.LoadLast()
	if err != nil {
		return "", false, fmt.Errorf("failed to load cached import: %w", err)
	}
	if !ok || snap.RawText == "" {
		return "", false, nil
	}
	c := s.load(snap.RawText)
	s.fileName = snap.FileName
	s.apply(c)
	s.logger.Info("Restored cached import", "file", snap.FileName)
	return snap.FileName, true, nil
}

// SetSearch updates the free-text search and resets pagination
func (s *Session) SetSearch(text string) {
	s.filter.Search = NormalizeSearch(text)
	s.apply(change{resetPage: true})
}

// SetFacet selects a value for one facet and resets pagination.
// models.FacetAll clears the facet.
func (s *Session) SetFacet(kind models.FacetKind, value string) error {
	switch kind {
	case models.FacetType:
		s.filter.Type = value
	case models.FacetConst:
		s.filter.Constellation = value
	case models.FacetScope:
		s.filter.Scope = value
	case models.FacetDate:
		s.filter.Date = value
	default:
		return fmt.Errorf("failed to set facet %q: %w", kind, ErrUnknownFacet)
	}
	s.apply(change{resetPage: true})
	return nil
}

// ClearFilters resets the search text and every facet
func (s *Session) ClearFilters() {
	s.filter = models.NewFilterState()
	s.apply(change{resetPage: true})
}

// RequestMore shows one more page without resetting the cursor
func (s *Session) RequestMore() {
	s.limit += s.pageSize
	s.apply(change{})
}

// View returns the read model computed after the last event
func (s *Session) View() models.View {
	return s.view
}

// Filter returns the current filter state
func (s *Session) Filter() models.FilterState {
	return s.filter
}

// FileName returns the name of the imported file, if known
func (s *Session) FileName() string {
	return s.fileName
}

// PageSize returns the pagination step
func (s *Session) PageSize() int {
	return s.pageSize
}

// RecordCount returns how many records the last import retained
func (s *Session) RecordCount() int {
	return len(s.records)
}

// FacetCounts counts the loaded records per value of a facet, ignoring the
// current filters
func (s *Session) FacetCounts(kind models.FacetKind) map[string]int {
	return CountFacetValues(s.records, kind)
}

// Matching returns the full filtered and sorted result set, not only the
// visible page
func (s *Session) Matching() []models.LogRecord {
	return SortChronological(ApplyFilters(s.records, s.filter))
}

func (s *Session) recompute() {
	sorted := s.Matching()

	visible := sorted
	if len(visible) > s.limit {
		visible = visible[:s.limit]
	}

	s.view = models.View{
		VisibleRecords:    visible,
		TotalCount:        len(sorted),
		UniqueObjectCount: CountUniqueObjects(sorted),
		HasMore:           len(sorted) > len(visible),
		FacetOptions:      s.facets,
		Filter:            s.filter,
		Limit:             s.limit,
		Loaded:            s.loaded,
	}
	s.logger.Debug("View recomputed",
		"total", s.view.TotalCount,
		"visible", len(visible),
		"hasMore", s.view.HasMore,
	)
}
