package models

import (
	"fmt"
	"strings"
	"time"
)

// FacetAll is the facet value meaning "no constraint"
const FacetAll = "__all__"

// UnknownObject is the object key used when a record has neither id nor name
const UnknownObject = "Unknown object"

// LogRecord is one observation entry from an AstroPlanner export.
// Empty string means the column was absent or blank.
type LogRecord struct {
	ID            string
	Name          string
	ObjectKey     string // ID, else Name, else UnknownObject
	Type          string
	Constellation string
	Telescope     string
	DateTime      string // raw "DD.MM.YYYY HH:MM", parsed only when sorting
	Notes         string
	Rating        string
	Eyepiece      string
	Filter        string
	OpticalAid    string
	Plan          string
}

// DatePart returns the day portion of DateTime (text before the first space)
func (r LogRecord) DatePart() string {
	return DatePart(r.DateTime)
}

// DatePart returns the text before the first space of a raw datetime
func DatePart(datetime string) string {
	if i := strings.IndexByte(datetime, ' '); i >= 0 {
		return datetime[:i]
	}
	return datetime
}

// DisplayLabel returns the title shown for a record in the list
func (r LogRecord) DisplayLabel() string {
	switch {
	case r.ID != "" && r.Name != "" && r.Name != r.ID:
		return fmt.Sprintf("%s (%s)", r.ID, r.Name)
	case r.ID != "":
		return r.ID
	case r.Name != "":
		return r.Name
	default:
		return UnknownObject
	}
}

// Detail is a labelled secondary field shown when a record is expanded
type Detail struct {
	Label string
	Value string
}

// Details returns the non-empty secondary fields in display order
func (r LogRecord) Details() []Detail {
	all := []Detail{
		{Label: "Rating", Value: r.Rating},
		{Label: "Eyepiece", Value: r.Eyepiece},
		{Label: "Filter", Value: r.Filter},
		{Label: "Optical aid", Value: r.OpticalAid},
		{Label: "Plan", Value: r.Plan},
	}
	details := make([]Detail, 0, len(all))
	for _, d := range all {
		if d.Value != "" {
			details = append(details, d)
		}
	}
	return details
}

// FacetKind identifies one filterable dimension
type FacetKind string

const (
	FacetType  FacetKind = "type"
	FacetConst FacetKind = "const"
	FacetScope FacetKind = "scope"
	FacetDate  FacetKind = "date"
)

// FacetKinds lists every facet in display order
var FacetKinds = []FacetKind{FacetType, FacetConst, FacetScope, FacetDate}

// ParseFacetKind converts a control name into a FacetKind
func ParseFacetKind(s string) (FacetKind, bool) {
	k := FacetKind(strings.ToLower(strings.TrimSpace(s)))
	switch k {
	case FacetType, FacetConst, FacetScope, FacetDate:
		return k, true
	}
	return "", false
}

// Title returns a human readable name for the facet
func (k FacetKind) Title() string {
	switch k {
	case FacetType:
		return "Type"
	case FacetConst:
		return "Constellation"
	case FacetScope:
		return "Telescope"
	case FacetDate:
		return "Date"
	}
	return string(k)
}

// AllLabel returns the label shown for the FacetAll option
func (k FacetKind) AllLabel() string {
	switch k {
	case FacetType:
		return "All types"
	case FacetConst:
		return "All constellations"
	case FacetScope:
		return "All telescopes"
	case FacetDate:
		return "All dates"
	}
	return "All"
}

// FacetValue returns the value a record contributes to a facet. Dates
// contribute their day part.
func (r LogRecord) FacetValue(kind FacetKind) string {
	switch kind {
	case FacetType:
		return r.Type
	case FacetConst:
		return r.Constellation
	case FacetScope:
		return r.Telescope
	case FacetDate:
		return r.DatePart()
	}
	return ""
}

// FilterState holds the active search text and facet selections
type FilterState struct {
	Search        string // trimmed and lower-cased
	Type          string
	Constellation string
	Scope         string
	Date          string
}

// NewFilterState returns a state with every facet set to FacetAll
func NewFilterState() FilterState {
	return FilterState{
		Type:          FacetAll,
		Constellation: FacetAll,
		Scope:         FacetAll,
		Date:          FacetAll,
	}
}

// Facet returns the selected value for a facet
func (f FilterState) Facet(kind FacetKind) string {
	switch kind {
	case FacetType:
		return f.Type
	case FacetConst:
		return f.Constellation
	case FacetScope:
		return f.Scope
	case FacetDate:
		return f.Date
	}
	return FacetAll
}

// Active reports whether any search text or facet constraint is set
func (f FilterState) Active() bool {
	if f.Search != "" {
		return true
	}
	for _, k := range FacetKinds {
		if f.Facet(k) != FacetAll {
			return true
		}
	}
	return false
}

// Describe returns a short summary of active constraints, e.g. "Type=Galaxy search~'m3'"
func (f FilterState) Describe() string {
	var parts []string
	for _, k := range FacetKinds {
		if v := f.Facet(k); v != FacetAll {
			parts = append(parts, fmt.Sprintf("%s=%s", k.Title(), v))
		}
	}
	if f.Search != "" {
		parts = append(parts, fmt.Sprintf("search~'%s'", f.Search))
	}
	return strings.Join(parts, "  ")
}

// FacetOptions holds the selectable values for each facet.
// Every list starts with FacetAll.
type FacetOptions struct {
	Types          []string
	Constellations []string
	Telescopes     []string
	Dates          []string
}

// For returns the option list for a facet
func (o FacetOptions) For(kind FacetKind) []string {
	switch kind {
	case FacetType:
		return o.Types
	case FacetConst:
		return o.Constellations
	case FacetScope:
		return o.Telescopes
	case FacetDate:
		return o.Dates
	}
	return nil
}

// Contains reports whether value is a selectable option for the facet
func (o FacetOptions) Contains(kind FacetKind, value string) bool {
	for _, v := range o.For(kind) {
		if v == value {
			return true
		}
	}
	return false
}

// View is the read model the presentation layer renders from
type View struct {
	VisibleRecords    []LogRecord
	TotalCount        int
	UniqueObjectCount int
	HasMore           bool
	FacetOptions      FacetOptions
	Filter            FilterState
	Limit             int
	Loaded            bool
}

// ImportSnapshot is the cached raw text of the last imported file
type ImportSnapshot struct {
	RawText    string
	FileName   string
	ImportedAt time.Time
}

// ImportRecord is one row of the import history
type ImportRecord struct {
	ID          string
	FileName    string
	RecordCount int
	ImportedAt  time.Time
}
