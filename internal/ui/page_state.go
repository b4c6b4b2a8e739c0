package ui

import (
	"time"
)

// page_state.go provides shared state management for TUI pages.
// Embed PageState in page models to get consistent state handling.

// ViewMode selects which input currently owns the keyboard
type ViewMode int

const (
	ModeBrowse ViewMode = iota
	ModeSearch
	ModePicker
	ModeOpenFile
	ModeHelp
)

// statusDuration is how long transient status messages stay visible
const statusDuration = 4 * time.Second

// PageState contains common state that all pages need.
type PageState struct {
	Layout        Layout
	Mode          ViewMode
	StatusMsg     string
	StatusIsError bool
	StatusExpiry  time.Time
	Quitting      bool

	now func() time.Time
}

// NewPageState creates a new PageState with the given layout.
func NewPageState(layout Layout) PageState {
	return PageState{
		Layout: layout,
		Mode:   ModeBrowse,
		now:    time.Now,
	}
}

func (p *PageState) clock() time.Time {
	if p.now == nil {
		return time.Now()
	}
	return p.now()
}

// SetStatus sets a status message that will expire after the given duration.
// If duration is 0, the status message will not expire.
func (p *PageState) SetStatus(msg string, duration time.Duration) {
	p.StatusMsg = msg
	p.StatusIsError = false
	if duration > 0 {
		p.StatusExpiry = p.clock().Add(duration)
	} else {
		p.StatusExpiry = time.Time{}
	}
}

// SetError sets an error status that stays until replaced
func (p *PageState) SetError(msg string) {
	p.SetStatus(msg, 0)
	p.StatusIsError = true
}

// ClearExpiredStatus clears the status message if it has expired.
// Call this in Update() to automatically clear old messages.
func (p *PageState) ClearExpiredStatus() {
	if !p.StatusExpiry.IsZero() && p.clock().After(p.StatusExpiry) {
		p.StatusMsg = ""
		p.StatusIsError = false
		p.StatusExpiry = time.Time{}
	}
}

// HasStatus returns true if there is a non-empty status message.
func (p *PageState) HasStatus() bool {
	return p.StatusMsg != ""
}

// UpdateLayout updates the layout and returns true if it changed.
// Use this in the WindowSizeMsg handler.
func (p *PageState) UpdateLayout(width, height int) bool {
	newLayout := NewLayout(width, height)
	if newLayout == p.Layout {
		return false
	}
	p.Layout = newLayout
	return true
}
