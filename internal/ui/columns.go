package ui

// columns.go provides column width calculation for bubbles/table.

import (
	"github.com/charmbracelet/bubbles/table"
)

// ColumnSpec defines a table column with flexible or fixed width.
type ColumnSpec struct {
	Title      string
	MinWidth   int // Minimum width (0 = no minimum)
	FixedWidth int // If > 0, use this exact width (ignores FlexRatio)
	FlexRatio  int // Relative ratio for flexible columns
}

// CalculateColumns computes column widths from specs.
// Flexible columns split remaining space by ratio after fixed columns are allocated.
func CalculateColumns(specs []ColumnSpec, totalWidth int) []table.Column {
	if totalWidth < 20 {
		totalWidth = 20
	}

	fixedTotal := 0
	flexTotal := 0
	for _, s := range specs {
		if s.FixedWidth > 0 {
			fixedTotal += s.FixedWidth
		} else {
			flexTotal += s.FlexRatio
		}
	}

	remaining := totalWidth - fixedTotal
	if remaining < 0 {
		remaining = 0
	}

	columns := make([]table.Column, len(specs))
	for i, s := range specs {
		var width int
		if s.FixedWidth > 0 {
			width = s.FixedWidth
		} else if flexTotal > 0 {
			width = remaining * s.FlexRatio / flexTotal
		}
		if s.MinWidth > 0 && width < s.MinWidth {
			width = s.MinWidth
		}
		columns[i] = table.Column{Title: s.Title, Width: width}
	}

	return columns
}

// SingleColumnSpec returns a column spec for single-column selectors.
func SingleColumnSpec(title string) []ColumnSpec {
	return []ColumnSpec{
		{Title: title, FlexRatio: 100},
	}
}

// FacetColumns returns column specs for the facet picker: value and
// how many of the loaded logs carry it.
func FacetColumns(title string) []ColumnSpec {
	return []ColumnSpec{
		{Title: title, FlexRatio: 100, MinWidth: 20},
		{Title: "Logs", FixedWidth: 8},
	}
}

// HistoryColumns returns column specs for the recent imports list.
func HistoryColumns() []ColumnSpec {
	return []ColumnSpec{
		{Title: "File", FlexRatio: 100, MinWidth: 30},
		{Title: "Logs", FixedWidth: 8},
		{Title: "Imported", FixedWidth: 18},
	}
}
