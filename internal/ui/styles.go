package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Layout constants - single source of truth for all viewport dimensions
const (
	MinViewportWidth  = 80
	MaxViewportWidth  = 140
	MinViewportHeight = 16
	DefaultWidth      = 110 // Used when terminal size is unknown
	DefaultHeight     = 30
	MinTableHeight    = 5
)

// Layout holds computed dimensions for the current terminal size
type Layout struct {
	ViewportWidth  int // clamped terminal width
	ViewportHeight int // clamped terminal height
	InnerWidth     int // ViewportWidth - 2 (EXACT width for content inside borders)
	TableWidth     int // InnerWidth minus column separator slack
	MainHeight     int // rows inside the main box of the two-box layout
	TableHeight    int // visible data rows for tables in the main box
}

// NewLayout creates a Layout from the terminal size, clamping to min/max
func NewLayout(terminalWidth, terminalHeight int) Layout {
	width := clamp(terminalWidth, MinViewportWidth, MaxViewportWidth)
	height := terminalHeight
	if height < MinViewportHeight {
		height = MinViewportHeight
	}

	// main border (2) + spacing (1) + help box (3)
	mainHeight := height - 6
	tableHeight := mainHeight - 6 // title, divider, spacing, header, divider
	if tableHeight < MinTableHeight {
		tableHeight = MinTableHeight
	}

	return Layout{
		ViewportWidth:  width,
		ViewportHeight: height,
		InnerWidth:     width - 2,
		TableWidth:     width - 4,
		MainHeight:     mainHeight,
		TableHeight:    tableHeight,
	}
}

// DefaultLayout returns a layout using the default size
func DefaultLayout() Layout {
	return NewLayout(DefaultWidth, DefaultHeight)
}

// clamp restricts a value to the given range
func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// Color palette - centralized color definitions
var (
	ColorBorder    = lipgloss.Color("63")  // indigo
	ColorHighlight = lipgloss.Color("17")  // deep navy background
	ColorText      = lipgloss.Color("15")  // bright white
	ColorAccent    = lipgloss.Color("153") // pale sky blue
	ColorAccentDim = lipgloss.Color("111") // soft blue (progress)
	ColorTextDim   = lipgloss.Color("245") // gray
	ColorWhite     = lipgloss.Color("255")
	ColorError     = lipgloss.Color("203") // salmon red
	ColorSuccess   = lipgloss.Color("114") // green
	ColorPillType  = lipgloss.Color("60")  // slate purple
	ColorPillConst = lipgloss.Color("24")  // dark teal
)

// Common styles - reusable style definitions
var (
	// Border style for main viewport
	// STYLE GUIDE: Always use .Width(InnerWidth) with NO .Padding()
	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)

	// Title style for section headers
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText)

	// Selected row/item style
	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Background(ColorHighlight).
			Bold(true)

	// Normal text style
	NormalStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	// Dimmed secondary text
	DimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)

	// Hint/help text style
	HintStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Italic(true)

	// Accent style for highlighted text
	AccentStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	// Progress style
	ProgressStyle = lipgloss.NewStyle().
			Foreground(ColorAccentDim)

	// Status message style (errors and warnings inside the main box)
	StatusMsgStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	// Stats footer style
	StatsStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText)

	// Facet pills on a log card
	TypePillStyle = lipgloss.NewStyle().
			Foreground(ColorWhite).
			Background(ColorPillType).
			Padding(0, 1)

	ConstPillStyle = lipgloss.NewStyle().
			Foreground(ColorWhite).
			Background(ColorPillConst).
			Padding(0, 1)

	// Notes inside an expanded card
	NotesStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			PaddingLeft(4)

	// "Show more" affordance below the list
	MoreStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Italic(true)
)

// NewBorderStyleWithColor returns the rounded border in another color
func NewBorderStyleWithColor(color lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color)
}

// ApplyTableStyles applies the standard table look. The selected style is
// neutral; RenderTableWithSelection paints the visible highlight.
func ApplyTableStyles(t *table.Model) {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorBorder).
		BorderBottom(false).
		Bold(true).
		Foreground(ColorText)
	s.Cell = s.Cell.Foreground(ColorText)
	s.Selected = s.Selected.
		Foreground(ColorText).
		Bold(false)
	t.SetStyles(s)
}

// NewAppSpinner returns the white dot spinner used across the app
func NewAppSpinner() spinner.Model {
	return spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(ColorText)),
	)
}

// NewAppTheme creates a huh theme matching the app's style guide
// White text, indigo highlights/selection
func NewAppTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().
		Foreground(ColorText).
		Bold(true)
	t.Blurred.Title = t.Focused.Title

	t.Focused.Description = lipgloss.NewStyle().
		Foreground(ColorTextDim)
	t.Blurred.Description = t.Focused.Description

	t.Focused.Base = lipgloss.NewStyle().
		Foreground(ColorText)
	t.Blurred.Base = t.Focused.Base

	t.Focused.SelectedOption = lipgloss.NewStyle().
		Foreground(ColorText).
		Background(ColorBorder).
		Bold(true).
		Padding(0, 1)

	t.Focused.UnselectedOption = lipgloss.NewStyle().
		Foreground(ColorText).
		Padding(0, 1)

	t.Focused.FocusedButton = lipgloss.NewStyle().
		Foreground(ColorText).
		Background(ColorBorder).
		Bold(true).
		Padding(0, 1)

	t.Focused.BlurredButton = lipgloss.NewStyle().
		Foreground(ColorText).
		Padding(0, 1)

	t.Focused.TextInput.Cursor = lipgloss.NewStyle().
		Foreground(ColorBorder)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().
		Foreground(ColorTextDim)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().
		Foreground(ColorBorder)

	return t
}
