package ui

// view_helpers.go provides common View() rendering helpers.
// Use these to build consistent two-box layouts across all TUI models.

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// =============================================================================
// Text Rendering
// =============================================================================

// RenderTitle renders a bold section title
func RenderTitle(s string) string { return TitleStyle.Render(s) }

// RenderDim renders secondary gray text
func RenderDim(s string) string { return DimStyle.Render(s) }

// RenderNormal renders body text
func RenderNormal(s string) string { return NormalStyle.Render(s) }

// RenderError renders an error line
func RenderError(s string) string { return StatusMsgStyle.Render(s) }

// RenderSelectedWidth renders a highlighted row padded to width
func RenderSelectedWidth(s string, width int) string {
	return SelectedStyle.Width(width).Render(truncateToWidth(stripEscapeCodes(s), width))
}

// StringWidth returns the printable width of s, ignoring ANSI sequences
func StringWidth(s string) int {
	return lipgloss.Width(s)
}

// truncateToWidth cuts plain text to width cells, ending with an ellipsis
func truncateToWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

// stripEscapeCodes removes ANSI styling so a line can be restyled
func stripEscapeCodes(s string) string {
	return ansi.Strip(s)
}

// =============================================================================
// Table Rendering with Full-Width Selection
// =============================================================================

// RenderTableWithSelection renders a bubbles table with full-width selection highlight.
// The table's Selected style should use a neutral background,
// and this function applies the visible selection styling.
//
// bubbles/table View() output: line 0 is the header, data rows follow.
// There is no divider line from bubbles, one is added here.
func RenderTableWithSelection(t table.Model, layout Layout) string {
	lines := strings.Split(t.View(), "\n")
	result := make([]string, 0, len(lines)+1)

	cursor := t.Cursor()
	height := t.Height()
	totalRows := len(t.Rows())

	// Match the table's internal viewport offset
	start := 0
	if totalRows > height {
		if cursor >= height {
			start = cursor - height + 1
		}
		if maxStart := totalRows - height; start > maxStart {
			start = maxStart
		}
	}
	visibleCursorIndex := cursor - start

	for i, line := range lines {
		if i == 0 {
			result = append(result, NormalStyle.Render(line))
			result = append(result, FullWidthDivider(layout.InnerWidth))
			continue
		}

		// Strip escape codes first so embedded resets don't kill the background
		if i-1 == visibleCursorIndex {
			result = append(result, RenderSelectedWidth(line, layout.InnerWidth))
			continue
		}

		result = append(result, NormalStyle.Render(line))
	}

	return strings.Join(result, "\n")
}

// =============================================================================
// View Header - Title + Divider Pattern
// =============================================================================

// ViewHeader renders title + full-width divider + spacing.
func ViewHeader(title string, innerWidth int) string {
	return ViewHeaderWithSubtitle(title, "", innerWidth)
}

// ViewHeaderWithSubtitle renders title + subtitle + divider + spacing.
func ViewHeaderWithSubtitle(title, subtitle string, innerWidth int) string {
	var b strings.Builder
	b.WriteString(RenderTitle(title))
	b.WriteString("\n")
	if subtitle != "" {
		b.WriteString(RenderDim(subtitle))
		b.WriteString("\n")
	}
	b.WriteString(FullWidthDivider(innerWidth))
	b.WriteString("\n\n")
	return b.String()
}

// =============================================================================
// Text Centering and Padding
// =============================================================================

// CenterText centers text within given width.
func CenterText(text string, width int) string {
	textW := StringWidth(text)
	if textW >= width {
		return text
	}
	return strings.Repeat(" ", (width-textW)/2) + text
}

// CenterTextPadded centers text and pads to full width.
func CenterTextPadded(text string, width int) string {
	textW := StringWidth(text)
	if textW >= width {
		return text
	}
	leftPad := (width - textW) / 2
	rightPad := width - textW - leftPad
	return strings.Repeat(" ", leftPad) + text + strings.Repeat(" ", rightPad)
}

// PadContentToHeight pads content with newlines so it fills targetHeight
// lines, and cuts it when it is taller.
func PadContentToHeight(content string, targetHeight int) string {
	content = strings.TrimSuffix(content, "\n")
	lines := strings.Split(content, "\n")
	if len(lines) > targetHeight {
		lines = lines[:targetHeight]
	}
	for len(lines) < targetHeight {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// FullWidthDivider returns a horizontal divider spanning the inner width.
func FullWidthDivider(innerWidth int) string {
	return strings.Repeat("─", innerWidth)
}

// =============================================================================
// Two-Box Layout
// =============================================================================

// TwoBoxView constructs the standard two-box layout.
//
//	┌────────────────────────┐
//	│ Main content           │  <- indigo border
//	│                        │
//	└────────────────────────┘
//	┌────────────────────────┐
//	│   Centered help text   │  <- white border, 1 row
//	└────────────────────────┘
func TwoBoxView(content, helpText string, layout Layout) string {
	return BuildTwoBoxView(content, helpText, layout)
}

// BuildTwoBoxView renders main content and a one-row help box
func BuildTwoBoxView(content, helpText string, layout Layout) string {
	main := BorderStyle.
		Width(layout.InnerWidth).
		Height(layout.MainHeight).
		Render(PadContentToHeight(content, layout.MainHeight))

	help := truncateToWidth(helpText, layout.InnerWidth)
	helpBox := NewBorderStyleWithColor(ColorWhite).
		Width(layout.InnerWidth).
		Height(1).
		Render(HintStyle.Render(CenterTextPadded(help, layout.InnerWidth)))

	return main + "\n" + helpBox
}
