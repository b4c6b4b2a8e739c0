package ui

import (
	"strings"

	"github.com/thesavant42/astrolog/internal/models"
)

const cardIndent = "    "

// renderCard renders one log entry as a block of lines. Collapsed cards show
// the label, facet pills, date and telescope; expanded cards add the notes
// and the secondary details.
func renderCard(r models.LogRecord, selected, expanded bool, width int) []string {
	marker := "  "
	labelStyle := TitleStyle
	if selected {
		marker = AccentStyle.Render("▶ ")
		labelStyle = AccentStyle
	}

	var pills []string
	if r.Type != "" {
		pills = append(pills, TypePillStyle.Render(r.Type))
	}
	if r.Constellation != "" {
		pills = append(pills, ConstPillStyle.Render(r.Constellation))
	}
	pillText := strings.Join(pills, " ")
	date := DimStyle.Render(r.DateTime)

	room := width - 2 - StringWidth(date) - 2
	if pillText != "" {
		room -= StringWidth(pillText) + 1
	}
	left := marker + labelStyle.Render(truncateToWidth(r.DisplayLabel(), room))
	if pillText != "" {
		left += " " + pillText
	}
	gap := width - StringWidth(left) - StringWidth(date)
	if gap < 1 {
		gap = 1
	}
	lines := []string{left + strings.Repeat(" ", gap) + date}

	var sub []string
	if r.Telescope != "" {
		sub = append(sub, r.Telescope)
	}
	if r.Notes != "" && !expanded {
		sub = append(sub, "notes ▸")
	}
	if len(sub) > 0 {
		lines = append(lines, DimStyle.Render(truncateToWidth(cardIndent+strings.Join(sub, " · "), width)))
	}

	if expanded {
		if r.Notes != "" {
			notes := NotesStyle.Width(width).Render(r.Notes)
			lines = append(lines, strings.Split(notes, "\n")...)
		}
		if details := r.Details(); len(details) > 0 {
			parts := make([]string, len(details))
			for i, d := range details {
				parts[i] = d.Label + ": " + d.Value
			}
			lines = append(lines, DimStyle.Render(truncateToWidth(cardIndent+strings.Join(parts, " · "), width)))
		}
	}

	return append(lines, "")
}

// cardWindow picks the first card to draw so that the selected card is fully
// visible within height lines.
func cardWindow(heights []int, cursor, height int) int {
	if cursor < 0 || cursor >= len(heights) {
		return 0
	}
	used := 0
	for i := 0; i <= cursor; i++ {
		used += heights[i]
	}
	start := 0
	for start < cursor && used > height {
		used -= heights[start]
		start++
	}
	return start
}
