package logbook

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/thesavant42/astrolog/internal/models"
)

// exportColumns is the header written by WriteTSV, in AstroPlanner spelling
var exportColumns = []string{
	"ID", "Name", "Type", "Const", "Telescope", "Local Date/Time",
	"Notes", "Rating", "Eyepiece", "Filter", "Optical Aid", "Plan",
}

// WriteTSV writes records as an export that ParseTSV reads back.
// Tabs and line breaks inside values are replaced with spaces.
func WriteTSV(w io.Writer, records []models.LogRecord) error {
	if _, err := io.WriteString(w, strings.Join(exportColumns, "\t")+"\n"); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range records {
		cells := []string{
			r.ID, r.Name, r.Type, r.Constellation, r.Telescope, r.DateTime,
			r.Notes, r.Rating, r.Eyepiece, r.Filter, r.OpticalAid, r.Plan,
		}
		for i, c := range cells {
			cells[i] = flattenCell(c)
		}
		if _, err := io.WriteString(w, strings.Join(cells, "\t")+"\n"); err != nil {
			return fmt.Errorf("failed to write record %s: %w", r.ObjectKey, err)
		}
	}
	return nil
}

var cellFlattener = strings.NewReplacer("\t", " ", "\r\n", " ", "\n", " ", "\r", " ")

func flattenCell(s string) string {
	return cellFlattener.Replace(s)
}

// RenderMarkdown renders records as a markdown report. records should be
// the full filtered set, not only the visible page.
func RenderMarkdown(title string, records []models.LogRecord, filter models.FilterState, generated time.Time) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s\n\n", title))
	sb.WriteString(fmt.Sprintf("**Logs:** %d\n", len(records)))
	sb.WriteString(fmt.Sprintf("**Objects:** %d\n", CountUniqueObjects(records)))
	if filter.Active() {
		sb.WriteString(fmt.Sprintf("**Filters:** %s\n", filter.Describe()))
	}
	sb.WriteString(fmt.Sprintf("**Generated:** %s\n\n", generated.Format("2006-01-02 15:04:05")))

	if len(records) == 0 {
		sb.WriteString("No logs match your filters.\n")
		return sb.String()
	}

	sb.WriteString("| Date | Object | Type | Constellation | Telescope | Notes |\n")
	sb.WriteString("|------|--------|------|---------------|-----------|-------|\n")
	for _, r := range records {
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s |\n",
			mdCell(r.DateTime),
			mdCell(r.DisplayLabel()),
			mdCell(r.Type),
			mdCell(r.Constellation),
			mdCell(r.Telescope),
			mdCell(r.Notes),
		))
	}

	return sb.String()
}

func mdCell(s string) string {
	if s == "" {
		return "-"
	}
	return strings.ReplaceAll(flattenCell(s), "|", `\|`)
}
