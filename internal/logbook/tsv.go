package logbook

import (
	"strings"
	"unicode"

	"github.com/thesavant42/astrolog/internal/models"
)

// Header names recognized in an AstroPlanner export (compared lower-cased)
const (
	ColID         = "id"
	ColName       = "name"
	ColType       = "type"
	ColConst      = "const"
	ColTelescope  = "telescope"
	ColDateTime   = "local date/time"
	ColNotes      = "notes"
	ColRating     = "rating"
	ColEyepiece   = "eyepiece"
	ColFilter     = "filter"
	ColOpticalAid = "optical aid"
	ColPlan       = "plan"
)

var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// ParseTSV parses tab-separated export text into log records.
// The first non-blank line is the header; columns are matched by name,
// case-insensitively. Rows without id, name and notes are dropped.
// Input order is preserved.
func ParseTSV(text string) []models.LogRecord {
	var lines []string
	for _, l := range strings.Split(lineBreaks.Replace(text), "\n") {
		if trimCell(l) != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) == 0 {
		return []models.LogRecord{}
	}

	columns := make(map[string]int)
	for idx, h := range strings.Split(lines[0], "\t") {
		columns[strings.ToLower(trimCell(h))] = idx
	}

	cell := func(cells []string, key string) string {
		idx, ok := columns[key]
		if !ok || idx >= len(cells) {
			return ""
		}
		return trimCell(cells[idx])
	}

	logs := make([]models.LogRecord, 0, len(lines)-1)
	for _, line := range lines[1:] {
		cells := strings.Split(line, "\t")
		if allBlank(cells) {
			continue
		}

		rec := models.LogRecord{
			ID:            cell(cells, ColID),
			Name:          cell(cells, ColName),
			Type:          cell(cells, ColType),
			Constellation: cell(cells, ColConst),
			Telescope:     cell(cells, ColTelescope),
			DateTime:      cell(cells, ColDateTime),
			Notes:         cell(cells, ColNotes),
			Rating:        cell(cells, ColRating),
			Eyepiece:      cell(cells, ColEyepiece),
			Filter:        cell(cells, ColFilter),
			OpticalAid:    cell(cells, ColOpticalAid),
			Plan:          cell(cells, ColPlan),
		}
		if rec.ID == "" && rec.Name == "" && rec.Notes == "" {
			continue
		}
		rec.ObjectKey = objectKey(rec)
		logs = append(logs, rec)
	}

	return logs
}

func objectKey(r models.LogRecord) string {
	switch {
	case r.ID != "":
		return r.ID
	case r.Name != "":
		return r.Name
	default:
		return models.UnknownObject
	}
}

func allBlank(cells []string) bool {
	for _, c := range cells {
		if trimCell(c) != "" {
			return false
		}
	}
	return true
}

// trimCell trims whitespace and a stray byte order mark
func trimCell(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\uFEFF'
	})
}
