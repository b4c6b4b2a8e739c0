package logbook

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/thesavant42/astrolog/internal/models"
)

func TestWriteTSVRoundTrip(t *testing.T) {
	records := sampleRecords()
	records[0].Notes = "line one\nline two\twith tab"

	var buf bytes.Buffer
	require.NoError(t, WriteTSV(&buf, records))

	parsed := ParseTSV(buf.String())
	require.Len(t, parsed, len(records))
	require.Equal(t, "line one line two with tab", parsed[0].Notes)
	for i := 1; i < len(records); i++ {
		require.Equal(t, records[i], parsed[i])
	}
}

func TestRenderMarkdown(t *testing.T) {
	records := SortChronological(ParseTSV(exampleTSV))
	filter := models.NewFilterState()
	filter.Search = "m"
	generated := time.Date(2024, time.February, 1, 10, 30, 0, 0, time.UTC)

	md := RenderMarkdown("Observation Log", records, filter, generated)

	require.True(t, strings.HasPrefix(md, "# Observation Log\n"))
	require.Contains(t, md, "**Logs:** 2")
	require.Contains(t, md, "**Objects:** 2")
	require.Contains(t, md, "**Filters:** search~'m'")
	require.Contains(t, md, "**Generated:** 2024-02-01 10:30:00")
	require.Contains(t, md, "| 01.01.2024 20:30 | M42 (Orion Nebula) | Nebula | - | - | - |")
	require.Less(t, strings.Index(md, "M42"), strings.Index(md, "M31"))
}

func TestRenderMarkdownEscapesPipes(t *testing.T) {
	records := []models.LogRecord{{ID: "M1", ObjectKey: "M1", Notes: "seeing 3|5"}}

	md := RenderMarkdown("Log", records, models.NewFilterState(), time.Now())

	require.Contains(t, md, `seeing 3\|5`)
	require.NotContains(t, md, "**Filters:**")
}

func TestRenderMarkdownEmpty(t *testing.T) {
	md := RenderMarkdown("Log", nil, models.NewFilterState(), time.Now())

	require.Contains(t, md, "No logs match your filters.")
}
