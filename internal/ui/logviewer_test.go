package ui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
	"github.com/thesavant42/astrolog/internal/logbook"
	"github.com/thesavant42/astrolog/internal/models"
)

const sampleLog = "ID\tName\tType\tConst\tTelescope\tLocal Date/Time\tNotes\n" +
	"M31\tAndromeda\tGalaxy\tAnd\t8\" Dob\t12.05.2023 22:00\tDust lane visible\n" +
	"M42\tOrion Nebula\tNebula\tOri\t80mm APO\t01.01.2024 20:30\tTrapezium split\n" +
	"M81\tBode's Galaxy\tGalaxy\tUMa\t8\" Dob\t03.02.2024 23:10\t\n"

type fakeRecorder struct {
	names  []string
	counts []int
	err    error
}

func (r *fakeRecorder) RecordImport(fileName string, recordCount int) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	r.names = append(r.names, fileName)
	r.counts = append(r.counts, recordCount)
	return "id", nil
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newLoadedViewer(t *testing.T, text string) LogViewerModel {
	t.Helper()
	s := logbook.NewSession()
	s.ImportRawText(text)
	return NewLogViewerModel(LogViewerConfig{Session: s, ExportDir: t.TempDir()})
}

// press feeds keys one by one and returns the model and the last command
func press(t *testing.T, m LogViewerModel, keys ...string) (LogViewerModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var model tea.Model
		model, cmd = m.Update(key(k))
		m = model.(LogViewerModel)
	}
	return m, cmd
}

func deliver(t *testing.T, m LogViewerModel, msg tea.Msg) LogViewerModel {
	t.Helper()
	model, _ := m.Update(msg)
	return model.(LogViewerModel)
}

func manyLogs(n int) string {
	var b strings.Builder
	b.WriteString("ID\tLocal Date/Time\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "N%03d\t%02d.01.2024 21:00\n", i, 1+i%28)
	}
	return b.String()
}

func TestLogViewerEmptyState(t *testing.T) {
	m := NewLogViewerModel(LogViewerConfig{})

	out := m.View()
	require.Contains(t, out, "No log file loaded")
	require.NotContains(t, out, "Logs:")
}

func TestLogViewerRendersCardsNewestFirst(t *testing.T) {
	m := newLoadedViewer(t, sampleLog)

	out := m.View()
	require.Contains(t, out, "Logs: 3   Objects: 3")
	require.Less(t, strings.Index(out, "M81"), strings.Index(out, "M42 (Orion Nebula)"))
	require.Less(t, strings.Index(out, "M42 (Orion Nebula)"), strings.Index(out, "M31"))
}

func TestLogViewerSearchIsLive(t *testing.T) {
	m := newLoadedViewer(t, sampleLog)

	m, _ = press(t, m, "/")
	require.Equal(t, ModeSearch, m.Mode)

	m, _ = press(t, m, "g", "a", "l")
	require.Equal(t, "gal", m.Session().Filter().Search)
	require.Equal(t, 2, m.Session().View().TotalCount)

	m, _ = press(t, m, "a", "x", "y", " ", "x")
	require.Equal(t, 0, m.Session().View().TotalCount)
	require.Contains(t, m.View(), "No logs match your filters")
	require.Contains(t, m.View(), "Try changing filters or search text.")

	m, _ = press(t, m, "esc")
	require.Equal(t, ModeBrowse, m.Mode)
	require.Equal(t, "", m.Session().Filter().Search)
	require.Equal(t, 3, m.Session().View().TotalCount)
}

func TestLogViewerSearchEnterKeepsQuery(t *testing.T) {
	m := newLoadedViewer(t, sampleLog)

	m, _ = press(t, m, "/", "O", "R", "I", "enter")
	require.Equal(t, ModeBrowse, m.Mode)
	require.Equal(t, "ori", m.Session().Filter().Search)
	require.Equal(t, 1, m.Session().View().TotalCount)

	// keys are commands again once the input is closed
	m, _ = press(t, m, "x")
	require.Equal(t, 3, m.Session().View().TotalCount)
}

func TestLogViewerFacetPicker(t *testing.T) {
	m := newLoadedViewer(t, sampleLog)

	m, _ = press(t, m, "t")
	require.Equal(t, ModePicker, m.Mode)
	require.Contains(t, m.View(), "All types")

	m, cmd := press(t, m, "down", "down", "enter")
	require.NotNil(t, cmd)
	done, ok := cmd().(SelectorDoneMsg)
	require.True(t, ok)
	require.Equal(t, SelectorDoneMsg{Index: 2, Value: "Nebula"}, done)

	m = deliver(t, m, done)
	require.Equal(t, ModeBrowse, m.Mode)
	require.Equal(t, "Nebula", m.Session().Filter().Type)
	require.Equal(t, 1, m.Session().View().TotalCount)
	require.Contains(t, m.View(), "Type=Nebula")
}

func TestLogViewerFacetPickerStartsOnCurrentValue(t *testing.T) {
	m := newLoadedViewer(t, sampleLog)
	require.NoError(t, m.Session().SetFacet(models.FacetConst, "Ori"))

	m, _ = press(t, m, "c")
	// options: all, And, Ori, UMa
	require.Equal(t, 2, m.picker.Cursor())
}

func TestLogViewerFacetPickerCancel(t *testing.T) {
	m := newLoadedViewer(t, sampleLog)

	m, cmd := press(t, m, "s", "down", "esc")
	done := cmd().(SelectorDoneMsg)
	require.Equal(t, -1, done.Index)

	m = deliver(t, m, done)
	require.Equal(t, ModeBrowse, m.Mode)
	require.Equal(t, models.FacetAll, m.Session().Filter().Scope)
}

func TestLogViewerFacetNeedsFile(t *testing.T) {
	m := NewLogViewerModel(LogViewerConfig{})

	m, _ = press(t, m, "d")
	require.Equal(t, ModeBrowse, m.Mode)
	require.True(t, m.StatusIsError)
}

func TestLogViewerShowMoreAndClear(t *testing.T) {
	m := newLoadedViewer(t, manyLogs(45))
	require.Len(t, m.Session().View().VisibleRecords, 20)
	require.Contains(t, m.View(), "Show more (20 of 45)")

	m, _ = press(t, m, "m")
	require.Len(t, m.Session().View().VisibleRecords, 40)

	m, _ = press(t, m, "m")
	v := m.Session().View()
	require.Len(t, v.VisibleRecords, 45)
	require.False(t, v.HasMore)
	require.NotContains(t, m.View(), "Show more")

	m, _ = press(t, m, "x")
	require.Len(t, m.Session().View().VisibleRecords, 20)
}

func TestLogViewerNavigationAndExpand(t *testing.T) {
	m := newLoadedViewer(t, sampleLog)
	records := m.Session().View().VisibleRecords

	// M81 has no notes, so nothing opens by default
	require.Equal(t, "M81", records[0].ID)
	require.False(t, m.isExpanded(0, records[0]))

	m, _ = press(t, m, "down")
	require.Equal(t, 1, m.cursor)
	require.False(t, m.isExpanded(1, records[1]))
	require.NotContains(t, m.View(), "Trapezium split")

	m, _ = press(t, m, "enter")
	require.True(t, m.isExpanded(1, records[1]))
	require.Contains(t, m.View(), "Trapezium split")

	m, _ = press(t, m, " ")
	require.False(t, m.isExpanded(1, records[1]))

	m, _ = press(t, m, "down", "down", "down")
	require.Equal(t, 2, m.cursor)
	m, _ = press(t, m, "up", "up", "up")
	require.Equal(t, 0, m.cursor)
}

func TestLogViewerFirstCardWithNotesOpens(t *testing.T) {
	m := newLoadedViewer(t, sampleLog)
	require.NoError(t, m.Session().SetFacet(models.FacetType, "Nebula"))

	require.Contains(t, m.View(), "Trapezium split")
}

func TestLogViewerFilterChangeResetsCursor(t *testing.T) {
	m := newLoadedViewer(t, sampleLog)

	m, _ = press(t, m, "down", "down", "enter")
	require.Equal(t, 2, m.cursor)

	m, _ = press(t, m, "/", "d")
	require.Equal(t, 0, m.cursor)
	require.Empty(t, m.expanded)
}

func TestLogViewerOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session log.tsv")
	require.NoError(t, os.WriteFile(path, []byte(sampleLog), 0644))

	rec := &fakeRecorder{}
	m := NewLogViewerModel(LogViewerConfig{History: rec})

	m, _ = press(t, m, "o")
	require.Equal(t, ModeOpenFile, m.Mode)

	m, cmd := press(t, m, path, "enter")
	require.NotNil(t, cmd)
	require.True(t, m.loading)
	require.Equal(t, ModeBrowse, m.Mode)

	m = deliver(t, m, readLogFile(path)())
	require.False(t, m.loading)
	require.Equal(t, 3, m.Session().View().TotalCount)
	require.Equal(t, "session log.tsv", m.Session().FileName())
	require.Contains(t, m.StatusMsg, "Loaded 3 logs")
	require.Equal(t, []int{3}, rec.counts)
	require.True(t, filepath.IsAbs(rec.names[0]))
}

func TestLogViewerOpenFileKeepsSearch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.tsv")
	require.NoError(t, os.WriteFile(path, []byte(sampleLog), 0644))

	m := newLoadedViewer(t, sampleLog)
	m, _ = press(t, m, "/", "m", "4", "enter")
	require.NoError(t, m.Session().SetFacet(models.FacetType, "Galaxy"))

	m = deliver(t, m, readLogFile(path)())
	f := m.Session().Filter()
	require.Equal(t, "m4", f.Search)
	require.Equal(t, models.FacetAll, f.Type)
}

func TestLogViewerOpenFileErrors(t *testing.T) {
	m := NewLogViewerModel(LogViewerConfig{History: &fakeRecorder{err: errors.New("disk full")}})

	m, _ = press(t, m, "o", "enter")
	require.Equal(t, ModeOpenFile, m.Mode)
	require.True(t, m.StatusIsError)

	m = deliver(t, m, readLogFile(filepath.Join(t.TempDir(), "missing.tsv"))())
	require.True(t, m.StatusIsError)
	require.False(t, m.Session().View().Loaded)

	// a failing history store never blocks the import
	path := filepath.Join(t.TempDir(), "log.tsv")
	require.NoError(t, os.WriteFile(path, []byte(sampleLog), 0644))
	m = deliver(t, m, readLogFile(path)())
	require.True(t, m.Session().View().Loaded)
	require.False(t, m.StatusIsError)
}

func TestLogViewerExportMarkdown(t *testing.T) {
	dir := t.TempDir()
	s := logbook.NewSession()
	s.Import(sampleLog, "spring.tsv")
	m := NewLogViewerModel(LogViewerConfig{Session: s, ExportDir: dir})
	require.NoError(t, s.SetFacet(models.FacetType, "Galaxy"))

	m, _ = press(t, m, "e")
	require.False(t, m.StatusIsError, m.StatusMsg)

	matches, err := filepath.Glob(filepath.Join(dir, "spring-*.md"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	out := string(data)
	require.Contains(t, out, "# Observation Log: spring.tsv")
	require.Contains(t, out, "**Logs:** 2")
	require.Contains(t, out, "**Filters:** Type=Galaxy")
	require.NotContains(t, out, "M42")
}

func TestLogViewerHelpAndQuit(t *testing.T) {
	m := newLoadedViewer(t, sampleLog)

	m, _ = press(t, m, "?")
	require.Equal(t, ModeHelp, m.Mode)
	require.Contains(t, m.View(), "filter by constellation")

	m, _ = press(t, m, "q")
	require.Equal(t, ModeBrowse, m.Mode)
	require.False(t, m.Quitting)

	m, cmd := press(t, m, "q")
	require.True(t, m.Quitting)
	require.NotNil(t, cmd)
	require.Equal(t, "", m.View())
}

func TestLogViewerWindowResize(t *testing.T) {
	m := newLoadedViewer(t, sampleLog)

	m = deliver(t, m, tea.WindowSizeMsg{Width: 200, Height: 50})
	require.Equal(t, MaxViewportWidth, m.Layout.ViewportWidth)
	require.Equal(t, 50, m.Layout.ViewportHeight)

	for _, line := range strings.Split(m.View(), "\n") {
		require.LessOrEqual(t, StringWidth(line), MaxViewportWidth)
	}
}

func TestCardWindow(t *testing.T) {
	heights := []int{3, 3, 5, 2}

	require.Equal(t, 0, cardWindow(heights, 0, 6))
	require.Equal(t, 0, cardWindow(heights, 1, 6))
	require.Equal(t, 2, cardWindow(heights, 2, 6))
	require.Equal(t, 2, cardWindow(heights, 3, 7))
	// a card taller than the window is still the first one shown
	require.Equal(t, 2, cardWindow(heights, 2, 1))
	require.Equal(t, 0, cardWindow(heights, 9, 6))
}
