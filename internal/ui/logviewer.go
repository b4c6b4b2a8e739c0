package ui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/thesavant42/astrolog/internal/logbook"
	"github.com/thesavant42/astrolog/internal/models"
)

// ImportRecorder stores a row in the import history
type ImportRecorder interface {
	RecordImport(fileName string, recordCount int) (string, error)
}

// LogViewerConfig wires the viewer to its collaborators
type LogViewerConfig struct {
	Session   *logbook.Session
	History   ImportRecorder // optional
	Logger    *log.Logger
	ExportDir string // markdown exports land here; "" means the working directory
}

// fileLoadedMsg carries the decoded contents of a file opened from the viewer
type fileLoadedMsg struct {
	path string
	text string
	err  error
}

// LogViewerModel is the interactive log list. Every key that changes search,
// facets or pagination goes through the session, and View renders the
// session's read model.
type LogViewerModel struct {
	PageState
	session   *logbook.Session
	history   ImportRecorder
	logger    *log.Logger
	exportDir string

	cursor   int
	expanded map[int]bool // explicit toggles by visible index

	search     textinput.Model
	pathInput  textinput.Model
	picker     SelectorModel
	pickerKind models.FacetKind
	loading    bool
	spinner    spinner.Model
}

// NewLogViewerModel creates the viewer over an existing session
func NewLogViewerModel(cfg LogViewerConfig) LogViewerModel {
	session := cfg.Session
	if session == nil {
		session = logbook.NewSession()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	layout := DefaultLayout()

	search := textinput.New()
	search.Prompt = "Search: "
	search.Placeholder = "id, name, notes, type, constellation, telescope"
	search.CharLimit = 200
	search.Width = layout.InnerWidth - 10
	search.SetValue(session.Filter().Search)

	pathInput := textinput.New()
	pathInput.Prompt = "Open file: "
	pathInput.Placeholder = "path/to/observations.tsv"
	pathInput.Width = layout.InnerWidth - 13

	return LogViewerModel{
		PageState: NewPageState(layout),
		session:   session,
		history:   cfg.History,
		logger:    logger,
		exportDir: cfg.ExportDir,
		expanded:  make(map[int]bool),
		search:    search,
		pathInput: pathInput,
		spinner:   NewAppSpinner(),
	}
}

func (m LogViewerModel) Init() tea.Cmd {
	return StandardInit()
}

func (m LogViewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.ClearExpiredStatus()

	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if m.UpdateLayout(msg.Width, msg.Height) {
			m.search.Width = m.Layout.InnerWidth - 10
			m.pathInput.Width = m.Layout.InnerWidth - 13
			if m.Mode == ModePicker {
				m.picker.SetLayout(m.Layout)
			}
		}
		return m, nil

	case SelectorDoneMsg:
		return m.applyFacet(msg), nil

	case fileLoadedMsg:
		return m.finishImport(msg), nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}
		switch m.Mode {
		case ModeSearch:
			return m.updateSearch(msg)
		case ModePicker:
			return m.updatePicker(msg)
		case ModeOpenFile:
			return m.updateOpenFile(msg)
		case ModeHelp:
			m.Mode = ModeBrowse
			return m, nil
		}
		return m.updateBrowse(msg)
	}

	// Cursor blink and friends go to whichever input is focused
	switch m.Mode {
	case ModeSearch:
		m.search, cmd = m.search.Update(msg)
	case ModeOpenFile:
		m.pathInput, cmd = m.pathInput.Update(msg)
	}
	return m, cmd
}

func (m LogViewerModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if quit, cmd := HandleQuitKeys(key); quit {
		m.Quitting = true
		return m, cmd
	}

	view := m.session.View()
	switch key {
	case "up", "k", "down", "j", "home", "g", "end", "G":
		m.cursor = HandleNavigationKeys(key, m.cursor, len(view.VisibleRecords))

	case "enter", " ", "space":
		if m.cursor < len(view.VisibleRecords) {
			m.expanded[m.cursor] = !m.isExpanded(m.cursor, view.VisibleRecords[m.cursor])
		}

	case "/":
		m.Mode = ModeSearch
		if logbook.NormalizeSearch(m.search.Value()) != view.Filter.Search {
			m.search.SetValue(view.Filter.Search)
		}
		m.search.CursorEnd()
		return m, m.search.Focus()

	case "t":
		return m.openPicker(models.FacetType)
	case "c":
		return m.openPicker(models.FacetConst)
	case "s":
		return m.openPicker(models.FacetScope)
	case "d":
		return m.openPicker(models.FacetDate)

	case "m":
		if !view.HasMore {
			m.SetStatus("All matching logs are shown", statusDuration)
			break
		}
		m.session.RequestMore()
		v := m.session.View()
		m.SetStatus(fmt.Sprintf("Showing %d of %d", len(v.VisibleRecords), v.TotalCount), statusDuration)

	case "x":
		m.session.ClearFilters()
		m.search.SetValue("")
		m.resetCards()
		m.SetStatus("Filters cleared", statusDuration)

	case "o":
		m.Mode = ModeOpenFile
		m.pathInput.SetValue("")
		return m, m.pathInput.Focus()

	case "e":
		return m.exportMarkdown(), nil

	case "?":
		m.Mode = ModeHelp
	}
	return m, nil
}

func (m LogViewerModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.Mode = ModeBrowse
		m.search.Blur()
		return m, nil
	case "esc":
		m.Mode = ModeBrowse
		m.search.Blur()
		m.search.SetValue("")
		m.session.SetSearch("")
		m.resetCards()
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		m.session.SetSearch(m.search.Value())
		m.resetCards()
	}
	return m, cmd
}

func (m LogViewerModel) openPicker(kind models.FacetKind) (tea.Model, tea.Cmd) {
	view := m.session.View()
	if !view.Loaded {
		m.SetError("Open a log file first (o)")
		return m, nil
	}
	m.picker = NewFacetPicker(kind, view.FacetOptions.For(kind), m.session.FacetCounts(kind), view.Filter.Facet(kind), m.Layout)
	m.pickerKind = kind
	m.Mode = ModePicker
	return m, nil
}

func (m LogViewerModel) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	model, cmd := m.picker.Update(msg)
	m.picker = model.(SelectorModel)
	return m, cmd
}

func (m LogViewerModel) applyFacet(msg SelectorDoneMsg) LogViewerModel {
	m.Mode = ModeBrowse
	if msg.Index < 0 {
		return m
	}
	if err := m.session.SetFacet(m.pickerKind, msg.Value); err != nil {
		m.SetError(err.Error())
		return m
	}
	m.resetCards()

	label := msg.Value
	if label == models.FacetAll {
		label = m.pickerKind.AllLabel()
	}
	m.SetStatus(fmt.Sprintf("%s: %s", m.pickerKind.Title(), label), statusDuration)
	return m
}

func (m LogViewerModel) updateOpenFile(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Mode = ModeBrowse
		m.pathInput.Blur()
		return m, nil
	case "enter":
		path := strings.TrimSpace(sanitizeInput(m.pathInput.Value()))
		if path == "" {
			m.SetError("Enter a file path")
			return m, nil
		}
		m.Mode = ModeBrowse
		m.pathInput.Blur()
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, readLogFile(path))
	}

	var cmd tea.Cmd
	m.pathInput, cmd = m.pathInput.Update(msg)
	return m, cmd
}

// readLogFile reads and decodes a file off the update loop
func readLogFile(path string) tea.Cmd {
	return func() tea.Msg {
		raw, err := os.ReadFile(path)
		if err != nil {
			return fileLoadedMsg{path: path, err: fmt.Errorf("failed to read %s: %w", path, err)}
		}
		return fileLoadedMsg{path: path, text: logbook.DecodeText(raw)}
	}
}

func (m LogViewerModel) finishImport(msg fileLoadedMsg) LogViewerModel {
	m.loading = false
	if msg.err != nil {
		m.logger.Error("Failed to open log file", "path", msg.path, "error", msg.err)
		m.SetError(msg.err.Error())
		return m
	}

	name := filepath.Base(msg.path)
	m.session.Import(msg.text, name)
	m.resetCards()

	count := m.session.RecordCount()
	if m.history != nil {
		source := msg.path
		if abs, err := filepath.Abs(msg.path); err == nil {
			source = abs
		}
		if _, err := m.history.RecordImport(source, count); err != nil {
			m.logger.Warn("Failed to record import", "file", source, "error", err)
		}
	}
	m.SetStatus(fmt.Sprintf("Loaded %d logs from %s", count, name), statusDuration)
	return m
}

func (m LogViewerModel) exportMarkdown() LogViewerModel {
	if !m.session.View().Loaded {
		m.SetError("Open a log file first (o)")
		return m
	}
	path, err := ExportMarkdown(m.session, m.exportDir, time.Now())
	if err != nil {
		m.logger.Error("Export failed", "error", err)
		m.SetError(err.Error())
		return m
	}
	m.logger.Info("Exported markdown", "path", path, "logs", m.session.View().TotalCount)
	m.SetStatus(fmt.Sprintf("Exported %d logs to %s", m.session.View().TotalCount, path), statusDuration)
	return m
}

// resetCards moves back to the first card after the result set changed
func (m *LogViewerModel) resetCards() {
	m.cursor = 0
	m.expanded = make(map[int]bool)
}

// isExpanded reports whether a card shows its notes. The first card opens
// by default when it has notes.
func (m LogViewerModel) isExpanded(i int, r models.LogRecord) bool {
	if v, ok := m.expanded[i]; ok {
		return v
	}
	return i == 0 && r.Notes != ""
}

func (m LogViewerModel) View() string {
	if m.Quitting {
		return ""
	}
	switch m.Mode {
	case ModePicker:
		return m.picker.View()
	case ModeHelp:
		return m.helpView()
	}

	view := m.session.View()
	b := NewPageView(m.Layout)

	title := "AstroPlanner Logs"
	if name := m.session.FileName(); name != "" {
		title += " · " + name
	}
	b.Title(title)
	if view.Loaded {
		b.Subtitle(fmt.Sprintf("Logs: %d   Objects: %d", view.TotalCount, view.UniqueObjectCount))
	}
	b.QueryInfo(view.Filter.Describe())
	switch {
	case m.Mode == ModeSearch:
		b.Text(m.search.View())
	case m.Mode == ModeOpenFile:
		b.Text(m.pathInput.View())
	case m.loading:
		b.Text(m.spinner.View() + " Loading...")
	}
	b.Divider()

	var more string
	footer := 0
	if view.HasMore {
		more = MoreStyle.Render(fmt.Sprintf("Show more (%d of %d) · press m", len(view.VisibleRecords), view.TotalCount))
		footer++
	}
	if m.HasStatus() {
		footer += 2
	}

	b.CustomContent(m.renderBody(view, m.Layout.MainHeight-b.Lines()-footer))
	if more != "" {
		b.CustomContent(more + "\n")
	}
	b.Status(m.StatusMsg, m.StatusIsError)

	return b.Help(m.helpText()).Build()
}

func (m LogViewerModel) renderBody(view models.View, height int) string {
	switch {
	case !view.Loaded:
		return RenderNormal("No log file loaded") + "\n" +
			RenderDim("Press o to open an AstroPlanner TSV export.") + "\n"
	case view.TotalCount == 0 && view.Filter.Active():
		return RenderNormal("No logs match your filters") + "\n" +
			RenderDim("Try changing filters or search text.") + "\n"
	case view.TotalCount == 0:
		return RenderNormal("No logs found in this file") + "\n" +
			RenderDim("Rows need an ID, Name or Notes value.") + "\n"
	}

	cards := make([][]string, len(view.VisibleRecords))
	heights := make([]int, len(cards))
	for i, r := range view.VisibleRecords {
		cards[i] = renderCard(r, i == m.cursor, m.isExpanded(i, r), m.Layout.InnerWidth)
		heights[i] = len(cards[i])
	}

	var lines []string
	for i := cardWindow(heights, m.cursor, height); i < len(cards) && len(lines) < height; i++ {
		lines = append(lines, cards[i]...)
	}
	if height > 0 && len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n") + "\n"
}

func (m LogViewerModel) helpText() string {
	switch {
	case m.Mode == ModeSearch:
		return "type to search | enter: done | esc: clear search"
	case m.Mode == ModeOpenFile:
		return "enter: load file | esc: cancel"
	}
	return "↑/↓: move | enter: expand | /: search | t/c/s/d: filter | ?: help | q: quit"
}

var keyHelp = [][2]string{
	{"↑/↓, j/k", "move between logs"},
	{"enter, space", "expand or collapse notes"},
	{"/", "search (updates as you type)"},
	{"t", "filter by type"},
	{"c", "filter by constellation"},
	{"s", "filter by telescope"},
	{"d", "filter by date"},
	{"m", "show more logs"},
	{"x", "clear search and filters"},
	{"o", "open another file"},
	{"e", "export matching logs to markdown"},
	{"q", "quit"},
}

func (m LogViewerModel) helpView() string {
	keyWidth := 0
	for _, k := range keyHelp {
		keyWidth = max(keyWidth, StringWidth(k[0]))
	}

	var content strings.Builder
	content.WriteString(ViewHeader("Keys", m.Layout.InnerWidth))
	for _, k := range keyHelp {
		pad := strings.Repeat(" ", keyWidth-StringWidth(k[0]))
		content.WriteString(fmt.Sprintf("  %s%s  %s\n", AccentStyle.Render(k[0]), pad, RenderNormal(k[1])))
	}
	return TwoBoxView(content.String(), "any key: back", m.Layout)
}

// Session returns the session driven by the viewer
func (m LogViewerModel) Session() *logbook.Session {
	return m.session
}

// RunLogViewer runs the interactive viewer until the user quits
func RunLogViewer(cfg LogViewerConfig) error {
	p := tea.NewProgram(NewLogViewerModel(cfg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("log viewer failed: %w", err)
	}
	return nil
}
