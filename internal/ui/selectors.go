package ui

// selectors.go provides a generic table selector. It runs either as its own
// program (RunSelector) or embedded in another model, where it reports the
// choice with a SelectorDoneMsg instead of quitting.

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/thesavant42/astrolog/internal/models"
)

// SelectorConfig defines configuration for a generic selector.
type SelectorConfig struct {
	Title    string       // Main title displayed at top
	Subtitle string       // Optional subtitle (e.g., "5 values")
	HelpText string       // Help text for footer
	Columns  []ColumnSpec // Defaults to a single column named Title
	Rows     [][]string   // Display cells; Items is used when nil
	Items    []string     // Display labels for each option
	Values   []string     // Optional: actual values (if different from display labels)
	Initial  int          // Row the cursor starts on
	Embedded bool         // Emit SelectorDoneMsg instead of tea.Quit
}

// SelectorDoneMsg reports the outcome of an embedded selector.
// Index is -1 when the user cancelled.
type SelectorDoneMsg struct {
	Index int
	Value string
}

// SelectorModel is a table selector.
type SelectorModel struct {
	table    table.Model
	config   SelectorConfig
	layout   Layout
	selected int // Index of selected item, -1 if cancelled
	quitting bool
}

// NewSelectorModel creates a selector with the given configuration.
func NewSelectorModel(cfg SelectorConfig, layout Layout) SelectorModel {
	if len(cfg.Columns) == 0 {
		cfg.Columns = SingleColumnSpec(cfg.Title)
	}
	if cfg.HelpText == "" {
		cfg.HelpText = "↑/↓: navigate | Enter: select | Esc: cancel"
	}

	rows := make([]table.Row, 0, len(cfg.Items))
	if cfg.Rows != nil {
		for _, r := range cfg.Rows {
			rows = append(rows, table.Row(r))
		}
	} else {
		for _, item := range cfg.Items {
			rows = append(rows, table.Row{item})
		}
	}

	m := SelectorModel{
		config:   cfg,
		layout:   layout,
		selected: -1,
	}
	m.table = InitTable(CalculateColumns(cfg.Columns, layout.TableWidth), rows, m.tableHeight())
	if cfg.Initial > 0 && cfg.Initial < len(rows) {
		m.table.SetCursor(cfg.Initial)
	}
	return m
}

func (m SelectorModel) Init() tea.Cmd {
	return StandardInit()
}

func (m SelectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetLayout(NewLayout(msg.Width, msg.Height))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.selected = -1
			return m.finish()
		case "enter":
			m.selected = m.table.Cursor()
			return m.finish()
		}
	}

	// Let table handle navigation
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m SelectorModel) finish() (tea.Model, tea.Cmd) {
	m.quitting = true
	if m.config.Embedded {
		done := SelectorDoneMsg{Index: m.selected, Value: m.SelectedValue()}
		return m, func() tea.Msg { return done }
	}
	return m, tea.Quit
}

// SetLayout resizes the selector to a new layout
func (m *SelectorModel) SetLayout(layout Layout) {
	m.layout = layout
	m.table.SetColumns(CalculateColumns(m.config.Columns, layout.TableWidth))
	m.table.SetHeight(m.tableHeight())
}

func (m SelectorModel) tableHeight() int {
	h := m.layout.TableHeight
	if m.config.Subtitle != "" {
		h--
	}
	if h < MinTableHeight {
		h = MinTableHeight
	}
	return h
}

func (m SelectorModel) View() string {
	if m.quitting && !m.config.Embedded {
		return ""
	}
	return NewPageView(m.layout).
		CustomContent(ViewHeaderWithSubtitle(m.config.Title, m.config.Subtitle, m.layout.InnerWidth)).
		CustomContent(RenderTableWithSelection(m.table, m.layout)).
		Help(m.config.HelpText).
		Build()
}

// Cursor returns the highlighted row
func (m SelectorModel) Cursor() int {
	return m.table.Cursor()
}

// Selected returns the index of the selected item, or -1 if cancelled.
func (m SelectorModel) Selected() int {
	return m.selected
}

// SelectedValue returns the value of the selected item.
// If Values were provided in config, returns the corresponding value.
// Otherwise returns the display label.
func (m SelectorModel) SelectedValue() string {
	if m.selected < 0 || m.selected >= len(m.config.Items) {
		return ""
	}
	if len(m.config.Values) > m.selected {
		return m.config.Values[m.selected]
	}
	return m.config.Items[m.selected]
}

// NewFacetPicker builds an embedded selector over the options of one facet.
// counts maps each value to the number of loaded logs carrying it; the
// models.FacetAll entry holds the total.
func NewFacetPicker(kind models.FacetKind, options []string, counts map[string]int, current string, layout Layout) SelectorModel {
	items := make([]string, len(options))
	rows := make([][]string, len(options))
	initial := 0
	for i, v := range options {
		label := v
		if v == models.FacetAll {
			label = kind.AllLabel()
		}
		items[i] = label
		rows[i] = []string{label, strconv.Itoa(counts[v])}
		if v == current {
			initial = i
		}
	}

	return NewSelectorModel(SelectorConfig{
		Title:    kind.Title(),
		Subtitle: fmt.Sprintf("%d values", len(options)-1),
		HelpText: "↑/↓: navigate | Enter: apply filter | Esc: cancel",
		Columns:  FacetColumns(kind.Title()),
		Rows:     rows,
		Items:    items,
		Values:   options,
		Initial:  initial,
		Embedded: true,
	}, layout)
}

// RunSelector runs a selector TUI and returns the selected index.
// Returns -1 if the user cancelled.
func RunSelector(cfg SelectorConfig) (int, error) {
	cfg.Embedded = false
	p := tea.NewProgram(NewSelectorModel(cfg, DefaultLayout()), tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return -1, fmt.Errorf("selector error: %w", err)
	}
	return finalModel.(SelectorModel).Selected(), nil
}

// SelectRecentFile offers the distinct files from the import history. It
// returns the chosen path, or "" when the user wants to enter another file.
func SelectRecentFile(history []models.ImportRecord) (string, error) {
	var items []string
	var rows [][]string
	seen := make(map[string]bool)
	for _, h := range history {
		if seen[h.FileName] {
			continue
		}
		seen[h.FileName] = true
		items = append(items, h.FileName)
		rows = append(rows, []string{h.FileName, strconv.Itoa(h.RecordCount), h.ImportedAt.Local().Format(time.DateTime)[:16]})
	}
	recent := len(items)
	items = append(items, "Open a different file...")
	rows = append(rows, []string{"Open a different file...", "", ""})

	idx, err := RunSelector(SelectorConfig{
		Title:    "Recent Log Files",
		Subtitle: fmt.Sprintf("%d files", recent),
		HelpText: "↑/↓: navigate | Enter: open | Esc: cancel",
		Columns:  HistoryColumns(),
		Rows:     rows,
		Items:    items,
	})
	if err != nil {
		return "", err
	}
	if idx < 0 {
		return "", ErrCancelled
	}
	if idx >= recent {
		return "", nil
	}
	return items[idx], nil
}
