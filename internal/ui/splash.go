package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const splashDuration = 1500 * time.Millisecond

// SplashModel is the TUI model for the splash screen
type SplashModel struct {
	width  int
	height int
	done   bool
}

type splashTimeoutMsg struct{}

func waitForTimeout() tea.Cmd {
	return tea.Tick(splashDuration, func(time.Time) tea.Msg {
		return splashTimeoutMsg{}
	})
}

func (m SplashModel) Init() tea.Cmd {
	return tea.Batch(waitForTimeout(), tea.WindowSize())
}

func (m SplashModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg, splashTimeoutMsg:
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

var splashStars = []string{
	"·      ✦          ·        *     ",
	"    *        ·         ✦        ",
	"",
	"A S T R O L O G",
	"AstroPlanner observation log viewer",
	"",
	"  ✦       ·          *      ·   ",
}

func (m SplashModel) View() string {
	if m.done {
		return ""
	}

	layout := NewLayout(m.width, m.height)
	height := layout.ViewportHeight - 2

	var b strings.Builder
	top := (height - len(splashStars)) / 2
	b.WriteString(strings.Repeat("\n", max(top, 0)))
	for i, line := range splashStars {
		switch i {
		case 3:
			line = TitleStyle.Render(line)
		case 4:
			line = AccentStyle.Render(line)
		default:
			line = DimStyle.Render(line)
		}
		b.WriteString(CenterText(line, layout.InnerWidth))
		b.WriteString("\n")
	}

	return BorderStyle.
		Width(layout.InnerWidth).
		Height(height).
		Render(PadContentToHeight(b.String(), height))
}

// ShowSplash displays the splash screen until a key press or the timeout
func ShowSplash() {
	model := SplashModel{
		width:  DefaultWidth,
		height: DefaultHeight,
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, _ = p.Run()

	// Clear screen before continuing
	fmt.Print("\033[2J\033[H")
}
