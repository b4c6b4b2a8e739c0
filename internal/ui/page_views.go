package ui

import "strings"

// page_views.go provides a fluent API for building consistent page views.

// PageViewBuilder handles titles, dividers, spacing and the two-box layout.
//
//	return NewPageView(m.Layout).
//	    Title("Logs").
//	    Divider().
//	    QueryInfo("Type=Galaxy").
//	    CustomContent(cards).
//	    Status(m.StatusMsg).
//	    Help("↑/↓: navigate | q: quit").
//	    Build()
type PageViewBuilder struct {
	layout     Layout
	content    strings.Builder
	helpText   string
	hadContent bool
}

// NewPageView creates a new PageViewBuilder with the given layout.
func NewPageView(layout Layout) *PageViewBuilder {
	return &PageViewBuilder{layout: layout}
}

// Title adds a title line (bold white).
func (b *PageViewBuilder) Title(title string) *PageViewBuilder {
	return b.line(RenderTitle(title))
}

// Subtitle adds a subtitle line (dim gray).
func (b *PageViewBuilder) Subtitle(subtitle string) *PageViewBuilder {
	if subtitle == "" {
		return b
	}
	return b.line(RenderDim(subtitle))
}

// Divider adds a full-width horizontal divider.
func (b *PageViewBuilder) Divider() *PageViewBuilder {
	return b.line(FullWidthDivider(b.layout.InnerWidth))
}

// Spacing adds blank lines.
func (b *PageViewBuilder) Spacing(lines int) *PageViewBuilder {
	b.content.WriteString(strings.Repeat("\n", lines))
	return b
}

// QueryInfo adds the active filter line (accented).
func (b *PageViewBuilder) QueryInfo(info string) *PageViewBuilder {
	if info == "" {
		return b
	}
	return b.line(AccentStyle.Render(info))
}

// Text adds normal text content.
func (b *PageViewBuilder) Text(text string) *PageViewBuilder {
	return b.line(NormalStyle.Render(text))
}

// DimText adds dimmed text content.
func (b *PageViewBuilder) DimText(text string) *PageViewBuilder {
	return b.line(DimStyle.Render(text))
}

// CustomContent adds pre-rendered content.
func (b *PageViewBuilder) CustomContent(content string) *PageViewBuilder {
	b.content.WriteString(content)
	b.hadContent = true
	return b
}

// Status adds a status message (if not empty).
func (b *PageViewBuilder) Status(msg string, isError bool) *PageViewBuilder {
	if msg == "" {
		return b
	}
	if b.hadContent {
		b.content.WriteString("\n")
	}
	if isError {
		return b.line(RenderError(msg))
	}
	return b.line(ProgressStyle.Render(msg))
}

// Help sets the help text for the footer box.
func (b *PageViewBuilder) Help(helpText string) *PageViewBuilder {
	b.helpText = helpText
	return b
}

// Lines returns how many lines of content have been added so far.
func (b *PageViewBuilder) Lines() int {
	return strings.Count(b.content.String(), "\n")
}

// Build constructs the final view string with two-box layout.
func (b *PageViewBuilder) Build() string {
	return TwoBoxView(b.content.String(), b.helpText, b.layout)
}

// BuildContent builds just the content portion without the two-box layout.
func (b *PageViewBuilder) BuildContent() string {
	return b.content.String()
}

func (b *PageViewBuilder) line(s string) *PageViewBuilder {
	b.content.WriteString(s)
	b.content.WriteString("\n")
	b.hadContent = true
	return b
}
