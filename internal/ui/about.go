package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

type aboutKey struct {
	page  int
	width int
	theme string
}

// setAboutContent renders the current page's about text into the about
// viewport, caching by page, width and theme.
func (m *Model) setAboutContent() {
	width := m.width - 4
	if width < 20 {
		width = 20
	}
	k := aboutKey{page: m.page, width: width, theme: m.theme.Name}
	content, ok := m.aboutCache[k]
	if !ok {
		content = m.renderAboutMarkdown(width)
		m.aboutCache[k] = content
	}

	m.aboutView.Width = width
	m.aboutView.Height = min(aboutMaxHeight-2, lipgloss.Height(content))
	m.aboutView.SetContent(content)
}

func (m Model) renderAboutMarkdown(width int) string {
	cat := m.catalog.At(m.page)
	md := "## " + cat.AboutTitle + "\n\n" + cat.About

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(m.theme.GlamourStyle),
		glamour.WithWordWrap(width),
	)
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			return strings.Trim(out, "\n")
		}
	}
	m.log.Debug().Err(err).Msg("markdown render failed, using plain text")
	return wordwrap.String(cat.AboutTitle+"\n\n"+cat.About, width)
}
