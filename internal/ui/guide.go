package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderGuide renders the keyboard guide overlay.
func (m Model) renderGuide() string {
	styles := m.theme.Styles()

	sections := []guideSection{
		{
			title: "Pages",
			items: []guideItem{
				{"[ / ]", "Previous / next page"},
				{"1-6", "Go to page"},
				{"tab", "Tab bar, about, grid, references"},
				{"r", "Retry a failed load"},
			},
		},
		{
			title: "Phrase grid",
			items: []guideItem{
				{"←↑ →↓", "Previous / next phrase"},
				{"home/end", "First / last phrase"},
				{"enter", "Open phrase details"},
				{"space", "Mark phrase"},
				{"esc", "Clear mark"},
				{"a", "Jump to about section"},
			},
		},
		{
			title: "Phrase details",
			items: []guideItem{
				{"esc", "Close"},
				{"tab", "Close button / references"},
				{"ctrl+home", "Back to close button"},
				{"enter", "Open verse on quran.com"},
				{"y", "Copy phrase"},
				{"j/k", "Scroll"},
			},
		},
		{
			title: "General",
			items: []guideItem{
				{"T", "Cycle theme"},
				{"?", "Show this guide"},
				{"q", "Quit"},
			},
		},
	}

	var b strings.Builder

	b.WriteString(styles.Text.Bold(true).Render("Keyboard Guide"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Warning)).
		Width(12)

	for i, section := range sections {
		b.WriteString(styles.AccentText.Bold(true).Render(section.title))
		b.WriteString("\n")

		for _, item := range section.items {
			b.WriteString(keyStyle.Render(item.key))
			b.WriteString(styles.Text.Render(item.desc))
			b.WriteString("\n")
		}

		if i < len(sections)-1 {
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("Press any key to continue"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(guideWidth)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		box.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}

type guideSection struct {
	title string
	items []guideItem
}

type guideItem struct {
	key  string
	desc string
}
