package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/five82/phrasebook/internal/modal"
	"github.com/five82/phrasebook/internal/phrases"
)

func (m Model) modalWidth() int {
	return max(min(modalMaxWidth, m.width-4), 30)
}

// setModalContent fills the details viewport for the selected phrase.
func (m *Model) setModalContent() {
	p, ok := m.modal.Selected()
	if !ok {
		return
	}
	inner := m.modalWidth() - 6
	body := m.renderModalBody(p, inner)

	m.modalView.Width = inner
	m.modalView.Height = max(min(lipgloss.Height(body), m.height-12), 3)
	m.modalView.SetContent(body)
}

func (m Model) renderModalBody(p phrases.Phrase, width int) string {
	styles := m.styles()
	section := func(label, lang, text string) string {
		title := styles.MutedText.Bold(true).Render(label)
		return title + "\n" + styles.Language(lang).Render(wordwrap.String(text, width))
	}

	hindi := section("Hindi", "hindi", p.HindiOrPlaceholder())
	return strings.Join([]string{
		section("Arabic", "arabic", p.ArabicText),
		section("English", "english", p.EnglishText),
		hindi,
		section("Urdu", "urdu", p.UrduText),
	}, "\n\n")
}

// renderModal renders the phrase details overlay.
func (m Model) renderModal() string {
	styles := m.styles()
	p, _ := m.modal.Selected()
	width := m.modalWidth()

	anchor := styles.Button.Render("Close (esc)")
	if m.modal.Focus() == modal.FocusAnchor {
		anchor = styles.ButtonFocused.Render("Close (esc)")
	}
	title := styles.Text.Bold(true).Render("Phrase details")
	gap := width - 6 - lipgloss.Width(title) - lipgloss.Width(anchor)
	if gap < 1 {
		gap = 1
	}
	top := lipgloss.JoinHorizontal(lipgloss.Center, title, strings.Repeat(" ", gap), anchor)

	focus := -1
	if m.modal.Focus() == modal.FocusBadges {
		focus = m.modal.BadgeIndex()
	}
	refs := styles.MutedText.Bold(true).Render("References")
	if badges := m.renderBadges(p.References, focus, width-6); badges != "" {
		refs += "\n" + badges
	} else {
		refs += "\n" + styles.FaintText.Render("None")
	}

	hint := styles.FaintText.Render("tab references · enter open verse · y copy · j/k scroll · esc close")

	content := strings.Join([]string{
		top,
		"",
		m.modalView.View(),
		"",
		refs,
		"",
		hint,
	}, "\n")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.BorderFocus)).
		Padding(1, 2).
		Width(width - 2)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		box.Render(content),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}
