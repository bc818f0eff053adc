package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"github.com/five82/phrasebook/internal/phrases"
)

// renderMain renders the page: header, about panel, content, status, footer.
func (m Model) renderMain() string {
	header := m.renderHeader()
	about := m.renderAbout()
	status := m.renderStatus()
	footer := m.styles().Footer.Render(m.help.View(m.keys))

	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(about) - statusHeight - footerHeight
	if contentHeight < 3 {
		contentHeight = 3
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		about,
		m.renderContent(contentHeight),
		status,
		footer,
	)
}

func (m Model) styles() Styles {
	return m.theme.Styles()
}

func (m Model) renderHeader() string {
	styles := m.styles()
	cat := m.catalog.At(m.page)

	left := styles.Logo.Render("phrasebook") + "  " + styles.Text.Bold(true).Render(cat.Title)
	right := ""
	if st := m.fetch.State(); st.Data != nil {
		right = styles.MutedText.Render(fmt.Sprintf("%d phrases · exported %s", st.Data.TotalPhrases, st.Data.ExportDate))
	}
	gap := m.width - 2 - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	title := styles.Header.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)

	return lipgloss.JoinVertical(lipgloss.Left, title, m.renderTabs())
}

func (m Model) renderTabs() string {
	styles := m.styles()
	parts := make([]string, 0, m.catalog.Len())
	for i, cat := range m.catalog.Categories() {
		label := fmt.Sprintf("%d %s", i+1, cat.Label)
		switch {
		case i == m.page:
			parts = append(parts, styles.TabActive.Render(label))
		case m.region == RegionTabs && i == m.tabs.Index():
			parts = append(parts, styles.TabHighlight.Render(label))
		default:
			parts = append(parts, styles.Tab.Render(label))
		}
	}
	bar := strings.Join(parts, " ")
	if m.region == RegionTabs {
		bar = styles.AccentText.Render("▸ ") + bar
	} else {
		bar = "  " + bar
	}
	return bar
}

func (m Model) renderAbout() string {
	styles := m.styles()
	panel := styles.Panel
	if m.region == RegionAbout {
		panel = styles.PanelFocused
	}
	return panel.Width(m.width - 2).Render(m.aboutView.View())
}

// renderContent renders the grid or the page's loading, error or empty state.
func (m Model) renderContent(height int) string {
	styles := m.styles()
	cat := m.catalog.At(m.page)
	st := m.fetch.State()

	var body string
	switch {
	case !cat.HasResource():
		body = styles.MutedText.Render(fmt.Sprintf("No phrases have been published for %s yet.", cat.Label))
	case st.Err != "":
		body = styles.DangerText.Render("Error: "+st.Err) + "\n\n" +
			styles.MutedText.Render("Press r to retry, or choose another page.")
	case st.Data == nil:
		body = m.spinner.View() + " " + styles.MutedText.Render("Loading phrases...")
	case st.Data.Len() == 0:
		body = styles.MutedText.Render("This collection is empty.")
	default:
		return m.renderGrid(st.Data, height)
	}

	return lipgloss.NewStyle().
		Width(m.width).
		Height(height).
		Padding(1, 2).
		Render(body)
}

// renderGrid lays cards out in rows and scrolls so the focused row is visible.
func (m Model) renderGrid(coll *phrases.Collection, height int) string {
	cols := gridColumns(m.width)
	cardWidth := m.width / cols
	focusRow := m.grid.Index() / cols

	var lines []string
	rowTop, rowBottom := 0, 0
	for start, row := 0, 0; start < len(coll.Phrases); start, row = start+cols, row+1 {
		end := min(start+cols, len(coll.Phrases))
		cards := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			cards = append(cards, m.renderCard(coll.Phrases[i], i, cardWidth))
		}
		rendered := strings.Split(lipgloss.JoinHorizontal(lipgloss.Top, cards...), "\n")
		if row == focusRow {
			rowTop = len(lines)
			rowBottom = rowTop + len(rendered)
		}
		lines = append(lines, rendered...)
	}

	offset := 0
	if rowBottom > height {
		offset = rowBottom - height
	}
	if offset > rowTop {
		offset = rowTop
	}
	end := min(offset+height, len(lines))
	visible := lines[offset:end]
	for len(visible) < height {
		visible = append(visible, "")
	}
	return strings.Join(visible, "\n")
}

func (m Model) renderCard(p phrases.Phrase, i, width int) string {
	styles := m.styles()
	focused := i == m.grid.Index() && (m.region == RegionGrid || m.region == RegionBadges)
	inner := width - 4
	if inner < 10 {
		inner = 10
	}

	heading := styles.FaintText.Render(fmt.Sprintf("#%d", i+1))
	if focused && m.grid.Marked() {
		heading += " " + styles.Marker.Render("● marked")
	}

	hindi := styles.Language("hindi").Render(clampText(p.HindiOrPlaceholder(), inner))
	if strings.TrimSpace(p.HindiText) == "" {
		hindi = styles.FaintText.Italic(true).Render(p.HindiOrPlaceholder())
	}

	rtl := lipgloss.NewStyle().Width(inner).Align(lipgloss.Right)
	blocks := []string{
		heading,
		rtl.Render(styles.Language("arabic").Render(clampText(p.ArabicText, inner))),
		styles.Language("english").Render(clampText(p.EnglishText, inner)),
		hindi,
		rtl.Render(styles.Language("urdu").Render(clampText(p.UrduText, inner))),
	}

	badgeFocus := -1
	if focused && m.region == RegionBadges {
		badgeFocus = m.badges.Index()
	}
	if badges := m.renderBadges(p.References, badgeFocus, inner); badges != "" {
		blocks = append(blocks, badges)
	}

	card := styles.Card
	if focused {
		card = styles.CardFocused
	}
	return card.Width(width - 2).Render(strings.Join(blocks, "\n"))
}

// renderBadges renders reference badges, wrapping onto extra lines as needed.
func (m Model) renderBadges(refs []phrases.Reference, focus, width int) string {
	if len(refs) == 0 {
		return ""
	}
	styles := m.styles()
	var rows []string
	var row []string
	rowWidth := 0
	for i, ref := range refs {
		style := styles.Badge
		if i == focus {
			style = styles.BadgeFocused
		}
		badge := style.Render(ref.String())
		w := lipgloss.Width(badge)
		if rowWidth > 0 && rowWidth+w > width {
			rows = append(rows, strings.Join(row, ""))
			row, rowWidth = nil, 0
		}
		row = append(row, badge)
		rowWidth += w
	}
	rows = append(rows, strings.Join(row, ""))
	return strings.Join(rows, "\n")
}

func (m Model) renderStatus() string {
	styles := m.styles()

	left := m.announcement
	if m.loading() && m.fetch.State().Data != nil {
		left = m.spinner.View() + " " + left
	}

	right := m.region.String()
	if m.grid.Len() > 0 {
		right = fmt.Sprintf("%s · %d/%d", right, m.grid.Index()+1, m.grid.Len())
	}
	right += " · " + m.theme.Name

	avail := m.width - 2 - lipgloss.Width(right) - 1
	if avail < 0 {
		avail = 0
	}
	left = truncate.StringWithTail(left, uint(avail), "…")
	gap := m.width - 2 - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return styles.Header.Width(m.width).Render(styles.InfoText.Render(left) + strings.Repeat(" ", gap) + styles.MutedText.Render(right))
}

// clampText wraps s to width and keeps at most CardTextLines lines.
func clampText(s string, width int) string {
	lines := strings.Split(wordwrap.String(strings.TrimSpace(s), width), "\n")
	if len(lines) <= CardTextLines {
		return strings.Join(lines, "\n")
	}
	lines = lines[:CardTextLines]
	last := truncate.String(lines[CardTextLines-1], uint(max(width-1, 1)))
	lines[CardTextLines-1] = last + "…"
	return strings.Join(lines, "\n")
}
