package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Guide      key.Binding
	CycleTheme key.Binding
	Tab        key.Binding
	ShiftTab   key.Binding
	Escape     key.Binding

	// Pages
	NextPage key.Binding
	PrevPage key.Binding
	GoToPage key.Binding
	Retry    key.Binding

	// Grid
	Next   key.Binding
	Prev   key.Binding
	Home   key.Binding
	End    key.Binding
	Open   key.Binding
	Mark   key.Binding
	About  key.Binding
	Anchor key.Binding
	Copy   key.Binding

	// Scrolling
	ScrollUp   key.Binding
	ScrollDown key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Guide: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Keyboard guide"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next region"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Previous region"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Close / clear"),
		),

		NextPage: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "Next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "Previous page"),
		),
		GoToPage: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "Go to page"),
		),
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Retry"),
		),

		Next: key.NewBinding(
			key.WithKeys("right", "down", "l", "j"),
			key.WithHelp("→/↓", "Next"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "up", "h", "k"),
			key.WithHelp("←/↑", "Previous"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("home", "First"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("end", "Last"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Open"),
		),
		Mark: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "Mark phrase"),
		),
		About: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Jump to about"),
		),
		Anchor: key.NewBinding(
			key.WithKeys("ctrl+home"),
			key.WithHelp("ctrl+home", "Focus close button"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "Copy phrase"),
		),

		ScrollUp: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k", "Scroll up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j", "Scroll down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "Page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdown", "Page down"),
		),
	}
}

// ShortHelp returns key bindings for the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Open, k.PrevPage, k.NextPage, k.Guide, k.Quit}
}

// FullHelp returns key bindings grouped for the expanded help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.ShiftTab, k.PrevPage, k.NextPage, k.GoToPage},
		{k.Next, k.Prev, k.Home, k.End},
		{k.Open, k.Mark, k.Escape, k.About},
		{k.Anchor, k.Copy, k.PageUp, k.PageDown},
		{k.Retry, k.CycleTheme, k.Guide, k.Quit},
	}
}
