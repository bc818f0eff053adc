package nav

import "fmt"

// Tabs is the page tab bar. Unlike the grid, it wraps around at either end.
type Tabs struct {
	cursor Cursor
}

// NewTabs returns a tab bar over n pages with page active selected.
func NewTabs(n, active int) Tabs {
	t := Tabs{cursor: NewCursor(n, Wrap)}
	t.cursor.Set(active)
	return t
}

// Index returns the highlighted tab.
func (t Tabs) Index() int { return t.cursor.Index() }

// Select highlights tab i.
func (t *Tabs) Select(i int) bool { return t.cursor.Set(i) }

// Handle applies a key to the tab bar. Enter activates the highlighted page.
func (t *Tabs) Handle(k Key) Outcome {
	if t.cursor.Len() == 0 {
		return Outcome{}
	}
	out := Outcome{Handled: true}
	switch k {
	case KeyNext:
		out.Moved = t.cursor.Move(1)
	case KeyPrev:
		out.Moved = t.cursor.Move(-1)
	case KeyHome:
		out.Moved = t.cursor.First()
	case KeyEnd:
		out.Moved = t.cursor.Last()
	case KeyEnter:
		out.Activate = true
	default:
		out.Handled = false
	}
	out.Index = t.Index()
	if out.Moved {
		out.Target = FocusTarget{Kind: TargetTab, Index: out.Index}
		out.Announcement = fmt.Sprintf("Page %d of %d", out.Index+1, t.cursor.Len())
	}
	return out
}
