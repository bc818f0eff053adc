package nav

import "fmt"

// Outcome describes what a key did to a navigation widget.
type Outcome struct {
	// Handled is false when the widget left the key to someone else.
	Handled bool
	// Moved is true when the index changed.
	Moved bool
	Index int
	// Activate is set when the item at Index was activated (Enter).
	Activate bool
	// Target is where input focus must go; zero means stay put.
	Target       FocusTarget
	Announcement string
}

// Grid tracks the focused phrase card. Movement clamps at both ends.
type Grid struct {
	cursor Cursor
	marked bool
}

// NewGrid returns a grid over n cards focused on the first.
func NewGrid(n int) Grid {
	return Grid{cursor: NewCursor(n, Clamp)}
}

// Index returns the focused card.
func (g Grid) Index() int { return g.cursor.Index() }

// Len returns the number of cards.
func (g Grid) Len() int { return g.cursor.Len() }

// Marked reports whether the focused card carries the selection marker.
func (g Grid) Marked() bool { return g.marked }

// Resize updates the card count after the list changed, re-clamping the index.
func (g *Grid) Resize(n int) {
	g.cursor.Resize(n)
	if n == 0 {
		g.marked = false
	}
}

// Focus moves to card i programmatically, e.g. when a detail view closes.
func (g *Grid) Focus(i int) Outcome {
	if g.Len() == 0 {
		return Outcome{}
	}
	moved := g.cursor.Set(i)
	return Outcome{
		Handled: true,
		Moved:   moved,
		Index:   g.Index(),
		Target:  FocusTarget{Kind: TargetCard, Index: g.Index()},
	}
}

// Handle applies a key. inNested is true when focus sits inside a region
// (a card's reference badges) that owns its own directional keys; those keys
// are then deferred. Tab is never handled here.
func (g *Grid) Handle(k Key, inNested bool) Outcome {
	if k == KeyTab || k == KeyNone {
		return Outcome{Index: g.Index()}
	}
	if inNested && k.directional() {
		return Outcome{Index: g.Index()}
	}
	if k == KeyAbout {
		return Outcome{
			Handled:      true,
			Index:        g.Index(),
			Target:       FocusTarget{Kind: TargetAbout},
			Announcement: "Jumped to about section",
		}
	}
	if g.Len() == 0 {
		return Outcome{Index: g.Index()}
	}

	out := Outcome{Handled: true}
	switch k {
	case KeyNext:
		out.Moved = g.cursor.Move(1)
	case KeyPrev:
		out.Moved = g.cursor.Move(-1)
	case KeyHome:
		out.Moved = g.cursor.First()
	case KeyEnd:
		out.Moved = g.cursor.Last()
	case KeyEnter:
		out.Activate = true
	case KeySpace:
		g.marked = !g.marked
	case KeyEscape:
		if !g.marked {
			out.Handled = false
		}
		g.marked = false
	default:
		out.Handled = false
	}
	out.Index = g.Index()
	if out.Moved {
		g.marked = false
		out.Target = FocusTarget{Kind: TargetCard, Index: out.Index}
		out.Announcement = PositionAnnouncement(out.Index, g.Len())
	}
	return out
}

// PositionAnnouncement renders the assistive announcement for card i of n.
func PositionAnnouncement(i, n int) string {
	return fmt.Sprintf("Phrase %d of %d", i+1, n)
}
