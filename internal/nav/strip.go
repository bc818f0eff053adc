package nav

import "fmt"

// Strip is a horizontal run of reference badges. It clamps like the grid.
type Strip struct {
	cursor Cursor
	kind   TargetKind
}

// NewStrip returns a strip over n badges. kind is the focus target kind its
// moves produce (TargetBadge inside a card, TargetModalBadge in the detail view).
func NewStrip(n int, kind TargetKind) Strip {
	return Strip{cursor: NewCursor(n, Clamp), kind: kind}
}

// Index returns the focused badge.
func (s Strip) Index() int { return s.cursor.Index() }

// Len returns the number of badges.
func (s Strip) Len() int { return s.cursor.Len() }

// Handle applies a key. Enter activates the focused badge.
func (s *Strip) Handle(k Key) Outcome {
	if s.Len() == 0 {
		return Outcome{}
	}
	out := Outcome{Handled: true}
	switch k {
	case KeyNext:
		out.Moved = s.cursor.Move(1)
	case KeyPrev:
		out.Moved = s.cursor.Move(-1)
	case KeyHome:
		out.Moved = s.cursor.First()
	case KeyEnd:
		out.Moved = s.cursor.Last()
	case KeyEnter:
		out.Activate = true
	default:
		out.Handled = false
	}
	out.Index = s.Index()
	if out.Moved {
		out.Target = FocusTarget{Kind: s.kind, Index: out.Index}
		out.Announcement = fmt.Sprintf("Reference %d of %d", out.Index+1, s.Len())
	}
	return out
}
