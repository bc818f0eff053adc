package nav

// Key is a navigation input, already decoded from the terminal.
type Key int

const (
	KeyNone Key = iota
	KeyNext     // right / down
	KeyPrev     // left / up
	KeyHome
	KeyEnd
	KeyEnter
	KeySpace
	KeyEscape
	KeyTab
	KeyAbout
)

// KeyFromString maps bubbletea key names to navigation keys.
func KeyFromString(s string) Key {
	switch s {
	case "right", "down", "l", "j":
		return KeyNext
	case "left", "up", "h", "k":
		return KeyPrev
	case "home", "g":
		return KeyHome
	case "end", "G":
		return KeyEnd
	case "enter":
		return KeyEnter
	case " ", "space":
		return KeySpace
	case "esc":
		return KeyEscape
	case "tab", "shift+tab":
		return KeyTab
	case "a", "A":
		return KeyAbout
	default:
		return KeyNone
	}
}

// directional reports keys a nested region may claim for itself.
func (k Key) directional() bool {
	switch k {
	case KeyNext, KeyPrev, KeyHome, KeyEnd:
		return true
	}
	return false
}

// TargetKind identifies what should receive input focus.
type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetCard
	TargetBadge
	TargetAbout
	TargetTab
	TargetModalAnchor
	TargetModalBadge
)

// FocusTarget is an opaque handle the renderer turns into a focus change.
type FocusTarget struct {
	Kind  TargetKind
	Index int
}

// IsZero reports whether there is no focus change.
func (t FocusTarget) IsZero() bool { return t.Kind == TargetNone }
