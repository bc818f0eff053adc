// Package modal implements the phrase detail overlay lifecycle.
package modal

import (
	"time"

	"github.com/five82/phrasebook/internal/nav"
	"github.com/five82/phrasebook/internal/phrases"
)

// ClearDelay is how long the closed overlay keeps its payload so the exit
// frame never renders empty.
const ClearDelay = 200 * time.Millisecond

// Focus is the sub-element of the overlay holding input focus.
type Focus int

const (
	FocusAnchor Focus = iota // the close control
	FocusBadges
)

// ActionKind says what the renderer must do after a key.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionFocus
	ActionClose
	ActionOpenReference
	ActionCopy
)

// Action is the result of Handle.
type Action struct {
	Kind         ActionKind
	Target       nav.FocusTarget
	Reference    phrases.Reference
	Announcement string
	// Close carries the payload-clear generation and the grid cell that
	// regains focus.
	ClearGen uint64
	ReturnTo nav.FocusTarget
}

// Controller holds ModalState: open implies a selected phrase.
type Controller struct {
	open     bool
	selected *phrases.Phrase
	origin   int
	gen      uint64
	focus    Focus
	badges   nav.Strip
}

// IsOpen reports whether the overlay is shown.
func (c *Controller) IsOpen() bool { return c.open }

// Selected returns the phrase payload, which may linger briefly after close.
func (c *Controller) Selected() (phrases.Phrase, bool) {
	if c.selected == nil {
		return phrases.Phrase{}, false
	}
	return *c.selected, true
}

// Origin returns the grid index the overlay was opened from.
func (c *Controller) Origin() int { return c.origin }

// Focus returns the focused sub-element.
func (c *Controller) Focus() Focus { return c.focus }

// BadgeIndex returns the focused reference badge.
func (c *Controller) BadgeIndex() int { return c.badges.Index() }

// Open shows phrase p, remembering the grid cell it came from. Focus goes to
// the close anchor.
func (c *Controller) Open(p phrases.Phrase, origin int) nav.FocusTarget {
	dup := p
	dup.References = append([]phrases.Reference(nil), p.References...)
	c.selected = &dup
	c.gen++
	c.origin = origin
	c.badges = nav.NewStrip(len(dup.References), nav.TargetModalBadge)
	c.focus = FocusAnchor
	c.open = true
	return nav.FocusTarget{Kind: nav.TargetModalAnchor}
}

// Close hides the overlay. The payload stays until ClearSelected is called
// with the returned generation after ClearDelay.
func (c *Controller) Close() Action {
	if !c.open {
		return Action{}
	}
	c.open = false
	return Action{
		Kind:     ActionClose,
		ClearGen: c.gen,
		ReturnTo: nav.FocusTarget{Kind: nav.TargetCard, Index: c.origin},
	}
}

// ClearSelected drops the payload if no open happened since the close that
// produced gen.
func (c *Controller) ClearSelected(gen uint64) bool {
	if c.open || gen != c.gen {
		return false
	}
	c.selected = nil
	return true
}

// Handle applies a key while the overlay is open.
func (c *Controller) Handle(key string) Action {
	if !c.open {
		return Action{}
	}
	switch key {
	case "esc":
		return c.Close()
	case "ctrl+home":
		c.focus = FocusAnchor
		return Action{Kind: ActionFocus, Target: nav.FocusTarget{Kind: nav.TargetModalAnchor}, Announcement: "Close button"}
	case "tab", "shift+tab":
		return c.cycleFocus()
	case "y":
		return Action{Kind: ActionCopy}
	}

	if c.focus == FocusAnchor {
		if key == "enter" || key == " " {
			return c.Close()
		}
		return Action{}
	}

	// Vertical keys scroll the body; only horizontal keys move among badges.
	switch key {
	case "left", "right", "h", "l", "home", "end", "enter":
	default:
		return Action{}
	}
	out := c.badges.Handle(nav.KeyFromString(key))
	switch {
	case out.Activate:
		return Action{Kind: ActionOpenReference, Reference: c.selected.References[out.Index]}
	case out.Moved:
		return Action{Kind: ActionFocus, Target: out.Target, Announcement: out.Announcement}
	}
	return Action{}
}

func (c *Controller) cycleFocus() Action {
	if c.focus == FocusAnchor && c.badges.Len() > 0 {
		c.focus = FocusBadges
		return Action{
			Kind:         ActionFocus,
			Target:       nav.FocusTarget{Kind: nav.TargetModalBadge, Index: c.badges.Index()},
			Announcement: c.selected.References[c.badges.Index()].String(),
		}
	}
	c.focus = FocusAnchor
	return Action{Kind: ActionFocus, Target: nav.FocusTarget{Kind: nav.TargetModalAnchor}, Announcement: "Close button"}
}
