// Package nav holds the keyboard navigation state machines for the browser:
// the phrase grid, the page tab bar and reference badge strips. They produce
// focus targets and announcements; moving real terminal focus is left to the
// renderer.
package nav

// Policy decides what happens when a cursor moves past either end.
type Policy int

const (
	// Clamp stops at the first and last positions.
	Clamp Policy = iota
	// Wrap continues from the opposite end.
	Wrap
)

// Cursor is an index into an ordered list of n positions.
type Cursor struct {
	index  int
	n      int
	policy Policy
}

// NewCursor returns a cursor at 0 over n positions.
func NewCursor(n int, policy Policy) Cursor {
	c := Cursor{policy: policy}
	c.Resize(n)
	return c
}

// Index returns the current position. It is 0 for an empty list.
func (c Cursor) Index() int { return c.index }

// Len returns the number of positions.
func (c Cursor) Len() int { return c.n }

// Resize changes the number of positions and re-clamps the index into range.
func (c *Cursor) Resize(n int) {
	if n < 0 {
		n = 0
	}
	c.n = n
	c.index = clamp(c.index, 0, n-1)
}

// Move shifts by delta under the cursor's policy and reports whether the
// index changed.
func (c *Cursor) Move(delta int) bool {
	if c.n == 0 {
		return false
	}
	next := c.index + delta
	switch c.policy {
	case Wrap:
		next = ((next % c.n) + c.n) % c.n
	default:
		next = clamp(next, 0, c.n-1)
	}
	return c.set(next)
}

// First moves to position 0.
func (c *Cursor) First() bool {
	if c.n == 0 {
		return false
	}
	return c.set(0)
}

// Last moves to the final position.
func (c *Cursor) Last() bool {
	if c.n == 0 {
		return false
	}
	return c.set(c.n - 1)
}

// Set jumps to i, clamped into range.
func (c *Cursor) Set(i int) bool {
	if c.n == 0 {
		return false
	}
	return c.set(clamp(i, 0, c.n-1))
}

func (c *Cursor) set(i int) bool {
	if i == c.index {
		return false
	}
	c.index = i
	return true
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
