package ui

// Card grid sizing.
const (
	// CardMinWidth is the narrowest a phrase card may render, borders included.
	CardMinWidth = 38

	// CardMaxColumns caps the grid on very wide terminals.
	CardMaxColumns = 4

	// CardTextLines limits each language block inside a card.
	CardTextLines = 3
)

// Chrome heights.
const (
	headerHeight = 2 // title row + tab bar
	statusHeight = 1
	footerHeight = 1

	// aboutMaxHeight bounds the about panel, borders included.
	aboutMaxHeight = 10
)

// Overlay sizing.
const (
	modalMaxWidth = 90
	guideWidth    = 52
)

// gridColumns returns how many cards fit across width.
func gridColumns(width int) int {
	if width <= 0 {
		return 1
	}
	cols := width / CardMinWidth
	if cols < 1 {
		return 1
	}
	if cols > CardMaxColumns {
		return CardMaxColumns
	}
	return cols
}
