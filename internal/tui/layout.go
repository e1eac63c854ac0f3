package tui

import "daygrid/internal/timeline"

// Fixed vertical layout, in lines from the top of the screen.
// Title, tabs, ruler, then one line per timeline row.
const (
	titleLine  = 0
	tabsLine   = 1
	rulerLine  = 2
	gridTop    = 3
	gutterLeft = 1 // left padding before the strip
)

// viewport returns the horizontal extent of the timeline strip.
func (m Model) viewport() timeline.Viewport {
	w := m.width - 2*gutterLeft
	if w < 1 {
		w = 1
	}
	return timeline.Viewport{Left: gutterLeft, Width: float64(w)}
}

// rowAt maps a screen line to a timeline row index, or -1 when the
// line is outside the grid.
func (m Model) rowAt(y, rowCount int) int {
	row := y - gridTop
	if row < 0 || row >= rowCount {
		return -1
	}
	return row
}

// colSpan maps a time interval to a half-open column range on the
// strip. A zero-width interval still occupies one cell so short
// blocks stay visible and clickable.
func colSpan(vp timeline.Viewport, start, end float64) (int, int) {
	x0 := int(vp.Left + timeline.TimeFraction(start)*vp.Width)
	x1 := int(vp.Left + timeline.TimeFraction(end)*vp.Width)
	if x1 <= x0 {
		x1 = x0 + 1
	}
	max := int(vp.Left + vp.Width)
	if x1 > max {
		x1 = max
	}
	return x0, x1
}
