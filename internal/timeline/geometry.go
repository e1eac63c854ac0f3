package timeline

import "daygrid/internal/block"

// Viewport is the horizontal extent of the timeline's drawable area in
// pixel units, supplied by the rendering layer per pointer event. In
// the TUI one terminal cell is one pixel.
type Viewport struct {
	Left  float64
	Width float64
}

// TimeAt converts a pointer X position to a quantized time-of-day.
// Positions outside the viewport clamp to its edges, so the result is
// always in [0, 24] and on the quarter-hour grid.
func (v Viewport) TimeAt(x float64) float64 {
	if v.Width <= 0 {
		return 0
	}
	rel := x - v.Left
	if rel < 0 {
		rel = 0
	}
	if rel > v.Width {
		rel = v.Width
	}
	return block.Quantize(rel / v.Width * block.HoursPerDay)
}

// TimeShift converts a pointer movement in pixels to a time delta in
// hours. Unlike TimeAt the result is neither clamped nor quantized;
// gesture proposals clamp and quantize after applying it.
func (v Viewport) TimeShift(dx float64) float64 {
	if v.Width <= 0 {
		return 0
	}
	return dx / v.Width * block.HoursPerDay
}

// TimeFraction maps a time-of-day to its fraction of the timeline
// width, for rendering geometry. Callers pass values already in range;
// no clamping is applied.
func TimeFraction(t float64) float64 {
	return t / block.HoursPerDay
}
