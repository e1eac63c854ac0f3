package block

import (
	"fmt"
	"math"
)

// Snap is the quantization grid for block times: 15 minutes.
const Snap = 0.25

// HoursPerDay is the length of the timeline in hours.
const HoursPerDay = 24.0

// Quantize rounds a time-of-day to the nearest quarter hour and clamps
// it to [0, 24]. It is idempotent.
func Quantize(t float64) float64 {
	q := math.Round(t/Snap) * Snap
	if q < 0 {
		return 0
	}
	if q > HoursPerDay {
		return HoursPerDay
	}
	return q
}

// FormatClock renders a time-of-day as zero-padded "HH:MM".
// Minute round-off at the hour boundary carries into the hour field.
func FormatClock(t float64) string {
	h := int(math.Floor(t))
	m := int(math.Round((t - math.Floor(t)) * 60))
	if m >= 60 {
		h++
		m -= 60
	}
	return fmt.Sprintf("%02d:%02d", h%24, m)
}

// ParseClock parses a "HH:MM" string into a time-of-day in hours.
func ParseClock(s string) (float64, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, ErrInvalidTimeFormat
	}
	for _, i := range [4]int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return 0, ErrInvalidTimeFormat
		}
	}
	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')
	if h > 23 || m > 59 {
		return 0, ErrInvalidTimeFormat
	}
	return float64(h) + float64(m)/60, nil
}

// Duration returns the length of the range [start, end), treating
// end <= start as a range that wraps past midnight.
func Duration(start, end float64) float64 {
	if end > start {
		return end - start
	}
	return end - start + HoursPerDay
}

// NormalizeRange re-quantizes and re-clamps an incoming (start, end) pair.
// It is the last line of defense for times arriving from outside the
// engine, e.g. the numeric time editor.
func NormalizeRange(start, end float64) (float64, float64) {
	if math.IsNaN(start) || math.IsInf(start, 0) {
		start = 0
	}
	if math.IsNaN(end) || math.IsInf(end, 0) {
		end = 0
	}
	start = Quantize(math.Mod(math.Mod(start, HoursPerDay)+HoursPerDay, HoursPerDay))
	end = Quantize(math.Mod(math.Mod(end, HoursPerDay)+HoursPerDay, HoursPerDay))
	if start >= HoursPerDay {
		start = 0
	}
	if end >= HoursPerDay {
		end = 0
	}
	return start, end
}

// WellFormed reports whether both times are finite numbers inside [0, 24).
// Malformed blocks are dropped before layout.
func WellFormed(start, end float64) bool {
	for _, t := range [2]float64{start, end} {
		if math.IsNaN(t) || math.IsInf(t, 0) || t < 0 || t >= HoursPerDay {
			return false
		}
	}
	return true
}
