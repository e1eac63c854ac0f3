// Package block defines the core domain types for daygrid.
package block

import (
	"errors"
	"math"

	"github.com/google/uuid"
)

// Validation errors.
var (
	ErrInvalidTimeFormat = errors.New("time must be in HH:MM format")
	ErrEmptyCalendarName = errors.New("calendar name cannot be empty")
	ErrMissingCalendar   = errors.New("block must belong to a calendar")
)

// Domain errors.
var (
	ErrBlockNotFound    = errors.New("block not found")
	ErrCalendarNotFound = errors.New("calendar not found")
)

// DefaultDuration is the length in hours of a block created by clicking
// an empty stretch of the timeline.
const DefaultDuration = 2.0

// MinDuration is the shortest a block can be resized to: one grid step.
const MinDuration = Snap

// Block is a labeled time-of-day range on one calendar's timeline.
// Start and End are hours in [0, 24), quantized to quarter hours.
// End <= Start denotes a range that wraps past midnight; there is no
// separate wrap flag.
type Block struct {
	ID         string
	CalendarID string
	Label      string
	Color      string // hex color, opaque to the layout engine
	Start      float64
	End        float64
}

// Calendar is a named grouping of blocks. The layout engine only uses
// it as a partition key.
type Calendar struct {
	ID    string
	Name  string
	Color string
}

// New creates a block starting at the given quantized time with the
// default duration. An end past 24:00 wraps into the next-day range.
func New(calendarID, label, color string, start float64) (Block, error) {
	if calendarID == "" {
		return Block{}, ErrMissingCalendar
	}
	start = Quantize(start)
	end := math.Mod(start+DefaultDuration, HoursPerDay)
	return Block{
		ID:         uuid.NewString(),
		CalendarID: calendarID,
		Label:      label,
		Color:      color,
		Start:      start,
		End:        end,
	}, nil
}

// NewCalendar creates a calendar with a fresh identifier.
func NewCalendar(name, color string) (Calendar, error) {
	if name == "" {
		return Calendar{}, ErrEmptyCalendarName
	}
	return Calendar{ID: uuid.NewString(), Name: name, Color: color}, nil
}

// Duration returns the block length in hours, accounting for
// midnight wrap.
func (b Block) Duration() float64 {
	return Duration(b.Start, b.End)
}

// WrapsMidnight reports whether the block crosses the 24:00 boundary.
func (b Block) WrapsMidnight() bool {
	return b.End <= b.Start
}

// Overlaps reports whether two blocks overlap in time, comparing the
// stored fields directly. Wrapping blocks are compared on their raw
// Start/End values, which is not wrap-aware; row packing depends on
// this exact comparison for layout stability.
func (b Block) Overlaps(other Block) bool {
	return b.Start < other.End && b.End > other.Start
}

// WellFormed reports whether the block's times are valid for layout.
func (b Block) WellFormed() bool {
	return WellFormed(b.Start, b.End)
}

// TimeRange renders the block's range as "HH:MM-HH:MM".
func (b Block) TimeRange() string {
	return FormatClock(b.Start) + "-" + FormatClock(b.End)
}
