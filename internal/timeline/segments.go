package timeline

import "daygrid/internal/block"

// Segment is one visual slice of a block on the 24-hour strip. A block
// that wraps midnight renders as two segments in the same row: the
// head [start, 24) and a continuation [0, end). Only the head offers
// resize handles and delete; the continuation still accepts move
// drags since it belongs to the same block.
type Segment struct {
	Block        block.Block
	Start        float64
	End          float64
	Row          int
	Continuation bool
}

// ViewModel is the derived render model for one calendar's snapshot:
// row-packed segments plus the row count. It is recomputed from
// scratch whenever the snapshot changes.
type ViewModel struct {
	Segments []Segment
	Assign   RowAssignment
}

// RowCount returns the number of display rows, never below MinRows.
func (vm ViewModel) RowCount() int {
	return vm.Assign.RowCount
}

// Build derives the render model for a snapshot. Malformed blocks
// (NaN or out-of-range times) are dropped before packing; the packer
// is not required to handle them.
func Build(blocks []block.Block) ViewModel {
	valid := blocks[:0:0]
	for _, b := range blocks {
		if b.WellFormed() {
			valid = append(valid, b)
		}
	}

	assign := PackRows(valid)
	segments := make([]Segment, 0, len(valid))
	for _, b := range valid {
		row := assign.Row(b.ID)
		if b.WrapsMidnight() {
			segments = append(segments, Segment{Block: b, Start: b.Start, End: block.HoursPerDay, Row: row})
			// A block ending exactly at 00:00 has nothing past midnight;
			// an empty [0, 0) continuation would still paint one cell.
			if b.End > 0 {
				segments = append(segments, Segment{Block: b, Start: 0, End: b.End, Row: row, Continuation: true})
			}
			continue
		}
		segments = append(segments, Segment{Block: b, Start: b.Start, End: b.End, Row: row})
	}

	return ViewModel{Segments: segments, Assign: assign}
}

// Marker is a labeled tick on the hour ruler.
type Marker struct {
	Time     float64
	Fraction float64
}

// Markers returns ruler ticks every step hours across the day.
func Markers(step float64) []Marker {
	if step <= 0 {
		step = 1
	}
	var marks []Marker
	for t := 0.0; t < block.HoursPerDay; t += step {
		marks = append(marks, Marker{Time: t, Fraction: TimeFraction(t)})
	}
	return marks
}
