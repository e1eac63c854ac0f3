// Package timeline implements the layout and interactive-editing engine
// for the 24-hour block timeline: row packing, pixel/time mapping, the
// drag gesture state machine, and the throttled commit policy.
package timeline

import (
	"sort"

	"daygrid/internal/block"
)

// MinRows is the floor on reported row count; a few empty lanes keep
// the layout visually stable when a calendar holds few blocks.
const MinRows = 3

// RowAssignment maps block IDs to display rows. It is derived from a
// snapshot and recomputed whenever the snapshot changes, never stored.
type RowAssignment struct {
	Rows     map[string]int
	RowCount int
}

// Row returns the row index for a block ID, or 0 if unknown.
func (ra RowAssignment) Row(id string) int {
	return ra.Rows[id]
}

// PackRows assigns each block the smallest row index where it overlaps
// nothing already placed, scanning blocks in ascending start order
// (stable: ties keep snapshot order). The result is greedy and
// order-dependent rather than an optimal coloring; reproducing the
// exact assignment keeps the layout stable between renders.
//
// The overlap test compares stored Start/End directly, so a block that
// wraps midnight is placed by its raw fields. Callers must filter
// malformed blocks first.
func PackRows(blocks []block.Block) RowAssignment {
	ordered := make([]block.Block, len(blocks))
	copy(ordered, blocks)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Start < ordered[j].Start
	})

	rows := make(map[string]int, len(ordered))
	var byRow [][]block.Block
	for _, b := range ordered {
		r := 0
		for ; r < len(byRow); r++ {
			if !overlapsAny(b, byRow[r]) {
				break
			}
		}
		if r == len(byRow) {
			byRow = append(byRow, nil)
		}
		byRow[r] = append(byRow[r], b)
		rows[b.ID] = r
	}

	count := len(byRow)
	if count < MinRows {
		count = MinRows
	}
	return RowAssignment{Rows: rows, RowCount: count}
}

func overlapsAny(b block.Block, placed []block.Block) bool {
	for _, p := range placed {
		if b.Overlaps(p) {
			return true
		}
	}
	return false
}
