package timeline

import "daygrid/internal/block"

// DragKind distinguishes what part of a block a gesture grabbed.
type DragKind int

const (
	DragMove DragKind = iota
	DragResizeStart
	DragResizeEnd
)

// String returns the gesture kind name for logs.
func (k DragKind) String() string {
	switch k {
	case DragMove:
		return "move"
	case DragResizeStart:
		return "resize-start"
	case DragResizeEnd:
		return "resize-end"
	default:
		return "unknown"
	}
}

// drag captures the origin of one in-progress pointer gesture: the
// grab kind, the target block, the pointer X at press time, and the
// target's times at press time. A nil drag means no gesture, so idle
// can never be confused with a gesture whose fields were not set.
type drag struct {
	kind        DragKind
	blockID     string
	originX     float64
	originStart float64
	originEnd   float64
}

// Machine owns the lifecycle of one pointer gesture. Pointer-down
// enters the active state, each pointer-move derives a proposed
// mutation and hands it to the committer, pointer-up flushes and
// returns to idle. Only one gesture exists at a time.
type Machine struct {
	committer *Committer
	active    *drag
}

// NewMachine creates a gesture machine emitting through the committer.
func NewMachine(c *Committer) *Machine {
	return &Machine{committer: c}
}

// Active reports whether a gesture is in progress.
func (m *Machine) Active() bool {
	return m.active != nil
}

// Target returns the block the current gesture manipulates.
func (m *Machine) Target() (string, bool) {
	if m.active == nil {
		return "", false
	}
	return m.active.blockID, true
}

// Kind returns the kind of the current gesture.
func (m *Machine) Kind() (DragKind, bool) {
	if m.active == nil {
		return 0, false
	}
	return m.active.kind, true
}

// Start begins a gesture on a block. A gesture already in progress is
// flushed and replaced; terminals can drop release events.
func (m *Machine) Start(kind DragKind, b block.Block, pointerX float64) {
	if m.active != nil {
		m.End()
	}
	m.active = &drag{
		kind:        kind,
		blockID:     b.ID,
		originX:     pointerX,
		originStart: b.Start,
		originEnd:   b.End,
	}
}

// Move derives the proposed mutation for the current pointer position
// and passes it to the committer. It reports whether a proposal was
// made; while idle it does nothing.
func (m *Machine) Move(pointerX float64, vp Viewport) bool {
	d := m.active
	if d == nil {
		return false
	}

	shift := vp.TimeShift(pointerX - d.originX)
	var upd block.TimeUpdate
	switch d.kind {
	case DragMove:
		// Raw (non-wrap) duration, matching the stored representation.
		dur := d.originEnd - d.originStart
		start := block.Quantize(clamp(d.originStart+shift, 0, block.HoursPerDay-dur))
		upd = block.TimeUpdate{Start: start, End: start + dur}
	case DragResizeStart:
		start := block.Quantize(clamp(d.originStart+shift, 0, d.originEnd-block.MinDuration))
		upd = block.TimeUpdate{Start: start, End: d.originEnd}
	case DragResizeEnd:
		end := block.Quantize(clamp(d.originEnd+shift, d.originStart+block.MinDuration, block.HoursPerDay))
		upd = block.TimeUpdate{Start: d.originStart, End: end}
	default:
		return false
	}

	m.committer.Propose(d.blockID, upd)
	return true
}

// End completes the gesture: any throttled mutation still pending for
// the target is flushed synchronously, then the machine returns to
// idle.
func (m *Machine) End() {
	if m.active == nil {
		return
	}
	m.committer.Flush(m.active.blockID)
	m.active = nil
}

// Sync reconciles the machine with the latest snapshot. If the target
// block has disappeared (deleted mid-gesture) the gesture aborts:
// pending mutations are cancelled, not flushed, and the machine
// returns to idle. This is a defined transition, not an error.
func (m *Machine) Sync(blocks []block.Block) {
	if m.active == nil {
		return
	}
	for _, b := range blocks {
		if b.ID == m.active.blockID {
			return
		}
	}
	m.committer.Cancel(m.active.blockID)
	m.active = nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
