package timeline

import (
	"testing"
	"time"

	"daygrid/internal/block"
)

// recorder collects committed updates and gives tests full control of
// the committer's clock.
type recorder struct {
	ids  []string
	upds []block.TimeUpdate
	now  time.Time
}

func (r *recorder) sink(id string, upd block.TimeUpdate) {
	r.ids = append(r.ids, id)
	r.upds = append(r.upds, upd)
}

func (r *recorder) clock() time.Time { return r.now }

func (r *recorder) advance(d time.Duration) { r.now = r.now.Add(d) }

func (r *recorder) last(t *testing.T) block.TimeUpdate {
	t.Helper()
	if len(r.upds) == 0 {
		t.Fatal("no commits recorded")
	}
	return r.upds[len(r.upds)-1]
}

func newTestMachine() (*Machine, *recorder) {
	rec := &recorder{now: time.Unix(0, 0)}
	c := NewCommitter(rec.sink, WithNow(rec.clock))
	return NewMachine(c), rec
}

func TestMachineMoveProposal(t *testing.T) {
	vp := Viewport{Left: 0, Width: 1000}
	pxPerHour := 1000.0 / 24

	tests := []struct {
		name      string
		b         block.Block
		kind      DragKind
		dx        float64
		wantStart float64
		wantEnd   float64
	}{
		{
			name: "move one hour right",
			b:    block.Block{ID: "b", Start: 9, End: 17},
			kind: DragMove, dx: pxPerHour,
			wantStart: 10, wantEnd: 18,
		},
		{
			name: "move clamps at midnight",
			b:    block.Block{ID: "b", Start: 1, End: 3},
			kind: DragMove, dx: -5 * pxPerHour,
			wantStart: 0, wantEnd: 2,
		},
		{
			name: "move clamps at end of day",
			b:    block.Block{ID: "b", Start: 20, End: 22},
			kind: DragMove, dx: 10 * pxPerHour,
			wantStart: 22, wantEnd: 24,
		},
		{
			name: "resize start",
			b:    block.Block{ID: "b", Start: 9, End: 17},
			kind: DragResizeStart, dx: 2 * pxPerHour,
			wantStart: 11, wantEnd: 17,
		},
		{
			name: "resize start stops at minimum duration",
			b:    block.Block{ID: "b", Start: 9, End: 10},
			kind: DragResizeStart, dx: 6 * pxPerHour,
			wantStart: 9.75, wantEnd: 10,
		},
		{
			name: "resize end",
			b:    block.Block{ID: "b", Start: 9, End: 17},
			kind: DragResizeEnd, dx: -3 * pxPerHour,
			wantStart: 9, wantEnd: 14,
		},
		{
			name: "resize end stops at minimum duration",
			b:    block.Block{ID: "b", Start: 9, End: 10},
			kind: DragResizeEnd, dx: -6 * pxPerHour,
			wantStart: 9, wantEnd: 9.25,
		},
		{
			name: "resize end clamps at 24",
			b:    block.Block{ID: "b", Start: 20, End: 23},
			kind: DragResizeEnd, dx: 5 * pxPerHour,
			wantStart: 20, wantEnd: 24,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, rec := newTestMachine()
			m.Start(tt.kind, tt.b, 100)
			if !m.Move(100+tt.dx, vp) {
				t.Fatal("Move returned false while active")
			}
			m.End()
			got := rec.last(t)
			if got.Start != tt.wantStart || got.End != tt.wantEnd {
				t.Errorf("proposal = %v-%v, want %v-%v", got.Start, got.End, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestMachineEndToEndDrag(t *testing.T) {
	// A 9-17 block dragged by ~1 hour on a 1000px viewport: pointer
	// from x=100 to x=141.7 shifts time by just over an hour, which
	// quantizes back to exactly one hour.
	m, rec := newTestMachine()
	vp := Viewport{Left: 0, Width: 1000}

	m.Start(DragMove, block.Block{ID: "b", Start: 9, End: 17}, 100)
	m.Move(141.7, vp)
	m.End()

	got := rec.last(t)
	if got.Start != 10 || got.End != 18 {
		t.Errorf("final times = %v-%v, want 10-18", got.Start, got.End)
	}
	if m.Active() {
		t.Error("machine still active after End")
	}
}

func TestMachineThrottledGestureFlushesLastProposal(t *testing.T) {
	// Three rapid moves inside one throttle window then release must
	// produce exactly one commit reflecting the last move.
	m, rec := newTestMachine()
	vp := Viewport{Left: 0, Width: 960}
	pxPerHour := 40.0

	m.Start(DragMove, block.Block{ID: "b", Start: 9, End: 11}, 0)
	m.Move(1*pxPerHour, vp)
	m.Move(2*pxPerHour, vp)
	m.Move(3*pxPerHour, vp)
	m.End()

	if len(rec.upds) != 1 {
		t.Fatalf("got %d commits after release, want 1", len(rec.upds))
	}
	got := rec.upds[0]
	if got.Start != 12 || got.End != 14 {
		t.Errorf("flushed proposal = %v-%v, want 12-14 (the last move)", got.Start, got.End)
	}
}

func TestMachineMoveWhileIdle(t *testing.T) {
	m, rec := newTestMachine()
	if m.Move(50, Viewport{Width: 100}) {
		t.Error("Move returned true while idle")
	}
	if len(rec.upds) != 0 {
		t.Errorf("idle Move committed %d updates", len(rec.upds))
	}
}

func TestMachineSyncAbortsVanishedTarget(t *testing.T) {
	m, rec := newTestMachine()
	vp := Viewport{Left: 0, Width: 960}

	m.Start(DragMove, block.Block{ID: "gone", Start: 9, End: 11}, 0)
	m.Move(40, vp)
	m.Move(80, vp) // still pending, nothing has flushed yet

	// Snapshot no longer contains the target: abort, do not flush.
	m.Sync([]block.Block{{ID: "other", Start: 1, End: 2}})

	if m.Active() {
		t.Error("machine still active after target vanished")
	}
	if len(rec.upds) != 0 {
		t.Errorf("abort delivered %d pending commits, want 0", len(rec.upds))
	}
	// A later End must not resurrect the cancelled mutation either.
	m.End()
	if len(rec.upds) != 0 {
		t.Errorf("End after abort delivered %d commits, want 0", len(rec.upds))
	}
}

func TestMachineSyncKeepsLiveTarget(t *testing.T) {
	m, _ := newTestMachine()
	m.Start(DragMove, block.Block{ID: "b", Start: 9, End: 11}, 0)
	m.Sync([]block.Block{{ID: "b", Start: 9, End: 11}})
	if !m.Active() {
		t.Error("Sync aborted a gesture whose target is still present")
	}
}

func TestMachineMoveWrappingBlock(t *testing.T) {
	// A wrapping block has negative raw duration; moving it keeps that
	// stored shape, clamped with the same arithmetic.
	m, rec := newTestMachine()
	vp := Viewport{Left: 0, Width: 960}
	pxPerHour := 40.0

	m.Start(DragMove, block.Block{ID: "b", Start: 23, End: 1}, 0)
	m.Move(-1*pxPerHour, vp)
	m.End()

	got := rec.last(t)
	if got.Start != 22 || got.End != 0 {
		t.Errorf("proposal = %v-%v, want 22-0", got.Start, got.End)
	}
}

func TestMachineRestartReplacesGesture(t *testing.T) {
	m, rec := newTestMachine()
	vp := Viewport{Left: 0, Width: 960}

	m.Start(DragMove, block.Block{ID: "first", Start: 9, End: 10}, 0)
	m.Move(40, vp)
	m.Start(DragMove, block.Block{ID: "second", Start: 12, End: 13}, 0)

	id, ok := m.Target()
	if !ok || id != "second" {
		t.Errorf("Target = %q, want \"second\"", id)
	}
	if len(rec.upds) == 0 {
		t.Error("first gesture's proposal was lost instead of flushed")
	}
}
