package integration

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"daygrid/internal/block"
	"daygrid/internal/db"
	"daygrid/internal/timeline"
)

// openRepo creates a fresh repository for each test with automatic cleanup.
func openRepo(t *testing.T) *db.SQLite {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	repo, err := db.New(dbPath)
	if err != nil {
		t.Fatalf("failed to open repo: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

// createCalendar is a helper to create and insert a calendar.
func createCalendar(t *testing.T, repo *db.SQLite, name string) block.Calendar {
	t.Helper()
	c, err := block.NewCalendar(name, "#89b4fa")
	if err != nil {
		t.Fatalf("failed to create calendar: %v", err)
	}
	if err := repo.CreateCalendar(context.Background(), c); err != nil {
		t.Fatalf("failed to insert calendar: %v", err)
	}
	return c
}

// createBlock is a helper to create and insert a block.
func createBlock(t *testing.T, repo *db.SQLite, cal block.Calendar, label string, start, end float64) block.Block {
	t.Helper()
	b, err := block.New(cal.ID, label, "#f38ba8", start)
	if err != nil {
		t.Fatalf("failed to create block: %v", err)
	}
	b.End = end
	if err := repo.CreateBlock(context.Background(), b); err != nil {
		t.Fatalf("failed to insert block: %v", err)
	}
	return b
}

func TestCreateAndReloadBlock(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()

	cal := createCalendar(t, repo, "Work")
	b := createBlock(t, repo, cal, "Deep work", 9, 11)

	got, err := repo.GetBlock(ctx, b.ID)
	if err != nil {
		t.Fatalf("failed to get block: %v", err)
	}
	if got.Label != "Deep work" || got.Start != 9 || got.End != 11 {
		t.Errorf("round trip lost data: %+v", got)
	}
}

// TestDragMoveEndToEnd drives a full drag through the gesture machine
// with the committer writing straight into the store, then verifies
// both the persisted times and the resulting row layout.
func TestDragMoveEndToEnd(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()

	cal := createCalendar(t, repo, "Work")
	b := createBlock(t, repo, cal, "Deep work", 10, 12)

	now := time.Unix(0, 0)
	committer := timeline.NewCommitter(func(id string, upd block.TimeUpdate) {
		if err := repo.UpdateBlockTimes(ctx, id, upd); err != nil {
			t.Errorf("commit failed: %v", err)
		}
	}, timeline.WithNow(func() time.Time { return now }))
	machine := timeline.NewMachine(committer)

	// 1000px strip showing the full day: one hour is ~41.7px.
	vp := timeline.Viewport{Left: 0, Width: 1000}
	machine.Start(timeline.DragMove, b, 420)
	for _, x := range []float64{450, 500, 561.7} {
		now = now.Add(timeline.DefaultCommitInterval)
		machine.Move(x, vp)
	}
	machine.End()

	got, err := repo.GetBlock(ctx, b.ID)
	if err != nil {
		t.Fatalf("failed to get block: %v", err)
	}
	if got.Start != 13.5 || got.End != 15.5 {
		t.Errorf("dragged block = %v-%v, want 13.5-15.5", got.Start, got.End)
	}

	blocks, err := repo.ListBlocks(ctx, cal.ID)
	if err != nil {
		t.Fatalf("failed to list blocks: %v", err)
	}
	vm := timeline.Build(blocks)
	if vm.RowCount() != 3 {
		t.Errorf("row count = %d, want floor of 3", vm.RowCount())
	}
	if row := vm.Assign.Row(b.ID); row != 0 {
		t.Errorf("single block row = %d, want 0", row)
	}
}

func TestResizeClampPersists(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()

	cal := createCalendar(t, repo, "Work")
	b := createBlock(t, repo, cal, "Standup", 9, 9.5)

	committer := timeline.NewCommitter(func(id string, upd block.TimeUpdate) {
		if err := repo.UpdateBlockTimes(ctx, id, upd); err != nil {
			t.Errorf("commit failed: %v", err)
		}
	})
	machine := timeline.NewMachine(committer)

	// Drag the end handle far left; the end clamps one snap above
	// the start instead of crossing it.
	vp := timeline.Viewport{Left: 0, Width: 960}
	machine.Start(timeline.DragResizeEnd, b, 380)
	machine.Move(0, vp)
	machine.End()

	got, err := repo.GetBlock(ctx, b.ID)
	if err != nil {
		t.Fatalf("failed to get block: %v", err)
	}
	if got.Start != 9 || got.End != 9.25 {
		t.Errorf("resized block = %v-%v, want 9-9.25", got.Start, got.End)
	}
}

func TestWrappingBlockSurvivesStoreAndLayout(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()

	cal := createCalendar(t, repo, "Work")
	createBlock(t, repo, cal, "Night shift", 23, 7)
	createBlock(t, repo, cal, "Morning", 8, 9)

	blocks, err := repo.ListBlocks(ctx, cal.ID)
	if err != nil {
		t.Fatalf("failed to list blocks: %v", err)
	}
	if len(blocks) != 2 {
		t.Fatalf("blocks = %d, want 2", len(blocks))
	}

	vm := timeline.Build(blocks)
	segs := 0
	for _, s := range vm.Segments {
		if s.Block.Label == "Night shift" {
			segs++
		}
	}
	if segs != 2 {
		t.Errorf("wrapping block renders as %d segments, want 2", segs)
	}
}

func TestDeleteCalendarCascades(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()

	cal := createCalendar(t, repo, "Work")
	b := createBlock(t, repo, cal, "Standup", 9, 10)

	if err := repo.DeleteCalendar(ctx, cal.ID); err != nil {
		t.Fatalf("failed to delete calendar: %v", err)
	}
	if _, err := repo.GetBlock(ctx, b.ID); !errors.Is(err, block.ErrBlockNotFound) {
		t.Errorf("block survived calendar delete: err = %v", err)
	}
}

func TestStaleCommitAfterDeleteIsHarmless(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()

	cal := createCalendar(t, repo, "Work")
	b := createBlock(t, repo, cal, "Standup", 9, 10)

	if err := repo.DeleteBlock(ctx, b.ID); err != nil {
		t.Fatalf("failed to delete block: %v", err)
	}
	err := repo.UpdateBlockTimes(ctx, b.ID, block.TimeUpdate{Start: 10, End: 11})
	if !errors.Is(err, block.ErrBlockNotFound) {
		t.Errorf("stale update: err = %v, want ErrBlockNotFound", err)
	}
}
