package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"daygrid/internal/block"
)

// newTestRepo creates a repository backed by a temp-file database.
func newTestRepo(t *testing.T) *SQLite {
	t.Helper()
	repo, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("creating test repository: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func newTestCalendar(t *testing.T, repo *SQLite, name string) block.Calendar {
	t.Helper()
	c, err := block.NewCalendar(name, "#89b4fa")
	if err != nil {
		t.Fatalf("creating calendar: %v", err)
	}
	if err := repo.CreateCalendar(context.Background(), c); err != nil {
		t.Fatalf("inserting calendar: %v", err)
	}
	return c
}

func TestCreateAndGetBlock(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	cal := newTestCalendar(t, repo, "Work")

	b, err := block.New(cal.ID, "deep work", "#a6e3a1", 9)
	if err != nil {
		t.Fatalf("block.New: %v", err)
	}
	if err := repo.CreateBlock(ctx, b); err != nil {
		t.Fatalf("CreateBlock: %v", err)
	}

	got, err := repo.GetBlock(ctx, b.ID)
	if err != nil {
		t.Fatalf("GetBlock: %v", err)
	}
	if got != b {
		t.Errorf("GetBlock = %+v, want %+v", got, b)
	}
}

func TestGetBlockNotFound(t *testing.T) {
	repo := newTestRepo(t)
	_, err := repo.GetBlock(context.Background(), "no-such-id")
	if !errors.Is(err, block.ErrBlockNotFound) {
		t.Errorf("GetBlock = %v, want ErrBlockNotFound", err)
	}
}

func TestListBlocksOrderedAndScoped(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	work := newTestCalendar(t, repo, "Work")
	home := newTestCalendar(t, repo, "Home")

	for _, seed := range []struct {
		cal   block.Calendar
		start float64
		label string
	}{
		{work, 14, "late"},
		{work, 9, "early"},
		{home, 10, "other calendar"},
	} {
		b, err := block.New(seed.cal.ID, seed.label, "", seed.start)
		if err != nil {
			t.Fatal(err)
		}
		if err := repo.CreateBlock(ctx, b); err != nil {
			t.Fatal(err)
		}
	}

	blocks, err := repo.ListBlocks(ctx, work.ID)
	if err != nil {
		t.Fatalf("ListBlocks: %v", err)
	}
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}
	if blocks[0].Label != "early" || blocks[1].Label != "late" {
		t.Errorf("blocks not ordered by start: %q, %q", blocks[0].Label, blocks[1].Label)
	}
}

func TestUpdateBlockTimes(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	cal := newTestCalendar(t, repo, "Work")

	b, _ := block.New(cal.ID, "", "", 9)
	if err := repo.CreateBlock(ctx, b); err != nil {
		t.Fatal(err)
	}

	if err := repo.UpdateBlockTimes(ctx, b.ID, block.TimeUpdate{Start: 10, End: 18}); err != nil {
		t.Fatalf("UpdateBlockTimes: %v", err)
	}

	got, err := repo.GetBlock(ctx, b.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Start != 10 || got.End != 18 {
		t.Errorf("times = %v-%v, want 10-18", got.Start, got.End)
	}

	err = repo.UpdateBlockTimes(ctx, "missing", block.TimeUpdate{Start: 1, End: 2})
	if !errors.Is(err, block.ErrBlockNotFound) {
		t.Errorf("update on missing block = %v, want ErrBlockNotFound", err)
	}
}

func TestUpdateBlockTimesStoresWrap(t *testing.T) {
	// A wrapping range (end <= start) is stored verbatim; the wrap is
	// purely a property of the values.
	repo := newTestRepo(t)
	ctx := context.Background()
	cal := newTestCalendar(t, repo, "Work")

	b, _ := block.New(cal.ID, "night shift", "", 9)
	if err := repo.CreateBlock(ctx, b); err != nil {
		t.Fatal(err)
	}
	if err := repo.UpdateBlockTimes(ctx, b.ID, block.TimeUpdate{Start: 23, End: 7}); err != nil {
		t.Fatal(err)
	}

	got, _ := repo.GetBlock(ctx, b.ID)
	if !got.WrapsMidnight() || got.Duration() != 8 {
		t.Errorf("stored block = %v-%v (dur %v), want wrapping 23-7", got.Start, got.End, got.Duration())
	}
}

func TestUpdateBlockLabel(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	cal := newTestCalendar(t, repo, "Work")

	b, _ := block.New(cal.ID, "old", "", 9)
	if err := repo.CreateBlock(ctx, b); err != nil {
		t.Fatal(err)
	}
	if err := repo.UpdateBlockLabel(ctx, b.ID, "new"); err != nil {
		t.Fatalf("UpdateBlockLabel: %v", err)
	}
	got, _ := repo.GetBlock(ctx, b.ID)
	if got.Label != "new" {
		t.Errorf("label = %q, want \"new\"", got.Label)
	}
}

func TestDeleteBlock(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	cal := newTestCalendar(t, repo, "Work")

	b, _ := block.New(cal.ID, "", "", 9)
	if err := repo.CreateBlock(ctx, b); err != nil {
		t.Fatal(err)
	}
	if err := repo.DeleteBlock(ctx, b.ID); err != nil {
		t.Fatalf("DeleteBlock: %v", err)
	}
	if _, err := repo.GetBlock(ctx, b.ID); !errors.Is(err, block.ErrBlockNotFound) {
		t.Errorf("GetBlock after delete = %v, want ErrBlockNotFound", err)
	}
	if err := repo.DeleteBlock(ctx, b.ID); !errors.Is(err, block.ErrBlockNotFound) {
		t.Errorf("double delete = %v, want ErrBlockNotFound", err)
	}
}

func TestCalendarLifecycle(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	work := newTestCalendar(t, repo, "Work")
	newTestCalendar(t, repo, "Home")

	calendars, err := repo.ListCalendars(ctx)
	if err != nil {
		t.Fatalf("ListCalendars: %v", err)
	}
	if len(calendars) != 2 {
		t.Fatalf("got %d calendars, want 2", len(calendars))
	}
	// Ordered by name.
	if calendars[0].Name != "Home" || calendars[1].Name != "Work" {
		t.Errorf("order = %q, %q, want Home, Work", calendars[0].Name, calendars[1].Name)
	}

	if err := repo.RenameCalendar(ctx, work.ID, "Office"); err != nil {
		t.Fatalf("RenameCalendar: %v", err)
	}
	if err := repo.RenameCalendar(ctx, work.ID, ""); !errors.Is(err, block.ErrEmptyCalendarName) {
		t.Errorf("rename to empty = %v, want ErrEmptyCalendarName", err)
	}
	if err := repo.RenameCalendar(ctx, "missing", "X"); !errors.Is(err, block.ErrCalendarNotFound) {
		t.Errorf("rename missing = %v, want ErrCalendarNotFound", err)
	}
}

func TestDeleteCalendarCascades(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	cal := newTestCalendar(t, repo, "Work")

	b, _ := block.New(cal.ID, "", "", 9)
	if err := repo.CreateBlock(ctx, b); err != nil {
		t.Fatal(err)
	}

	if err := repo.DeleteCalendar(ctx, cal.ID); err != nil {
		t.Fatalf("DeleteCalendar: %v", err)
	}
	if _, err := repo.GetBlock(ctx, b.ID); !errors.Is(err, block.ErrBlockNotFound) {
		t.Errorf("block survived calendar delete: %v", err)
	}
	if err := repo.DeleteCalendar(ctx, cal.ID); !errors.Is(err, block.ErrCalendarNotFound) {
		t.Errorf("double delete = %v, want ErrCalendarNotFound", err)
	}
}
