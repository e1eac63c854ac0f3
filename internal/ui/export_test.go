package ui

import (
	"context"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"daygrid/internal/block"
	"daygrid/internal/db"
)

func newTestRepo(t *testing.T) *db.SQLite {
	t.Helper()
	repo, err := db.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := newTestRepo(t)

	cal, err := block.NewCalendar("Work", "#89b4fa")
	if err != nil {
		t.Fatal(err)
	}
	if err := src.CreateCalendar(ctx, cal); err != nil {
		t.Fatal(err)
	}
	b1, _ := block.New(cal.ID, "Standup", "#f38ba8", 9)
	b1.End = 9.25
	b2, _ := block.New(cal.ID, "Night shift", "#a6e3a1", 23)
	b2.End = 7
	for _, b := range []block.Block{b1, b2} {
		if err := src.CreateBlock(ctx, b); err != nil {
			t.Fatal(err)
		}
	}

	doc, err := buildExport(ctx, src)
	if err != nil {
		t.Fatal(err)
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}

	var parsed exportDoc
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		t.Fatal(err)
	}

	dst := newTestRepo(t)
	created, err := applyImport(ctx, dst, "#89b4fa", parsed)
	if err != nil {
		t.Fatal(err)
	}
	if created != 2 {
		t.Fatalf("created = %d, want 2", created)
	}

	calendars, err := dst.ListCalendars(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(calendars) != 1 || calendars[0].Name != "Work" {
		t.Fatalf("calendars = %+v", calendars)
	}
	blocks, err := dst.ListBlocks(ctx, calendars[0].ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(blocks) != 2 {
		t.Fatalf("blocks = %d, want 2", len(blocks))
	}
	// ListBlocks orders by start, so the wrapping block comes last.
	if blocks[0].Start != 9 || blocks[0].End != 9.25 {
		t.Errorf("first block = %v-%v, want 9-9.25", blocks[0].Start, blocks[0].End)
	}
	if blocks[1].Start != 23 || blocks[1].End != 7 {
		t.Errorf("wrapped block = %v-%v, want 23-7", blocks[1].Start, blocks[1].End)
	}
}

func TestApplyImportReusesCalendarByName(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	cal, _ := block.NewCalendar("Work", "#89b4fa")
	if err := repo.CreateCalendar(ctx, cal); err != nil {
		t.Fatal(err)
	}

	doc := exportDoc{Calendars: []exportCalendar{{
		Name:   "Work",
		Blocks: []exportBlock{{Label: "Review", Start: "14:00", End: "15:00"}},
	}}}
	if _, err := applyImport(ctx, repo, "#89b4fa", doc); err != nil {
		t.Fatal(err)
	}

	calendars, err := repo.ListCalendars(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(calendars) != 1 {
		t.Fatalf("calendars = %d, want the existing one reused", len(calendars))
	}
	blocks, err := repo.ListBlocks(ctx, cal.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(blocks) != 1 || blocks[0].Label != "Review" {
		t.Fatalf("blocks = %+v", blocks)
	}
}

func TestApplyImportSnapsOffGridTimes(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	doc := exportDoc{Calendars: []exportCalendar{{
		Name:   "Work",
		Blocks: []exportBlock{{Label: "Odd", Start: "09:10", End: "10:20"}},
	}}}
	if _, err := applyImport(ctx, repo, "#89b4fa", doc); err != nil {
		t.Fatal(err)
	}

	calendars, _ := repo.ListCalendars(ctx)
	blocks, err := repo.ListBlocks(ctx, calendars[0].ID)
	if err != nil {
		t.Fatal(err)
	}
	if blocks[0].Start != 9.25 || blocks[0].End != 10.25 {
		t.Errorf("times = %v-%v, want snapped 9.25-10.25", blocks[0].Start, blocks[0].End)
	}
}

func TestApplyImportRejectsBadClock(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	doc := exportDoc{Calendars: []exportCalendar{{
		Name:   "Work",
		Blocks: []exportBlock{{Label: "Bad", Start: "25:99", End: "26:00"}},
	}}}
	if _, err := applyImport(ctx, repo, "#89b4fa", doc); err == nil {
		t.Fatal("expected error for out-of-range clock")
	}
}
