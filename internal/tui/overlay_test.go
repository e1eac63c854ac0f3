package tui

import (
	"strings"
	"testing"
)

func TestOverlayCenterSplicesModal(t *testing.T) {
	base := strings.TrimRight(strings.Repeat("aaaaaaa\n", 5), "\n")
	out := overlayCenter(base, "XXX", 7, 5)

	lines := strings.Split(out, "\n")
	if len(lines) != 5 {
		t.Fatalf("lines = %d, want 5", len(lines))
	}
	if lines[2] != "aaXXXaa" {
		t.Errorf("center line = %q, want %q", lines[2], "aaXXXaa")
	}
	for _, i := range []int{0, 1, 3, 4} {
		if lines[i] != "aaaaaaa" {
			t.Errorf("line %d = %q, want untouched base", i, lines[i])
		}
	}
}

func TestOverlayCenterEmptyModalIsNoop(t *testing.T) {
	base := "hello"
	if got := overlayCenter(base, "", 5, 1); got != base {
		t.Errorf("got %q, want base unchanged", got)
	}
}

func TestOverlayCenterPadsShortBase(t *testing.T) {
	out := overlayCenter("ab", "XX", 4, 3)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(lines))
	}
	if lines[0] != "ab  " {
		t.Errorf("base line not padded: %q", lines[0])
	}
	if !strings.Contains(lines[1], "XX") {
		t.Errorf("modal not placed on middle line: %q", lines[1])
	}
}

func TestNormalizeLinesClipsWideContent(t *testing.T) {
	lines := normalizeLines("abcdefgh", 4, 2)
	if lines[0] != "abcd" {
		t.Errorf("clip = %q, want abcd", lines[0])
	}
	if lines[1] != "    " {
		t.Errorf("pad line = %q, want four spaces", lines[1])
	}
}
