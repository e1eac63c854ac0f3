package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// overlayCenter splices a modal box over the center of base. Base is
// normalized to the full terminal size first so the splice math works
// on uniform lines.
func overlayCenter(base, modal string, width, height int) string {
	if width <= 0 || height <= 0 || modal == "" {
		return base
	}

	modalLines := strings.Split(modal, "\n")
	modalW := 0
	for _, line := range modalLines {
		if w := lipgloss.Width(line); w > modalW {
			modalW = w
		}
	}
	modalH := len(modalLines)
	if modalW > width {
		modalW = width
	}
	if modalH > height {
		modalH = height
	}

	top := (height - modalH) / 2
	left := (width - modalW) / 2

	baseLines := normalizeLines(base, width, height)
	for i := 0; i < modalH; i++ {
		row := top + i
		line := modalLines[i]
		lw := lipgloss.Width(line)
		if lw > modalW {
			line = ansi.Cut(line, 0, modalW)
			lw = modalW
		}
		if lw < modalW {
			line += strings.Repeat(" ", modalW-lw)
		}
		leftSlice := ansi.Cut(baseLines[row], 0, left)
		rightSlice := ansi.Cut(baseLines[row], left+modalW, width)
		baseLines[row] = leftSlice + line + rightSlice
	}

	return strings.Join(baseLines, "\n")
}

// normalizeLines pads or trims base to exactly width x height cells.
func normalizeLines(base string, width, height int) []string {
	lines := strings.Split(base, "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for i, line := range lines {
		lw := lipgloss.Width(line)
		if lw > width {
			lines[i] = ansi.Cut(line, 0, width)
		} else if lw < width {
			lines[i] = line + strings.Repeat(" ", width-lw)
		}
	}
	return lines
}
