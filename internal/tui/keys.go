package tui

import (
	"fmt"
	"sort"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"daygrid/internal/block"
	"daygrid/internal/tui/commands"
)

// handleNormalKeys handles key presses outside any modal.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	LogKeyPress(msg.String(), modeString(m.mode))

	switch msg.String() {
	case "q", "ctrl+c":
		m.machine.End()
		cmds := m.drainCommits()
		cmds = append(cmds, tea.Quit)
		return m, tea.Sequence(cmds...)

	case "tab", "]":
		return m.switchCalendar(1)

	case "shift+tab", "[":
		return m.switchCalendar(-1)

	case "left", "h":
		m.selected = m.neighborBlock(-1)
		return m, nil

	case "right", "l":
		m.selected = m.neighborBlock(1)
		return m, nil

	case "esc":
		m.selected = ""
		m.err = nil
		return m, nil

	case "e":
		if b, ok := m.blockByID(m.selected); ok {
			return m.openLabelEdit(b)
		}
		return m, nil

	case "t":
		if b, ok := m.blockByID(m.selected); ok {
			return m.openTimeEditor(b)
		}
		return m, nil

	case "x", "delete":
		if _, ok := m.blockByID(m.selected); ok {
			m.mode = ModeConfirmDelete
			m.modalBlock = m.selected
		}
		return m, nil

	case "y":
		if b, ok := m.blockByID(m.selected); ok {
			text := fmt.Sprintf("%s %s", b.TimeRange(), b.Label)
			if err := clipboard.WriteAll(text); err != nil {
				return m, statusCmd("clipboard unavailable")
			}
			return m, statusCmd("yanked " + b.TimeRange())
		}
		return m, nil

	case "n":
		return m.createBlockAt(m.firstFreeStart())

	case "c":
		return m.openNewCalendar()

	case "r":
		if cal, ok := m.activeCalendar(); ok {
			m.loading = true
			return m, commands.LoadBlocks(m.repo, cal.ID)
		}
		return m, commands.LoadCalendars(m.repo)
	}

	return m, nil
}

// neighborBlock returns the ID of the block delta positions away from
// the current selection in start order, or the first block when
// nothing is selected.
func (m Model) neighborBlock(delta int) string {
	if len(m.blocks) == 0 {
		return ""
	}
	ordered := make([]block.Block, len(m.blocks))
	copy(ordered, m.blocks)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Start < ordered[j].Start
	})
	cur := -1
	for i, b := range ordered {
		if b.ID == m.selected {
			cur = i
			break
		}
	}
	if cur < 0 {
		return ordered[0].ID
	}
	next := (cur + delta + len(ordered)) % len(ordered)
	return ordered[next].ID
}

// firstFreeStart scans the quarter-hour grid from 08:00 for a start
// whose default-length interval touches no existing block.
func (m Model) firstFreeStart() float64 {
	dur := m.config.DefaultDurationHours()
	for t := 8.0; t+dur <= block.HoursPerDay; t += block.Snap {
		candidate := block.Block{Start: t, End: t + dur}
		free := true
		for _, b := range m.blocks {
			if candidate.Overlaps(b) {
				free = false
				break
			}
		}
		if free {
			return t
		}
	}
	return 0
}
