package tui

import (
	"math"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"daygrid/internal/block"
	"daygrid/internal/config"
	"daygrid/internal/timeline"
	"daygrid/internal/tui/commands"
)

// Zone ID prefixes for mouse hit testing. Handles are checked before
// bodies so the one-cell grips on a block's edges win ties.
const (
	zoneHandleStart = "hstart:"
	zoneHandleEnd   = "hend:"
	zoneBlockBody   = "block:"
	zoneBlockTail   = "tail:"
)

// handleMouse routes mouse events to the gesture machine.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	LogMouse(msg)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		return m.handlePress(msg)

	case tea.MouseActionMotion:
		if !m.machine.Active() {
			return m, nil
		}
		if m.machine.Move(float64(msg.X), m.viewport()) {
			cmds := m.drainCommits()
			if !m.tickArmed {
				m.tickArmed = true
				cmds = append(cmds, commitTick())
			}
			return m, tea.Batch(cmds...)
		}
		return m, nil

	case tea.MouseActionRelease:
		if msg.Button != tea.MouseButtonLeft || !m.machine.Active() {
			return m, nil
		}
		m.machine.End()
		return m, tea.Batch(m.drainCommits()...)
	}

	return m, nil
}

// handlePress resolves what sits under the pointer and starts the
// matching gesture, opens the time editor, or creates a new block.
func (m Model) handlePress(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	for _, b := range m.blocks {
		if zone.Get(zoneHandleStart + b.ID).InBounds(msg) {
			m.selected = b.ID
			m.machine.Start(timeline.DragResizeStart, b, float64(msg.X))
			LogGesture("start", timeline.DragResizeStart.String(), b.ID)
			return m, nil
		}
		if zone.Get(zoneHandleEnd + b.ID).InBounds(msg) {
			m.selected = b.ID
			m.machine.Start(timeline.DragResizeEnd, b, float64(msg.X))
			LogGesture("start", timeline.DragResizeEnd.String(), b.ID)
			return m, nil
		}
	}

	for _, b := range m.blocks {
		if zone.Get(zoneBlockBody+b.ID).InBounds(msg) || zone.Get(zoneBlockTail+b.ID).InBounds(msg) {
			m.selected = b.ID
			if msg.Ctrl || msg.Alt {
				return m.openTimeEditor(b)
			}
			m.machine.Start(timeline.DragMove, b, float64(msg.X))
			LogGesture("start", timeline.DragMove.String(), b.ID)
			return m, nil
		}
	}

	// Empty strip area: a click plants a fresh block there.
	vm := timeline.Build(m.blocks)
	if m.rowAt(msg.Y, vm.RowCount()) < 0 {
		return m, nil
	}
	vp := m.viewport()
	if float64(msg.X) < vp.Left || float64(msg.X) >= vp.Left+vp.Width {
		return m, nil
	}
	return m.createBlockAt(vp.TimeAt(float64(msg.X)))
}

// createBlockAt persists a new block starting at the given hour.
func (m Model) createBlockAt(start float64) (tea.Model, tea.Cmd) {
	cal, ok := m.activeCalendar()
	if !ok {
		return m, nil
	}
	b, err := newBlockAt(cal, m.config, start)
	if err != nil {
		m.err = err
		return m, nil
	}
	m.selected = b.ID
	return m, commands.CreateBlock(m.repo, b)
}

// newBlockAt builds a block at start with the configured default
// duration and color.
func newBlockAt(cal block.Calendar, cfg *config.Config, start float64) (block.Block, error) {
	b, err := block.New(cal.ID, "New block", cfg.Timeline.DefaultBlockColor, start)
	if err != nil {
		return block.Block{}, err
	}
	b.End = math.Mod(b.Start+cfg.DefaultDurationHours(), block.HoursPerDay)
	return b, nil
}
