package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"daygrid/internal/block"
	"daygrid/internal/tui/commands"
)

// openLabelEdit opens the label editor for a block.
func (m Model) openLabelEdit(b block.Block) (tea.Model, tea.Cmd) {
	m.machine.End()
	cmds := m.drainCommits()
	m.mode = ModeLabelEdit
	m.modalBlock = b.ID
	m.labelInput.SetValue(b.Label)
	m.labelInput.CursorEnd()
	cmds = append(cmds, m.labelInput.Focus())
	return m, tea.Batch(cmds...)
}

// openTimeEditor opens the start/end time editor for a block.
func (m Model) openTimeEditor(b block.Block) (tea.Model, tea.Cmd) {
	m.machine.End()
	cmds := m.drainCommits()
	m.mode = ModeTimeEdit
	m.modalBlock = b.ID
	m.timeFocus = 0
	m.startInput.SetValue(block.FormatClock(b.Start))
	m.endInput.SetValue(block.FormatClock(b.End))
	m.startInput.CursorEnd()
	m.endInput.Blur()
	cmds = append(cmds, m.startInput.Focus())
	return m, tea.Batch(cmds...)
}

// openNewCalendar opens the new-calendar prompt.
func (m Model) openNewCalendar() (tea.Model, tea.Cmd) {
	m.mode = ModeNewCalendar
	m.nameInput.SetValue("")
	return m, m.nameInput.Focus()
}

func (m Model) handleLabelEditKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal
		m.labelInput.Blur()
		return m, nil
	case "enter":
		label := strings.TrimSpace(m.labelInput.Value())
		id := m.modalBlock
		m.mode = ModeNormal
		m.labelInput.Blur()
		cal, ok := m.activeCalendar()
		if !ok || label == "" {
			return m, nil
		}
		return m, commands.UpdateBlockLabel(m.repo, cal.ID, id, label)
	}
	var cmd tea.Cmd
	m.labelInput, cmd = m.labelInput.Update(msg)
	return m, cmd
}

func (m Model) handleTimeEditKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal
		m.startInput.Blur()
		m.endInput.Blur()
		m.err = nil
		return m, nil
	case "tab", "shift+tab", "up", "down":
		m.timeFocus = 1 - m.timeFocus
		if m.timeFocus == 0 {
			m.endInput.Blur()
			return m, m.startInput.Focus()
		}
		m.startInput.Blur()
		return m, m.endInput.Focus()
	case "enter":
		start, err := block.ParseClock(strings.TrimSpace(m.startInput.Value()))
		if err != nil {
			m.err = err
			return m, nil
		}
		end, err := block.ParseClock(strings.TrimSpace(m.endInput.Value()))
		if err != nil {
			m.err = err
			return m, nil
		}
		id := m.modalBlock
		m.mode = ModeNormal
		m.err = nil
		m.startInput.Blur()
		m.endInput.Blur()
		cal, ok := m.activeCalendar()
		if !ok {
			return m, nil
		}
		start, end = block.NormalizeRange(start, end)
		return m, commands.UpdateBlockTimes(m.repo, cal.ID, id, block.TimeUpdate{Start: start, End: end})
	}
	var cmd tea.Cmd
	if m.timeFocus == 0 {
		m.startInput, cmd = m.startInput.Update(msg)
	} else {
		m.endInput, cmd = m.endInput.Update(msg)
	}
	return m, cmd
}

func (m Model) handleConfirmDeleteKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		id := m.modalBlock
		m.mode = ModeNormal
		m.selected = ""
		cal, ok := m.activeCalendar()
		if !ok {
			return m, nil
		}
		return m, commands.DeleteBlock(m.repo, cal.ID, id)
	case "n", "esc":
		m.mode = ModeNormal
		return m, nil
	}
	return m, nil
}

func (m Model) handleNewCalendarKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal
		m.nameInput.Blur()
		return m, nil
	case "enter":
		name := strings.TrimSpace(m.nameInput.Value())
		m.mode = ModeNormal
		m.nameInput.Blur()
		if name == "" {
			return m, nil
		}
		return m, commands.CreateCalendar(m.repo, name, m.config.Timeline.DefaultBlockColor)
	}
	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}
