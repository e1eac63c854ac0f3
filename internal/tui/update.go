package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"daygrid/internal/block"
	"daygrid/internal/timeline"
	"daygrid/internal/tui/commands"
)

// commitTickMsg drives the trailing-edge flush of the committer while
// a gesture is active.
type commitTickMsg struct{}

func commitTick() tea.Cmd {
	return tea.Tick(timeline.DefaultCommitInterval, func(time.Time) tea.Msg {
		return commitTickMsg{}
	})
}

// statusCmd shows a transient status line message.
func statusCmd(msg string) tea.Cmd {
	return func() tea.Msg {
		return commands.StatusMsgCmd{Msg: msg}
	}
}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return commands.ClearStatusMsg{}
	})
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.MouseMsg:
		if m.mode != ModeNormal {
			return m, nil
		}
		return m.handleMouse(msg)

	case tea.KeyMsg:
		switch m.mode {
		case ModeLabelEdit:
			return m.handleLabelEditKeys(msg)
		case ModeTimeEdit:
			return m.handleTimeEditKeys(msg)
		case ModeConfirmDelete:
			return m.handleConfirmDeleteKeys(msg)
		case ModeNewCalendar:
			return m.handleNewCalendarKeys(msg)
		default:
			return m.handleNormalKeys(msg)
		}

	case commitTickMsg:
		m.committer.FlushDue()
		cmds := m.drainCommits()
		if m.machine.Active() {
			cmds = append(cmds, commitTick())
		} else {
			// Release flushes synchronously, so nothing is pending
			// once the gesture ends.
			m.tickArmed = false
		}
		return m, tea.Batch(cmds...)

	case commands.CalendarsLoadedMsg:
		m.calendars = msg.Calendars
		if m.calendar >= len(m.calendars) {
			m.calendar = 0
		}
		if cal, ok := m.activeCalendar(); ok {
			return m, commands.LoadBlocks(m.repo, cal.ID)
		}
		m.loading = false
		return m, nil

	case commands.BlocksLoadedMsg:
		cal, ok := m.activeCalendar()
		if !ok || msg.CalendarID != cal.ID {
			// Stale load from a calendar we already switched away from.
			return m, nil
		}
		m.blocks = msg.Blocks
		m.loading = false
		m.machine.Sync(m.blocks)
		if _, found := m.blockByID(m.selected); !found {
			m.selected = ""
		}
		return m, tea.Batch(m.drainCommits()...)

	case commands.BlockMutatedMsg:
		if cal, ok := m.activeCalendar(); ok && msg.CalendarID == cal.ID {
			return m, commands.LoadBlocks(m.repo, cal.ID)
		}
		return m, nil

	case commands.CalendarMutatedMsg:
		return m, commands.LoadCalendars(m.repo)

	case commands.StatusMsgCmd:
		m.statusMsg = msg.Msg
		m.statusTime = time.Now()
		return m, clearStatusAfter(3 * time.Second)

	case commands.ClearStatusMsg:
		if time.Since(m.statusTime) >= 3*time.Second-50*time.Millisecond {
			m.statusMsg = ""
		}
		return m, nil

	case commands.ErrMsg:
		m.err = msg.Err
		m.loading = false
		LogError("update", msg.Err)
		return m, nil
	}

	return m, nil
}

// drainCommits turns committer output into store writes and applies
// each one to the local snapshot so the strip follows the pointer
// without waiting for the reload round trip.
func (m *Model) drainCommits() []tea.Cmd {
	if len(m.queue.items) == 0 {
		return nil
	}
	cal, ok := m.activeCalendar()
	if !ok {
		m.queue.items = m.queue.items[:0]
		return nil
	}
	var cmds []tea.Cmd
	for _, pc := range m.queue.items {
		// Same normalization the store applies, so the local snapshot
		// never renders an out-of-range pair while the write is in
		// flight.
		start, end := block.NormalizeRange(pc.upd.Start, pc.upd.End)
		for i := range m.blocks {
			if m.blocks[i].ID == pc.id {
				m.blocks[i].Start = start
				m.blocks[i].End = end
				break
			}
		}
		LogCommit(pc.id, pc.upd.Start, pc.upd.End)
		cmds = append(cmds, commands.UpdateBlockTimes(m.repo, cal.ID, pc.id, pc.upd))
	}
	m.queue.items = m.queue.items[:0]
	return cmds
}

// switchCalendar moves the active tab by delta, wrapping around.
func (m Model) switchCalendar(delta int) (tea.Model, tea.Cmd) {
	if len(m.calendars) == 0 {
		return m, nil
	}
	m.machine.End()
	cmds := m.drainCommits()
	m.calendar = (m.calendar + delta + len(m.calendars)) % len(m.calendars)
	m.selected = ""
	m.loading = true
	cmds = append(cmds, commands.LoadBlocks(m.repo, m.calendars[m.calendar].ID))
	return m, tea.Batch(cmds...)
}
