// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"daygrid/internal/block"
)

// CalendarsLoadedMsg is sent when the calendar list is loaded.
type CalendarsLoadedMsg struct {
	Calendars []block.Calendar
}

// BlocksLoadedMsg carries a fresh snapshot of one calendar's blocks.
type BlocksLoadedMsg struct {
	CalendarID string
	Blocks     []block.Block
}

// BlockMutatedMsg is sent after any write so the snapshot reloads.
type BlockMutatedMsg struct {
	CalendarID string
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// CalendarMutatedMsg is sent after a calendar write so the list reloads.
type CalendarMutatedMsg struct{}

// LoadCalendars loads all calendars, creating a default one when the
// store is empty so the timeline always has a home.
func LoadCalendars(repo block.Repository) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		calendars, err := repo.ListCalendars(ctx)
		if err != nil {
			return ErrMsg{Err: err}
		}
		if len(calendars) == 0 {
			c, err := block.NewCalendar("Personal", "#89b4fa")
			if err != nil {
				return ErrMsg{Err: err}
			}
			if err := repo.CreateCalendar(ctx, c); err != nil {
				return ErrMsg{Err: fmt.Errorf("creating default calendar: %w", err)}
			}
			calendars = []block.Calendar{c}
		}

		return CalendarsLoadedMsg{Calendars: calendars}
	}
}

// LoadBlocks loads the block snapshot for one calendar.
func LoadBlocks(repo block.Repository, calendarID string) tea.Cmd {
	return func() tea.Msg {
		blocks, err := repo.ListBlocks(context.Background(), calendarID)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return BlocksLoadedMsg{CalendarID: calendarID, Blocks: blocks}
	}
}

// CreateBlock persists a new block.
func CreateBlock(repo block.Repository, b block.Block) tea.Cmd {
	return func() tea.Msg {
		if err := repo.CreateBlock(context.Background(), b); err != nil {
			return ErrMsg{Err: fmt.Errorf("creating block: %w", err)}
		}
		return BlockMutatedMsg{CalendarID: b.CalendarID}
	}
}

// UpdateBlockTimes persists a time change requested by the gesture
// machine or the time editor. The incoming pair is re-normalized at
// this boundary before it reaches storage. A block deleted mid-gesture
// is not an error; the stale update is simply dropped.
func UpdateBlockTimes(repo block.Repository, calendarID, id string, upd block.TimeUpdate) tea.Cmd {
	return func() tea.Msg {
		upd.Start, upd.End = block.NormalizeRange(upd.Start, upd.End)
		err := repo.UpdateBlockTimes(context.Background(), id, upd)
		if err != nil && err != block.ErrBlockNotFound {
			return ErrMsg{Err: fmt.Errorf("updating block times: %w", err)}
		}
		return BlockMutatedMsg{CalendarID: calendarID}
	}
}

// UpdateBlockLabel persists a label change.
func UpdateBlockLabel(repo block.Repository, calendarID, id, label string) tea.Cmd {
	return func() tea.Msg {
		err := repo.UpdateBlockLabel(context.Background(), id, label)
		if err != nil && err != block.ErrBlockNotFound {
			return ErrMsg{Err: fmt.Errorf("updating block label: %w", err)}
		}
		return BlockMutatedMsg{CalendarID: calendarID}
	}
}

// DeleteBlock removes a block.
func DeleteBlock(repo block.Repository, calendarID, id string) tea.Cmd {
	return func() tea.Msg {
		err := repo.DeleteBlock(context.Background(), id)
		if err != nil && err != block.ErrBlockNotFound {
			return ErrMsg{Err: fmt.Errorf("deleting block: %w", err)}
		}
		return BlockMutatedMsg{CalendarID: calendarID}
	}
}

// CreateCalendar persists a new calendar.
func CreateCalendar(repo block.Repository, name, color string) tea.Cmd {
	return func() tea.Msg {
		c, err := block.NewCalendar(name, color)
		if err != nil {
			return ErrMsg{Err: err}
		}
		if err := repo.CreateCalendar(context.Background(), c); err != nil {
			return ErrMsg{Err: fmt.Errorf("creating calendar: %w", err)}
		}
		return CalendarMutatedMsg{}
	}
}
