// Package tui provides the terminal user interface for daygrid.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"daygrid/internal/block"
	"daygrid/internal/config"
	"daygrid/internal/timeline"
	"daygrid/internal/tui/commands"
	"daygrid/internal/tui/theme"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeLabelEdit
	ModeTimeEdit
	ModeConfirmDelete
	ModeNewCalendar
)

// pendingCommit is one store write the committer has released.
type pendingCommit struct {
	id  string
	upd block.TimeUpdate
}

// commitQueue collects committer output between Update calls. It is
// shared by pointer across Model copies so the sink closure survives
// bubbletea's value semantics.
type commitQueue struct {
	items []pendingCommit
}

// Model is the main TUI model.
type Model struct {
	// Dependencies
	repo   block.Repository
	config *config.Config

	// Theme and styles
	theme  *theme.Theme
	styles *Styles

	// Interaction engine
	machine   *timeline.Machine
	committer *timeline.Committer
	queue     *commitQueue

	// State
	calendars []block.Calendar
	calendar  int           // index into calendars
	blocks    []block.Block // snapshot for the active calendar
	selected  string        // selected block ID, "" for none
	loading   bool
	tickArmed bool // a committer flush tick is in flight
	mode      Mode

	// Modal state
	labelInput textinput.Model
	startInput textinput.Model
	endInput   textinput.Model
	nameInput  textinput.Model
	timeFocus  int    // 0=start, 1=end
	modalBlock string // block ID the modal targets

	// Terminal dimensions
	width  int
	height int

	// Messages
	statusMsg  string
	statusTime time.Time

	// Error state
	err error
}

// New creates a new TUI model.
func New(repo block.Repository, cfg *config.Config) Model {
	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		t, _ = theme.Load("mocha")
	}
	styles := NewStyles(t)

	label := textinput.New()
	label.Placeholder = "Block label"
	label.CharLimit = 80
	label.Width = 32

	start := textinput.New()
	start.Placeholder = "09:00"
	start.CharLimit = 5
	start.Width = 7

	end := textinput.New()
	end.Placeholder = "17:00"
	end.CharLimit = 5
	end.Width = 7

	name := textinput.New()
	name.Placeholder = "Calendar name"
	name.CharLimit = 40
	name.Width = 24

	queue := &commitQueue{}
	committer := timeline.NewCommitter(func(id string, upd block.TimeUpdate) {
		queue.items = append(queue.items, pendingCommit{id: id, upd: upd})
	})

	return Model{
		repo:       repo,
		config:     cfg,
		theme:      t,
		styles:     styles,
		machine:    timeline.NewMachine(committer),
		committer:  committer,
		queue:      queue,
		loading:    true,
		labelInput: label,
		startInput: start,
		endInput:   end,
		nameInput:  name,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return commands.LoadCalendars(m.repo)
}

// activeCalendar returns the calendar currently shown.
func (m Model) activeCalendar() (block.Calendar, bool) {
	if m.calendar < 0 || m.calendar >= len(m.calendars) {
		return block.Calendar{}, false
	}
	return m.calendars[m.calendar], true
}

// blockByID finds a block in the current snapshot.
func (m Model) blockByID(id string) (block.Block, bool) {
	for _, b := range m.blocks {
		if b.ID == id {
			return b, true
		}
	}
	return block.Block{}, false
}

// Run starts the TUI.
func Run(repo block.Repository, cfg *config.Config) error {
	return RunWithDebug(repo, cfg, false)
}

// RunWithDebug starts the TUI with optional debug logging.
func RunWithDebug(repo block.Repository, cfg *config.Config, debug bool) error {
	if err := InitDebugLogger(debug); err != nil {
		return err
	}
	defer CloseDebugLogger()

	zone.NewGlobal()
	defer zone.Close()

	model := New(repo, cfg)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}
