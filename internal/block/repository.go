package block

import "context"

// TimeUpdate is a partial update of a block's scheduled times.
type TimeUpdate struct {
	Start float64
	End   float64
}

// Repository defines the storage interface for calendars and blocks.
// The timeline engine never calls it directly; mutations flow through
// the commit policy and the TUI's command layer.
type Repository interface {
	// CreateCalendar adds a new calendar.
	CreateCalendar(ctx context.Context, c Calendar) error

	// ListCalendars returns all calendars ordered by name.
	ListCalendars(ctx context.Context) ([]Calendar, error)

	// RenameCalendar updates a calendar's name.
	RenameCalendar(ctx context.Context, id, name string) error

	// DeleteCalendar removes a calendar and all of its blocks.
	DeleteCalendar(ctx context.Context, id string) error

	// CreateBlock adds a new block.
	CreateBlock(ctx context.Context, b Block) error

	// GetBlock retrieves a block by ID. Returns ErrBlockNotFound if it
	// does not exist.
	GetBlock(ctx context.Context, id string) (Block, error)

	// ListBlocks returns all blocks on one calendar ordered by start time.
	ListBlocks(ctx context.Context, calendarID string) ([]Block, error)

	// UpdateBlockTimes updates a block's start and end in place.
	UpdateBlockTimes(ctx context.Context, id string, upd TimeUpdate) error

	// UpdateBlockLabel updates a block's label in place.
	UpdateBlockLabel(ctx context.Context, id, label string) error

	// UpdateBlockColor updates a block's display color in place.
	UpdateBlockColor(ctx context.Context, id, color string) error

	// DeleteBlock removes a block.
	DeleteBlock(ctx context.Context, id string) error

	// Close releases any resources held by the repository.
	Close() error
}
