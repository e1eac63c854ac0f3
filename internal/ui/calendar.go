package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"daygrid/internal/block"
)

func (a *App) calendarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Manage calendars",
	}
	cmd.AddCommand(a.calendarListCmd())
	cmd.AddCommand(a.calendarAddCmd())
	cmd.AddCommand(a.calendarRenameCmd())
	cmd.AddCommand(a.calendarRmCmd())
	return cmd
}

func (a *App) calendarListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List calendars",
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			ctx := context.Background()
			calendars, err := a.repo.ListCalendars(ctx)
			if err != nil {
				return fmt.Errorf("listing calendars: %w", err)
			}
			if len(calendars) == 0 {
				fmt.Println("No calendars. Create one with: daygrid calendar add <name>")
				return nil
			}
			for _, c := range calendars {
				blocks, err := a.repo.ListBlocks(ctx, c.ID)
				if err != nil {
					return fmt.Errorf("listing blocks: %w", err)
				}
				fmt.Printf("%s  %s\n", formatHeader(c.Name), formatMuted(fmt.Sprintf("(%d blocks)", len(blocks))))
			}
			return nil
		},
	}
}

func (a *App) calendarAddCmd() *cobra.Command {
	var calColor string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a calendar",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			c, err := block.NewCalendar(args[0], calColor)
			if err != nil {
				return err
			}
			if err := a.repo.CreateCalendar(context.Background(), c); err != nil {
				return fmt.Errorf("creating calendar: %w", err)
			}
			fmt.Printf("Created calendar %s\n", formatHeader(c.Name))
			return nil
		},
	}

	cmd.Flags().StringVar(&calColor, "color", "#89b4fa", "Calendar color (#rrggbb)")
	return cmd
}

func (a *App) calendarRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <name> <new-name>",
		Short: "Rename a calendar",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			ctx := context.Background()
			c, err := a.findCalendar(ctx, args[0])
			if err != nil {
				return err
			}
			if err := a.repo.RenameCalendar(ctx, c.ID, args[1]); err != nil {
				return fmt.Errorf("renaming calendar: %w", err)
			}
			fmt.Printf("Renamed %s to %s\n", formatMuted(args[0]), formatHeader(args[1]))
			return nil
		},
	}
}

func (a *App) calendarRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <name>",
		Short: "Delete a calendar and all of its blocks",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			ctx := context.Background()
			c, err := a.findCalendar(ctx, args[0])
			if err != nil {
				return err
			}
			if err := a.repo.DeleteCalendar(ctx, c.ID); err != nil {
				return fmt.Errorf("deleting calendar: %w", err)
			}
			fmt.Printf("Deleted calendar %s\n", args[0])
			return nil
		},
	}
}

// findCalendar resolves a calendar by case-insensitive name.
func (a *App) findCalendar(ctx context.Context, name string) (block.Calendar, error) {
	calendars, err := a.repo.ListCalendars(ctx)
	if err != nil {
		return block.Calendar{}, fmt.Errorf("listing calendars: %w", err)
	}
	for _, c := range calendars {
		if strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	return block.Calendar{}, fmt.Errorf("calendar %q: %w", name, block.ErrCalendarNotFound)
}

// defaultCalendar returns the calendar named by --calendar, or the
// first calendar when the flag is empty.
func (a *App) defaultCalendar(ctx context.Context, name string) (block.Calendar, error) {
	if name != "" {
		return a.findCalendar(ctx, name)
	}
	calendars, err := a.repo.ListCalendars(ctx)
	if err != nil {
		return block.Calendar{}, fmt.Errorf("listing calendars: %w", err)
	}
	if len(calendars) == 0 {
		return block.Calendar{}, fmt.Errorf("no calendars: %w", block.ErrMissingCalendar)
	}
	return calendars[0], nil
}
