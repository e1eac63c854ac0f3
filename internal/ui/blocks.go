package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"daygrid/internal/block"
)

func (a *App) addCmd() *cobra.Command {
	var (
		calName    string
		endClock   string
		blockColor string
	)

	cmd := &cobra.Command{
		Use:   "add <start> <label>",
		Short: "Add a block to the timeline",
		Long: `Add a block starting at the given time of day.

Times are HH:MM on a 24-hour clock and snap to the quarter-hour
grid. Without --end the block gets the configured default length.
An end at or before the start wraps past midnight.`,
		Example: `  daygrid add 09:00 "Deep work"
  daygrid add 13:30 Lunch --end=14:00
  daygrid add 23:00 "Night shift" --end=07:00 --calendar=Work`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			ctx := context.Background()
			cal, err := a.defaultCalendar(ctx, calName)
			if err != nil {
				return err
			}

			start, err := block.ParseClock(args[0])
			if err != nil {
				return fmt.Errorf("start time: %w", err)
			}
			label := strings.Join(args[1:], " ")

			clr := blockColor
			if clr == "" {
				clr = a.config.Timeline.DefaultBlockColor
			}
			b, err := block.New(cal.ID, label, clr, start)
			if err != nil {
				return err
			}
			if endClock != "" {
				end, err := block.ParseClock(endClock)
				if err != nil {
					return fmt.Errorf("end time: %w", err)
				}
				b.Start, b.End = block.NormalizeRange(b.Start, end)
			}

			if err := a.repo.CreateBlock(ctx, b); err != nil {
				return fmt.Errorf("creating block: %w", err)
			}
			fmt.Printf("Added %s %s on %s\n",
				formatTime(b.TimeRange()), formatBlock(b.Label), formatHeader(cal.Name))
			return nil
		},
	}

	cmd.Flags().StringVar(&calName, "calendar", "", "Calendar name (defaults to the first calendar)")
	cmd.Flags().StringVar(&endClock, "end", "", "End time (HH:MM)")
	cmd.Flags().StringVar(&blockColor, "color", "", "Block color (#rrggbb)")
	return cmd
}

func (a *App) listCmd() *cobra.Command {
	var calName string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List blocks on a calendar",
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			ctx := context.Background()
			cal, err := a.defaultCalendar(ctx, calName)
			if err != nil {
				return err
			}
			blocks, err := a.repo.ListBlocks(ctx, cal.ID)
			if err != nil {
				return fmt.Errorf("listing blocks: %w", err)
			}

			fmt.Printf("%s\n", formatHeader(cal.Name))
			fmt.Println(formatMuted(strings.Repeat("─", min(termWidth(), 48))))
			if len(blocks) == 0 {
				fmt.Println(formatMuted("  no blocks"))
				return nil
			}
			for _, b := range blocks {
				wrap := ""
				if b.WrapsMidnight() {
					wrap = formatMuted(" (wraps midnight)")
				}
				fmt.Printf("  %s  %s%s\n", formatTime(b.TimeRange()), formatBlock(b.Label), wrap)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&calName, "calendar", "", "Calendar name (defaults to the first calendar)")
	return cmd
}

func (a *App) recolorCmd() *cobra.Command {
	var calName string

	cmd := &cobra.Command{
		Use:     "recolor <label> <color>",
		Short:   "Change the color of blocks matching a label",
		Example: `  daygrid recolor "Deep work" "#a6e3a1"`,
		Args:    cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			ctx := context.Background()
			cal, err := a.defaultCalendar(ctx, calName)
			if err != nil {
				return err
			}
			blocks, err := a.repo.ListBlocks(ctx, cal.ID)
			if err != nil {
				return fmt.Errorf("listing blocks: %w", err)
			}

			changed := 0
			for _, b := range blocks {
				if !strings.EqualFold(b.Label, args[0]) {
					continue
				}
				if err := a.repo.UpdateBlockColor(ctx, b.ID, args[1]); err != nil {
					return fmt.Errorf("recoloring block: %w", err)
				}
				changed++
			}
			if changed == 0 {
				return fmt.Errorf("no block labeled %q: %w", args[0], block.ErrBlockNotFound)
			}
			fmt.Printf("Recolored %d blocks\n", changed)
			return nil
		},
	}

	cmd.Flags().StringVar(&calName, "calendar", "", "Calendar name (defaults to the first calendar)")
	return cmd
}

func (a *App) rmCmd() *cobra.Command {
	var calName string

	cmd := &cobra.Command{
		Use:   "rm <label>",
		Short: "Remove blocks matching a label",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			ctx := context.Background()
			cal, err := a.defaultCalendar(ctx, calName)
			if err != nil {
				return err
			}
			blocks, err := a.repo.ListBlocks(ctx, cal.ID)
			if err != nil {
				return fmt.Errorf("listing blocks: %w", err)
			}

			removed := 0
			for _, b := range blocks {
				if !strings.EqualFold(b.Label, args[0]) {
					continue
				}
				if err := a.repo.DeleteBlock(ctx, b.ID); err != nil {
					return fmt.Errorf("deleting block: %w", err)
				}
				fmt.Printf("Removed %s %s\n", formatTime(b.TimeRange()), formatBlock(b.Label))
				removed++
			}
			if removed == 0 {
				return fmt.Errorf("no block labeled %q: %w", args[0], block.ErrBlockNotFound)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&calName, "calendar", "", "Calendar name (defaults to the first calendar)")
	return cmd
}
