package ui

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"daygrid/internal/block"
)

// exportDoc is the YAML document written by export and read back by
// import. Times travel as HH:MM strings so files stay hand-editable.
type exportDoc struct {
	Calendars []exportCalendar `yaml:"calendars"`
}

type exportCalendar struct {
	Name   string        `yaml:"name"`
	Color  string        `yaml:"color,omitempty"`
	Blocks []exportBlock `yaml:"blocks"`
}

type exportBlock struct {
	Label string `yaml:"label"`
	Start string `yaml:"start"`
	End   string `yaml:"end"`
	Color string `yaml:"color,omitempty"`
}

func (a *App) exportCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all calendars to YAML",
		Example: `  daygrid export
  daygrid export --out=schedule.yaml`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			doc, err := buildExport(context.Background(), a.repo)
			if err != nil {
				return err
			}

			w := io.Writer(os.Stdout)
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("creating export file: %w", err)
				}
				defer f.Close()
				w = f
			}

			enc := yaml.NewEncoder(w)
			enc.SetIndent(2)
			if err := enc.Encode(doc); err != nil {
				return fmt.Errorf("encoding export: %w", err)
			}
			return enc.Close()
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Write to file instead of stdout")
	return cmd
}

func (a *App) importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import calendars from YAML",
		Long: `Import calendars and blocks from a YAML export.

Calendars are matched by name; blocks are always created, never
merged. Times snap to the quarter-hour grid on the way in.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading import file: %w", err)
			}

			var doc exportDoc
			if err := yaml.Unmarshal(data, &doc); err != nil {
				return fmt.Errorf("parsing import file: %w", err)
			}

			created, err := applyImport(context.Background(), a.repo, a.config.Timeline.DefaultBlockColor, doc)
			if err != nil {
				return err
			}
			fmt.Printf("Imported %d blocks\n", created)
			return nil
		},
	}
	return cmd
}

// buildExport snapshots every calendar and its blocks.
func buildExport(ctx context.Context, repo block.Repository) (exportDoc, error) {
	calendars, err := repo.ListCalendars(ctx)
	if err != nil {
		return exportDoc{}, fmt.Errorf("listing calendars: %w", err)
	}

	var doc exportDoc
	for _, c := range calendars {
		blocks, err := repo.ListBlocks(ctx, c.ID)
		if err != nil {
			return exportDoc{}, fmt.Errorf("listing blocks: %w", err)
		}
		ec := exportCalendar{Name: c.Name, Color: c.Color}
		for _, b := range blocks {
			ec.Blocks = append(ec.Blocks, exportBlock{
				Label: b.Label,
				Start: block.FormatClock(b.Start),
				End:   block.FormatClock(b.End),
				Color: b.Color,
			})
		}
		doc.Calendars = append(doc.Calendars, ec)
	}
	return doc, nil
}

// applyImport writes a document into the store, reusing calendars
// that already exist under the same name.
func applyImport(ctx context.Context, repo block.Repository, defaultColor string, doc exportDoc) (int, error) {
	existing, err := repo.ListCalendars(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing calendars: %w", err)
	}
	byName := make(map[string]block.Calendar, len(existing))
	for _, c := range existing {
		byName[c.Name] = c
	}

	created := 0
	for _, ec := range doc.Calendars {
		cal, ok := byName[ec.Name]
		if !ok {
			clr := ec.Color
			if clr == "" {
				clr = defaultColor
			}
			cal, err = block.NewCalendar(ec.Name, clr)
			if err != nil {
				return created, fmt.Errorf("calendar %q: %w", ec.Name, err)
			}
			if err := repo.CreateCalendar(ctx, cal); err != nil {
				return created, fmt.Errorf("creating calendar %q: %w", ec.Name, err)
			}
			byName[ec.Name] = cal
		}

		for _, eb := range ec.Blocks {
			start, err := block.ParseClock(eb.Start)
			if err != nil {
				return created, fmt.Errorf("block %q start: %w", eb.Label, err)
			}
			end, err := block.ParseClock(eb.End)
			if err != nil {
				return created, fmt.Errorf("block %q end: %w", eb.Label, err)
			}
			clr := eb.Color
			if clr == "" {
				clr = defaultColor
			}
			b, err := block.New(cal.ID, eb.Label, clr, start)
			if err != nil {
				return created, fmt.Errorf("block %q: %w", eb.Label, err)
			}
			b.Start, b.End = block.NormalizeRange(start, end)
			if err := repo.CreateBlock(ctx, b); err != nil {
				return created, fmt.Errorf("creating block %q: %w", eb.Label, err)
			}
			created++
		}
	}
	return created, nil
}
