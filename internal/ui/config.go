package ui

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"daygrid/internal/config"
	"daygrid/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show configuration",
		Long: `Print the active configuration and where it came from.

If no config file exists, one is created with default values.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runConfig()
		},
	}
}

func runConfig() error {
	configPath := config.DefaultConfigPath()
	fmt.Printf("Config file: %s\n\n", configPath)

	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		fmt.Println("No config file found. Creating with default values...")
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Printf("Created %s\n\n", configPath)
	}

	printConfig(cfg)
	return nil
}

func printConfig(cfg *config.Config) {
	fmt.Println(formatHeader("Timeline"))
	fmt.Printf("  default_duration_minutes: %d\n", cfg.Timeline.DefaultDurationMinutes)
	fmt.Printf("  default_block_color:      %s\n", cfg.Timeline.DefaultBlockColor)
	fmt.Printf("  marker_step_hours:        %d\n", cfg.Timeline.MarkerStepHours)
	fmt.Println(formatHeader("Storage"))
	fmt.Printf("  db_path: %s\n", cfg.Storage.DBPath)
	fmt.Println(formatHeader("UI"))
	fmt.Printf("  theme: %s %s\n", cfg.UI.Theme, formatMuted(fmt.Sprintf("(available: %v)", theme.Names())))
}
