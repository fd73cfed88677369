package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/savr/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Data directory:   %s\n", config.DataDir(cfg))
	if env := os.Getenv("SAVR_DATA_DIR"); env != "" {
		fmt.Println("                      (from SAVR_DATA_DIR)")
	}
	dbPath := config.DBPath(cfg)
	if flagDB != "" {
		dbPath = flagDB
	}
	fmt.Printf("    Database:         %s\n", dbPath)
	fmt.Printf("    Default currency: %s\n", cfg.Currency())
	fmt.Println()

	fmt.Println("  [Log]")
	level := cfg.Log.Level
	if flagLogLevel != "" {
		level = flagLogLevel + " (from --log-level)"
	}
	fmt.Printf("    Level:  %s\n", level)
	fmt.Printf("    Format: %s\n", cfg.Log.Format)
	fmt.Println()

	fmt.Println("  [TUI]")
	fmt.Printf("    Show key hints: %v\n", cfg.TUI.ShowHelp)
	fmt.Println()

	fmt.Println("  Run `savr setup` to reconfigure.")
	return nil
}
