package cmd

import (
	"fmt"

	"github.com/theirongolddev/savr/internal/model"

	"github.com/spf13/cobra"
)

var themeCmd = &cobra.Command{
	Use:       "theme [light|dark|system|next]",
	Short:     "Show or set the dashboard theme",
	Long:      "Show the stored theme, set it, or cycle it with `next` (light, dark, system).",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"light", "dark", "system", "next"},
	RunE:      runTheme,
}

func init() {
	rootCmd.AddCommand(themeCmd)
}

func runTheme(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	current, err := a.store.LoadThemeMode(cmd.Context())
	if err != nil {
		return err
	}

	if len(args) == 0 {
		fmt.Println(current)
		return nil
	}

	next := current.Next()
	if args[0] != "next" {
		if next, err = model.ParseThemeMode(args[0]); err != nil {
			return err
		}
	}

	if err := a.store.SaveThemeMode(cmd.Context(), next); err != nil {
		return err
	}
	info("Theme: %s -> %s", current, next)
	return nil
}
