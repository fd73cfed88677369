package cmd

import (
	"fmt"

	"github.com/theirongolddev/savr/internal/config"
	"github.com/theirongolddev/savr/internal/model"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	Args:  cobra.NoArgs,
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	cfg := a.cfg
	currency := string(cfg.Currency())
	mode, err := a.store.LoadThemeMode(cmd.Context())
	if err != nil {
		return err
	}
	themeChoice := string(mode)
	showHelp := cfg.TUI.ShowHelp

	currencyOpts := make([]huh.Option[string], 0, len(model.Currencies))
	for _, c := range model.Currencies {
		currencyOpts = append(currencyOpts,
			huh.NewOption(fmt.Sprintf("%s (%s)", c.Name, c.Symbol), string(c.Code)))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to savr!").
				Description(fmt.Sprintf("You have %d savings goals.\nLet's set up a few things.",
					len(a.ledger.Goals()))),
			huh.NewSelect[string]().
				Title("Default currency for new goals").
				Options(currencyOpts...).
				Value(&currency),
			huh.NewSelect[string]().
				Title("Dashboard theme").
				Options(
					huh.NewOption("Follow terminal", string(model.ThemeSystem)),
					huh.NewOption("Light", string(model.ThemeLight)),
					huh.NewOption("Dark", string(model.ThemeDark)),
				).
				Value(&themeChoice),
			huh.NewConfirm().
				Title("Show key hints in the dashboard?").
				Value(&showHelp),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	cfg.General.DefaultCurrency = currency
	cfg.TUI.ShowHelp = showHelp
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	if err := a.store.SaveThemeMode(cmd.Context(), model.ThemeMode(themeChoice)); err != nil {
		return fmt.Errorf("saving theme: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.Path())
	fmt.Println("  Run `savr setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}
