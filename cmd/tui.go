package cmd

import (
	"context"
	"fmt"

	"github.com/theirongolddev/savr/internal/tui"
	"github.com/theirongolddev/savr/internal/watch"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI dashboard",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	mode, err := a.store.LoadThemeMode(cmd.Context())
	if err != nil {
		return err
	}

	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	lipgloss.SetColorProfile(termenv.TrueColor)

	app := tui.NewApp(a.ledger, a.store, tui.Options{
		ThemeMode: mode,
		ShowHints: a.cfg.TUI.ShowHelp,
	})
	defer app.Close()

	// Follow writes made by other savr processes while the dashboard is open.
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	go followExternalChanges(ctx, a)

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}

func followExternalChanges(ctx context.Context, a *app) {
	w := watch.New(a.store, watch.Config{Logger: a.log})
	events, cancel := w.Subscribe()
	defer cancel()

	go func() { _ = w.Run(ctx) }()

	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-events:
			if ev.Type != watch.EventGoalsChanged {
				continue
			}
			if err := a.ledger.Reload(ctx); err != nil {
				a.log.WithError(err).Warn("TUI.Reload.Error")
			}
		}
	}
}
