package cmd

import (
	"fmt"
	"time"

	"github.com/theirongolddev/savr/internal/cli"
	"github.com/theirongolddev/savr/internal/progress"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Totals across all goals, per currency",
	Args:  cobra.NoArgs,
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	goals := a.ledger.Goals()
	if len(goals) == 0 {
		fmt.Println("\n  No savings goals yet.")
		fmt.Println("  Create one with `savr add`.")
		return nil
	}

	summaries := progress.Summarize(goals, time.Now())

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("SAVINGS  %d goals", len(goals))))
	fmt.Println()

	// Amounts in different currencies are never added together.
	for _, s := range summaries {
		rows := [][]string{
			{"Goals", fmt.Sprintf("%d", s.Goals)},
			{"Completed", fmt.Sprintf("%d", s.Completed)},
			{"On track", fmt.Sprintf("%d", s.OnTrack)},
			{"Overdue", fmt.Sprintf("%d", s.Overdue)},
			{"---"},
			{"Saved", cli.FormatMoney(s.TotalSaved, s.Currency)},
			{"Target", cli.FormatMoney(s.TotalTarget, s.Currency)},
			{"Progress", cli.RenderProgressBar(s.ProgressPercentage, 20) + " " + cli.FormatPercent(s.ProgressPercentage)},
		}

		fmt.Print(cli.RenderTable(cli.Table{
			Title:   fmt.Sprintf("%s (%s)", s.Currency.Info().Name, s.Currency),
			Headers: []string{"Metric", "Value"},
			Rows:    rows,
		}))
		fmt.Println()
	}

	return nil
}
