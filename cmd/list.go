package cmd

import (
	"fmt"
	"time"

	"github.com/theirongolddev/savr/internal/cli"
	"github.com/theirongolddev/savr/internal/model"
	"github.com/theirongolddev/savr/internal/progress"

	"github.com/spf13/cobra"
)

var (
	flagFilterName     string
	flagFilterCurrency string
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List savings goals with progress",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

func init() {
	registerListFlags(listCmd)
	rootCmd.AddCommand(listCmd)
}

func registerListFlags(c *cobra.Command) {
	c.Flags().StringVar(&flagFilterName, "name", "", "Filter to goals whose name contains this text")
	c.Flags().StringVar(&flagFilterCurrency, "currency", "", "Filter to one currency (USD, IDR)")
}

func runList(cmd *cobra.Command, _ []string) error {
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

	if flagFilterName != "" {
		goals = progress.FilterByName(goals, flagFilterName)
	}
	if flagFilterCurrency != "" {
		cur, err := model.ParseCurrency(flagFilterCurrency)
		if err != nil {
			return err
		}
		goals = progress.FilterByCurrency(goals, cur)
	}
	if len(goals) == 0 {
		fmt.Println("\n  No goals match the filter.")
		return nil
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(goalTable(goals, time.Now())))
	return nil
}

func goalTable(goals []model.SavingsGoal, now time.Time) cli.Table {
	rows := make([][]string, 0, len(goals))
	for _, g := range goals {
		p := progress.Calculate(g, now)
		cur := g.Currency.OrDefault()
		rows = append(rows, []string{
			cli.ShortID(g.ID),
			g.Name,
			cli.FormatMoney(g.CurrentAmount, cur),
			cli.FormatMoney(g.TargetAmount, cur),
			cli.RenderProgressBar(p.ProgressPercentage, 12) + " " + cli.FormatPercent(p.ProgressPercentage),
			cli.FormatDaysLeft(p.DaysRemaining),
			cli.FormatStatus(p, g.IsComplete()),
		})
	}

	return cli.Table{
		Title:   fmt.Sprintf("Savings goals (%d)", len(goals)),
		Headers: []string{"ID", "Goal", "Saved", "Target", "Progress", "Left", "Status"},
		Rows:    rows,
	}
}
