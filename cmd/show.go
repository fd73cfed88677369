package cmd

import (
	"fmt"
	"time"

	"github.com/theirongolddev/savr/internal/cli"
	"github.com/theirongolddev/savr/internal/progress"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a goal's progress and transaction history",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	g, err := resolveGoal(a.ledger, args[0])
	if err != nil {
		return err
	}

	now := time.Now()
	p := progress.Calculate(g, now)
	cur := g.Currency.OrDefault()

	fmt.Println()
	fmt.Println(cli.RenderTitle(g.Name))
	fmt.Println()

	rows := [][]string{
		{"ID", g.ID},
		{"Currency", fmt.Sprintf("%s (%s)", cur.Info().Name, cur)},
		{"Created", cli.FormatDate(g.CreatedAt)},
		{"Target date", cli.FormatDate(g.TargetDate)},
	}
	if g.ImageURI != "" {
		rows = append(rows, []string{"Image", g.ImageURI})
	}
	rows = append(rows,
		[]string{"---"},
		[]string{"Saved", cli.FormatMoney(g.CurrentAmount, cur)},
		[]string{"Target", cli.FormatMoney(g.TargetAmount, cur)},
		[]string{"Remaining", cli.FormatMoney(p.RemainingAmount, cur)},
		[]string{"Progress", cli.RenderProgressBar(p.ProgressPercentage, 20) + " " + cli.FormatPercent(p.ProgressPercentage)},
		[]string{"Expected by now", cli.FormatPercent(p.ExpectedPercentage)},
		[]string{"Status", cli.FormatStatus(p, g.IsComplete())},
		[]string{"---"},
		[]string{"Days left", cli.FormatDaysLeft(p.DaysRemaining)},
		[]string{"Needed per day", cli.FormatMoney(p.RequiredPerDay, cur)},
		[]string{"Needed per week", cli.FormatMoney(p.RequiredPerWeek, cur)},
		[]string{"Needed per month", cli.FormatMoney(p.RequiredPerMonth, cur)},
	)

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Field", "Value"},
		Rows:    rows,
	}))

	if p.Degenerate != nil {
		fmt.Println(cli.WarnStyle.Render("  Note: " + p.Degenerate.Error()))
	}

	fmt.Println()
	if len(g.Transactions) == 0 {
		fmt.Println("  No transactions yet.")
		fmt.Printf("  Record one with `savr deposit %s <amount> --note ...`.\n", cli.ShortID(g.ID))
		return nil
	}

	txRows := make([][]string, 0, len(g.Transactions))
	for _, t := range g.RecentTransactions() {
		txRows = append(txRows, []string{
			cli.FormatDate(t.Date),
			string(t.Type),
			cli.FormatSignedMoney(t, cur),
			t.Description,
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("Transactions (%d, newest first)", len(g.Transactions)),
		Headers: []string{"Date", "Type", "Amount", "Note"},
		Rows:    txRows,
	}))
	return nil
}
