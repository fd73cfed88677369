package cmd

import (
	"strings"
	"time"

	"github.com/theirongolddev/savr/internal/cli"
	"github.com/theirongolddev/savr/internal/model"
	"github.com/theirongolddev/savr/internal/validate"

	"github.com/spf13/cobra"
)

var (
	flagTxnNote string
	flagTxnDate string
)

var depositCmd = &cobra.Command{
	Use:   "deposit <id> <amount>",
	Short: "Add money to a goal",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTransaction(cmd, args, model.Deposit)
	},
}

var withdrawCmd = &cobra.Command{
	Use:   "withdraw <id> <amount>",
	Short: "Take money out of a goal",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTransaction(cmd, args, model.Withdrawal)
	},
}

func init() {
	for _, c := range []*cobra.Command{depositCmd, withdrawCmd} {
		c.Flags().StringVarP(&flagTxnNote, "note", "m", "", "Description (required)")
		c.Flags().StringVar(&flagTxnDate, "date", "", "Transaction date (YYYY-MM-DD, default now)")
		_ = c.MarkFlagRequired("note")
		rootCmd.AddCommand(c)
	}
}

func runTransaction(cmd *cobra.Command, args []string, typ model.TransactionType) error {
	amount, err := parseAmount(args[1])
	if err != nil {
		return err
	}
	var date time.Time
	if flagTxnDate != "" {
		if date, err = parseDate(flagTxnDate); err != nil {
			return err
		}
	}

	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	g, err := resolveGoal(a.ledger, args[0])
	if err != nil {
		return err
	}

	draft := model.TransactionDraft{
		Amount:      amount,
		Type:        typ,
		Description: strings.TrimSpace(flagTxnNote),
		Date:        date,
	}
	if err := validate.Transaction(g, draft); err != nil {
		return err
	}

	txn, err := a.ledger.AddTransaction(cmd.Context(), g.ID, draft)
	if err != nil {
		return err
	}

	updated, err := a.ledger.Goal(g.ID)
	if err != nil {
		return err
	}
	cur := updated.Currency.OrDefault()
	info("%s %s: balance %s of %s", cli.FormatSignedMoney(txn, cur), updated.Name,
		cli.FormatMoney(updated.CurrentAmount, cur), cli.FormatMoney(updated.TargetAmount, cur))
	return nil
}
