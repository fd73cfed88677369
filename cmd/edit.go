package cmd

import (
	"errors"
	"strings"
	"time"

	"github.com/theirongolddev/savr/internal/cli"
	"github.com/theirongolddev/savr/internal/model"
	"github.com/theirongolddev/savr/internal/validate"

	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change a goal's name, target, date, currency or image",
	Long: "Change a goal. Only the flags you pass are changed; balance and\n" +
		"transactions are never touched. Pass --image \"\" to remove the image.",
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().String("name", "", "New goal name")
	editCmd.Flags().String("target", "", "New target amount")
	editCmd.Flags().String("date", "", "New target date (YYYY-MM-DD)")
	editCmd.Flags().String("currency", "", "New currency (USD, IDR)")
	editCmd.Flags().String("image", "", "New image URI, empty to clear")
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	u, err := updateFromFlags(cmd)
	if err != nil {
		return err
	}
	if u.IsEmpty() {
		return errors.New("nothing to change: pass at least one of --name, --target, --date, --currency, --image")
	}
	if err := validate.GoalUpdate(u, time.Now()); err != nil {
		return err
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

	updated, err := a.ledger.UpdateGoal(cmd.Context(), g.ID, u)
	if err != nil {
		return err
	}

	info("Updated %q (%s): %s by %s", updated.Name, cli.ShortID(updated.ID),
		cli.FormatMoney(updated.TargetAmount, updated.Currency), cli.FormatDate(updated.TargetDate))
	return nil
}

// updateFromFlags turns explicitly set flags into a sparse update.
func updateFromFlags(cmd *cobra.Command) (model.GoalUpdate, error) {
	var u model.GoalUpdate
	flags := cmd.Flags()

	if flags.Changed("name") {
		v, _ := flags.GetString("name")
		v = strings.TrimSpace(v)
		u.Name = &v
	}
	if flags.Changed("target") {
		v, _ := flags.GetString("target")
		d, err := parseAmount(v)
		if err != nil {
			return u, err
		}
		u.TargetAmount = &d
	}
	if flags.Changed("date") {
		v, _ := flags.GetString("date")
		d, err := parseDate(v)
		if err != nil {
			return u, err
		}
		u.TargetDate = &d
	}
	if flags.Changed("currency") {
		v, _ := flags.GetString("currency")
		c, err := model.ParseCurrency(v)
		if err != nil {
			return u, err
		}
		u.Currency = &c
	}
	if flags.Changed("image") {
		v, _ := flags.GetString("image")
		v = strings.TrimSpace(v)
		u.ImageURI = &v
	}
	return u, nil
}
