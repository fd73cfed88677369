package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/savr/internal/cli"
	"github.com/theirongolddev/savr/internal/model"
	"github.com/theirongolddev/savr/internal/validate"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var (
	flagGoalName     string
	flagGoalTarget   string
	flagGoalDate     string
	flagGoalCurrency string
	flagGoalImage    string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a savings goal",
	Long: "Create a savings goal. Missing required flags are asked for\n" +
		"interactively when running in a terminal.",
	Args: cobra.NoArgs,
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVar(&flagGoalName, "name", "", "Goal name")
	addCmd.Flags().StringVar(&flagGoalTarget, "target", "", "Target amount")
	addCmd.Flags().StringVar(&flagGoalDate, "date", "", "Target date (YYYY-MM-DD)")
	addCmd.Flags().StringVar(&flagGoalCurrency, "currency", "", "Currency: USD or IDR (default from config)")
	addCmd.Flags().StringVar(&flagGoalImage, "image", "", "Image URI")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	vals := goalFormValues{
		Name:     flagGoalName,
		Target:   flagGoalTarget,
		Date:     flagGoalDate,
		Currency: flagGoalCurrency,
		Image:    flagGoalImage,
	}
	if vals.Currency == "" {
		vals.Currency = string(a.cfg.Currency())
	}

	if vals.Name == "" || vals.Target == "" || vals.Date == "" {
		if !isInteractive() {
			return errors.New("--name, --target and --date are required when not running in a terminal")
		}
		if err := newGoalForm(&vals).Run(); err != nil {
			return err
		}
	}

	draft, err := vals.draft()
	if err != nil {
		return err
	}
	if err := validate.Goal(draft, time.Now()); err != nil {
		return err
	}

	g, err := a.ledger.AddGoal(cmd.Context(), draft)
	if err != nil {
		return err
	}

	info("Created %q (%s): %s by %s", g.Name, cli.ShortID(g.ID),
		cli.FormatMoney(g.TargetAmount, g.Currency), cli.FormatDate(g.TargetDate))
	return nil
}

// goalFormValues holds raw string input from flags or the huh form.
type goalFormValues struct {
	Name     string
	Target   string
	Date     string
	Currency string
	Image    string
}

func (v goalFormValues) draft() (model.GoalDraft, error) {
	target, err := parseAmount(v.Target)
	if err != nil {
		return model.GoalDraft{}, err
	}
	date, err := parseDate(v.Date)
	if err != nil {
		return model.GoalDraft{}, err
	}
	var cur model.Currency
	if v.Currency != "" {
		if cur, err = model.ParseCurrency(v.Currency); err != nil {
			return model.GoalDraft{}, err
		}
	}

	return model.GoalDraft{
		Name:         strings.TrimSpace(v.Name),
		TargetAmount: target,
		TargetDate:   date,
		Currency:     cur,
		ImageURI:     strings.TrimSpace(v.Image),
	}, nil
}

func newGoalForm(v *goalFormValues) *huh.Form {
	currencyOpts := make([]huh.Option[string], 0, len(model.Currencies))
	for _, c := range model.Currencies {
		currencyOpts = append(currencyOpts,
			huh.NewOption(fmt.Sprintf("%s (%s)", c.Name, c.Symbol), string(c.Code)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Goal name").
				Placeholder("Emergency fund").
				Value(&v.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("name is required")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Currency").
				Options(currencyOpts...).
				Value(&v.Currency),
			huh.NewInput().
				Title("Target amount").
				Value(&v.Target).
				Validate(func(s string) error {
					d, err := parseAmount(s)
					if err != nil {
						return err
					}
					if !d.IsPositive() {
						return errors.New("target must be greater than zero")
					}
					return nil
				}),
			huh.NewInput().
				Title("Target date").
				Description("YYYY-MM-DD").
				Placeholder(time.Now().AddDate(1, 0, 0).Format(dateLayout)).
				Value(&v.Date).
				Validate(func(s string) error {
					d, err := parseDate(s)
					if err != nil {
						return err
					}
					if !d.After(time.Now()) {
						return errors.New("target date must be in the future")
					}
					return nil
				}),
			huh.NewInput().
				Title("Image URI").
				Description("Optional").
				Value(&v.Image),
		),
	)
}
