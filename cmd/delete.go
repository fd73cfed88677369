package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/savr/internal/cli"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var flagYes bool

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a goal and all of its transactions",
	Args:    cobra.ExactArgs(1),
	RunE:    runDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	g, err := resolveGoal(a.ledger, args[0])
	if err != nil {
		return err
	}

	if !flagYes {
		if !isInteractive() {
			return errors.New("refusing to delete without confirmation; pass --yes")
		}
		confirmed := false
		err := huh.NewConfirm().
			Title(fmt.Sprintf("Delete %q?", g.Name)).
			Description(fmt.Sprintf("This removes the goal and its %d transactions. It cannot be undone.",
				len(g.Transactions))).
			Affirmative("Delete").
			Negative("Cancel").
			Value(&confirmed).
			Run()
		if err != nil {
			return err
		}
		if !confirmed {
			info("Cancelled")
			return nil
		}
	}

	if err := a.ledger.DeleteGoal(cmd.Context(), g.ID); err != nil {
		return err
	}

	info("Deleted %q (%s)", g.Name, cli.ShortID(g.ID))
	return nil
}
