package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/theirongolddev/savr/internal/cli"
	"github.com/theirongolddev/savr/internal/model"
	"github.com/theirongolddev/savr/internal/watch"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	flagWatchInterval time.Duration
	flagWatchJSON     bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow changes to the goals document made by any savr process",
	Args:  cobra.NoArgs,
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&flagWatchInterval, "interval", 2*time.Second, "Polling interval")
	watchCmd.Flags().BoolVar(&flagWatchJSON, "json", false, "Emit one JSON event per line")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	w := watch.New(a.store, watch.Config{
		Interval: flagWatchInterval,
		Logger:   a.log,
	})
	events, cancelSub := w.Subscribe()
	defer cancelSub()

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if !flagWatchJSON {
		info("Watching for goal changes every %s (Ctrl+C to stop)", flagWatchInterval)
	}

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	enc := json.NewEncoder(os.Stdout)
	for {
		select {
		case ev := <-events:
			if flagWatchJSON {
				if err := enc.Encode(ev); err != nil {
					return fmt.Errorf("encoding event: %w", err)
				}
				continue
			}
			fmt.Println(describeWatchEvent(ev))
		case err := <-done:
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		}
	}
}

func describeWatchEvent(ev watch.Event) string {
	stamp := ev.Timestamp.Local().Format("15:04:05")
	snap := ev.Snapshot

	if ev.Type == watch.EventSnapshot {
		return fmt.Sprintf("  %s  %d goals, %d complete, saved %s",
			stamp, snap.Goals, snap.Completed, formatSaved(snap.Saved))
	}

	d := ev.Delta
	if d.IsZero() {
		return fmt.Sprintf("  %s  goals updated", stamp)
	}

	var parts []string
	if d.Goals != 0 {
		parts = append(parts, fmt.Sprintf("%+d goals", d.Goals))
	}
	if d.Transactions != 0 {
		parts = append(parts, fmt.Sprintf("%+d transactions", d.Transactions))
	}
	if d.Completed != 0 {
		parts = append(parts, fmt.Sprintf("%+d complete", d.Completed))
	}
	if len(d.Saved) > 0 {
		parts = append(parts, "saved "+formatSavedDelta(d.Saved))
	}
	return fmt.Sprintf("  %s  %s", stamp, strings.Join(parts, ", "))
}

func sortedCurrencies[V any](m map[model.Currency]V) []model.Currency {
	out := make([]model.Currency, 0, len(m))
	for cur := range m {
		out = append(out, cur)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func formatSaved(saved map[model.Currency]decimal.Decimal) string {
	if len(saved) == 0 {
		return "nothing"
	}
	var parts []string
	for _, cur := range sortedCurrencies(saved) {
		parts = append(parts, cli.FormatMoney(saved[cur], cur))
	}
	return strings.Join(parts, " / ")
}

func formatSavedDelta(saved map[model.Currency]decimal.Decimal) string {
	var parts []string
	for _, cur := range sortedCurrencies(saved) {
		amt := saved[cur]
		sign := "+"
		if amt.IsNegative() {
			sign = ""
		}
		parts = append(parts, sign+cli.FormatMoney(amt, cur))
	}
	return strings.Join(parts, " / ")
}
