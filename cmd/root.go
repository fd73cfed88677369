// Package cmd implements the savr CLI commands.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/theirongolddev/savr/internal/apperrors"
	"github.com/theirongolddev/savr/internal/config"
	"github.com/theirongolddev/savr/internal/ledger"
	"github.com/theirongolddev/savr/internal/logging"
	"github.com/theirongolddev/savr/internal/model"
	"github.com/theirongolddev/savr/internal/store"

	"github.com/mattn/go-isatty"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	flagDB       string
	flagLogLevel string
	flagQuiet    bool
)

var rootCmd = &cobra.Command{
	Use:          "savr",
	Short:        "Savings goals tracker",
	Long:         "Track savings goals, record deposits and withdrawals, and see whether you are on pace.",
	SilenceUsage: true,
	RunE:         runList,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "Database file (default from config data_dir)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (default from config)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress confirmation output")

	registerListFlags(rootCmd)
}

// app bundles everything a command needs once config, logging and storage
// are wired.
type app struct {
	cfg    config.Config
	log    *logrus.Logger
	store  *store.Store
	ledger *ledger.Ledger
}

// openApp is the shared startup path used by all data commands.
func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	level := cfg.Log.Level
	if flagLogLevel != "" {
		level = flagLogLevel
	}
	logger, err := logging.Setup(level, cfg.Log.Format, os.Stderr)
	if err != nil {
		return nil, err
	}

	dbPath := flagDB
	if dbPath == "" {
		dbPath = config.DBPath(cfg)
	}
	logger.WithField("db", dbPath).Debug("App.Open")

	st, err := store.Open(dbPath)
	if err != nil {
		return nil, err
	}

	l, err := ledger.Open(ctx, st, ledger.WithLogger(logger))
	if err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("loading goals: %w", err)
	}

	return &app{cfg: cfg, log: logger, store: st, ledger: l}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.log.WithError(err).Warn("App.Close.Error")
	}
}

// resolveGoal finds a goal by full id or unique id prefix.
func resolveGoal(l *ledger.Ledger, idOrPrefix string) (model.SavingsGoal, error) {
	g, err := l.Find(idOrPrefix)
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return g, fmt.Errorf("no goal matches %q (run `savr list` to see ids)", idOrPrefix)
	case errors.Is(err, apperrors.ErrAmbiguous):
		return g, fmt.Errorf("%q matches more than one goal, use a longer id", idOrPrefix)
	}
	return g, err
}

// info prints a confirmation line to stderr unless --quiet is set.
func info(format string, args ...interface{}) {
	if flagQuiet {
		return
	}
	fmt.Fprintf(os.Stderr, "  "+format+"\n", args...)
}

func isInteractive() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

// parseAmount parses a positive money amount. Thousands separators and a
// leading currency symbol are ignored.
func parseAmount(s string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimPrefix(clean, "$")
	clean = strings.TrimPrefix(clean, "Rp")
	clean = strings.ReplaceAll(strings.TrimSpace(clean), ",", "")

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}
	return d, nil
}

const dateLayout = "2006-01-02"

// parseDate parses a YYYY-MM-DD date as local midnight.
func parseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return t, nil
}
