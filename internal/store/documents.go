package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/theirongolddev/savr/internal/model"
)

const (
	// GoalsKey holds the JSON array of goals with embedded transactions.
	GoalsKey = "savings_goals"
	// ThemeKey holds the theme preference as a plain string.
	ThemeKey = "app_theme_mode"
)

// LoadDocument returns every stored goal. A missing document yields an empty
// slice; an unreadable one yields an empty slice and an error.
func (s *Store) LoadDocument(ctx context.Context) ([]model.SavingsGoal, error) {
	raw, ok, err := s.Get(ctx, GoalsKey)
	if err != nil {
		return []model.SavingsGoal{}, err
	}
	if !ok || raw == "" {
		return []model.SavingsGoal{}, nil
	}

	var goals []model.SavingsGoal
	if err := json.Unmarshal([]byte(raw), &goals); err != nil {
		return []model.SavingsGoal{}, fmt.Errorf("decoding goals document: %w", err)
	}
	for i := range goals {
		if goals[i].Transactions == nil {
			goals[i].Transactions = []model.Transaction{}
		}
	}
	if goals == nil {
		goals = []model.SavingsGoal{}
	}
	return goals, nil
}

// SaveDocument replaces the stored goals document.
func (s *Store) SaveDocument(ctx context.Context, goals []model.SavingsGoal) error {
	if goals == nil {
		goals = []model.SavingsGoal{}
	}
	data, err := json.Marshal(goals)
	if err != nil {
		return fmt.Errorf("encoding goals document: %w", err)
	}
	return s.Set(ctx, GoalsKey, string(data))
}

// ExportDocument writes the stored goals document to w as indented JSON.
func (s *Store) ExportDocument(ctx context.Context, w io.Writer) error {
	raw, ok, err := s.Get(ctx, GoalsKey)
	if err != nil {
		return err
	}
	if !ok || raw == "" {
		raw = "[]"
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(raw), "", "  "); err != nil {
		return fmt.Errorf("formatting goals document: %w", err)
	}
	buf.WriteByte('\n')
	_, err = buf.WriteTo(w)
	return err
}

// LoadThemeMode returns the stored theme preference, or the default when
// none is stored or the stored value is not recognized.
func (s *Store) LoadThemeMode(ctx context.Context) (model.ThemeMode, error) {
	raw, ok, err := s.Get(ctx, ThemeKey)
	if err != nil {
		return model.DefaultThemeMode, err
	}
	mode := model.ThemeMode(raw)
	if !ok || !mode.Valid() {
		return model.DefaultThemeMode, nil
	}
	return mode, nil
}

// SaveThemeMode stores the theme preference.
func (s *Store) SaveThemeMode(ctx context.Context, mode model.ThemeMode) error {
	if !mode.Valid() {
		return fmt.Errorf("unknown theme mode %q", mode)
	}
	return s.Set(ctx, ThemeKey, string(mode))
}

// DocumentUpdatedAt returns when the goals document was last written.
func (s *Store) DocumentUpdatedAt(ctx context.Context) (time.Time, bool, error) {
	return s.UpdatedAt(ctx, GoalsKey)
}
