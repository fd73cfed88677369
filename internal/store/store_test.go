package store_test

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/theirongolddev/savr/internal/ledger"
	"github.com/theirongolddev/savr/internal/model"
	"github.com/theirongolddev/savr/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ledger.Storage = (*store.Store)(nil)

func openTemp(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "nested", "savr.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func requireGoalsEqual(t *testing.T, want, got []model.SavingsGoal) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		w, g := want[i], got[i]
		assert.Equal(t, w.ID, g.ID)
		assert.Equal(t, w.Name, g.Name)
		assert.Truef(t, w.TargetAmount.Equal(g.TargetAmount), "TargetAmount %s != %s", w.TargetAmount, g.TargetAmount)
		assert.Truef(t, w.CurrentAmount.Equal(g.CurrentAmount), "CurrentAmount %s != %s", w.CurrentAmount, g.CurrentAmount)
		assert.True(t, w.TargetDate.Equal(g.TargetDate))
		assert.True(t, w.CreatedAt.Equal(g.CreatedAt))
		assert.Equal(t, w.Currency, g.Currency)
		assert.Equal(t, w.ImageURI, g.ImageURI)
		require.Len(t, g.Transactions, len(w.Transactions))
		for j := range w.Transactions {
			wt, gt := w.Transactions[j], g.Transactions[j]
			assert.Equal(t, wt.ID, gt.ID)
			assert.Equal(t, wt.GoalID, gt.GoalID)
			assert.True(t, wt.Amount.Equal(gt.Amount))
			assert.Equal(t, wt.Type, gt.Type)
			assert.Equal(t, wt.Description, gt.Description)
			assert.True(t, wt.Date.Equal(gt.Date))
		}
	}
}

func sampleGoals() []model.SavingsGoal {
	created := time.Date(2025, 1, 1, 10, 0, 0, 123456789, time.UTC)
	return []model.SavingsGoal{
		{
			ID:            "g1",
			Name:          "Emergency fund",
			TargetAmount:  decimal.RequireFromString("5000"),
			CurrentAmount: decimal.RequireFromString("120.55"),
			TargetDate:    created.AddDate(1, 0, 0),
			Currency:      model.USD,
			ImageURI:      "file:///photos/umbrella.jpg",
			CreatedAt:     created,
			Transactions: []model.Transaction{
				{ID: "t1", GoalID: "g1", Amount: decimal.RequireFromString("150.55"), Type: model.Deposit, Description: "paycheck", Date: created.Add(time.Hour)},
				{ID: "t2", GoalID: "g1", Amount: decimal.RequireFromString("30"), Type: model.Withdrawal, Description: "repair", Date: created.Add(2 * time.Hour)},
			},
		},
		{
			ID:            "g2",
			Name:          "Mudik",
			TargetAmount:  decimal.RequireFromString("3000000"),
			CurrentAmount: decimal.Zero,
			TargetDate:    created.AddDate(0, 6, 0),
			Currency:      model.IDR,
			CreatedAt:     created,
			Transactions:  []model.Transaction{},
		},
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	goals := sampleGoals()

	require.NoError(t, s.SaveDocument(ctx, goals))
	got, err := s.LoadDocument(ctx)
	require.NoError(t, err)

	requireGoalsEqual(t, goals, got)
}

func TestLoadDocument_Missing(t *testing.T) {
	s := openTemp(t)

	got, err := s.LoadDocument(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestLoadDocument_Corrupt(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, store.GoalsKey, "{not json"))

	got, err := s.LoadDocument(ctx)
	assert.Error(t, err)
	assert.Empty(t, got)
}

func TestLoadDocument_NumericAmounts(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	raw := `[{"id":"1718000000000","name":"Trip","targetAmount":500,"currentAmount":120.5,
		"targetDate":"2025-12-31T00:00:00.000Z","currency":"USD","createdAt":"2025-01-01T10:00:00.000Z",
		"transactions":[{"id":"1718000000001","goalId":"1718000000000","amount":120.5,"type":"deposit",
		"description":"first","date":"2025-01-02T10:00:00.000Z"}]}]`
	require.NoError(t, s.Set(ctx, store.GoalsKey, raw))

	got, err := s.LoadDocument(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].CurrentAmount.Equal(decimal.RequireFromString("120.5")))
	assert.Equal(t, model.Deposit, got[0].Transactions[0].Type)
	assert.Equal(t, 2025, got[0].TargetDate.Year())
}

func TestLedgerOverStore_DeleteLeavesNoOrphans(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	require.NoError(t, s.SaveDocument(ctx, sampleGoals()))

	l, err := ledger.Open(ctx, s)
	require.NoError(t, err)
	require.NoError(t, l.DeleteGoal(ctx, "g1"))

	got, err := s.LoadDocument(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "g2", got[0].ID)

	var raw []map[string]json.RawMessage
	doc, _, err := s.Get(ctx, store.GoalsKey)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(doc), &raw))
	assert.NotContains(t, doc, `"goalId":"g1"`)
}

func TestExportDocument(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	var empty bytes.Buffer
	require.NoError(t, s.ExportDocument(ctx, &empty))
	assert.Equal(t, "[]\n", empty.String())

	require.NoError(t, s.SaveDocument(ctx, sampleGoals()))
	var buf bytes.Buffer
	require.NoError(t, s.ExportDocument(ctx, &buf))
	assert.Contains(t, buf.String(), `"name": "Emergency fund"`)
}

func TestThemeMode(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	mode, err := s.LoadThemeMode(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.ThemeSystem, mode)

	require.NoError(t, s.SaveThemeMode(ctx, model.ThemeDark))
	mode, err = s.LoadThemeMode(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.ThemeDark, mode)

	assert.Error(t, s.SaveThemeMode(ctx, "sepia"))

	require.NoError(t, s.Set(ctx, store.ThemeKey, "sepia"))
	mode, err = s.LoadThemeMode(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.ThemeSystem, mode)
}

func TestKeyValue(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "k", "v1"))
	require.NoError(t, s.Set(ctx, "k", "v2"))
	v, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v2", v)

	at, ok, err := s.UpdatedAt(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.WithinDuration(t, time.Now(), at, time.Minute)

	require.NoError(t, s.Delete(ctx, "k"))
	require.NoError(t, s.Delete(ctx, "k"))
	_, ok, err = s.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}
