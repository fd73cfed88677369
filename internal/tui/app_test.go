package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/savr/internal/ledger"
	"github.com/theirongolddev/savr/internal/model"
	"github.com/theirongolddev/savr/internal/store"
	"github.com/theirongolddev/savr/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestApp(t *testing.T, goals ...string) (App, *ledger.Ledger, *store.Store) {
	t.Helper()

	orig := theme.HasDarkBackground
	theme.HasDarkBackground = func() bool { return true }
	t.Cleanup(func() { theme.HasDarkBackground = orig })

	s, err := store.Open(filepath.Join(t.TempDir(), "savr.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	ctx := context.Background()
	l, err := ledger.Open(ctx, s, ledger.WithClock(func() time.Time { return testNow }))
	require.NoError(t, err)

	for _, name := range goals {
		g, err := l.AddGoal(ctx, model.GoalDraft{
			Name:         name,
			TargetAmount: decimal.NewFromInt(1000),
			TargetDate:   testNow.AddDate(0, 6, 0),
			Currency:     model.USD,
		})
		require.NoError(t, err)
		_, err = l.AddTransaction(ctx, g.ID, model.TransactionDraft{
			Amount:      decimal.NewFromInt(250),
			Type:        model.Deposit,
			Description: "first paycheck",
		})
		require.NoError(t, err)
	}

	a := NewApp(l, s, Options{
		ThemeMode: model.ThemeDark,
		ShowHints: true,
		Now:       func() time.Time { return testNow },
	})
	t.Cleanup(a.Close)

	m, _ := a.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m.(App), l, s
}

func update(t *testing.T, a App, msg tea.Msg) (App, tea.Cmd) {
	t.Helper()
	m, cmd := a.Update(msg)
	next, ok := m.(App)
	require.True(t, ok)
	return next, cmd
}

func TestCursorClampsToGoals(t *testing.T) {
	a, _, _ := newTestApp(t, "Vacation", "Laptop")
	require.Len(t, a.goals, 2)

	a, _ = update(t, a, key("k"))
	assert.Equal(t, 0, a.cursor)

	a, _ = update(t, a, key("j"))
	a, _ = update(t, a, key("j"))
	assert.Equal(t, 1, a.cursor)

	a, _ = update(t, a, key("g"))
	assert.Equal(t, 0, a.cursor)

	a, _ = update(t, a, tea.MouseMsg{Button: tea.MouseButtonWheelDown})
	assert.Equal(t, 1, a.cursor)
}

func TestThemeCyclePersists(t *testing.T) {
	a, _, s := newTestApp(t, "Vacation")

	a, cmd := update(t, a, key("t"))
	assert.Equal(t, model.ThemeSystem, a.themeMode)
	require.NotNil(t, cmd)

	msg := cmd()
	saved, ok := msg.(themeSavedMsg)
	require.True(t, ok)
	require.NoError(t, saved.Err)

	mode, err := s.LoadThemeMode(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.ThemeSystem, mode)

	a, _ = update(t, a, msg)
	assert.Contains(t, a.status, "system")

	a, _ = update(t, a, key("t"))
	assert.Equal(t, model.ThemeLight, a.themeMode)
	assert.Equal(t, "light", theme.Active.Name)
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	a, l, _ := newTestApp(t, "Vacation", "Laptop")

	a, cmd := update(t, a, key("d"))
	assert.True(t, a.confirmDelete)
	assert.Nil(t, cmd)
	assert.Contains(t, a.View(), "Delete")

	a, cmd = update(t, a, key("n"))
	assert.False(t, a.confirmDelete)
	assert.Nil(t, cmd)
	assert.Len(t, l.Goals(), 2)

	a, _ = update(t, a, key("d"))
	a, cmd = update(t, a, key("y"))
	require.NotNil(t, cmd)

	msg := cmd()
	deleted, ok := msg.(goalDeletedMsg)
	require.True(t, ok)
	require.NoError(t, deleted.Err)
	assert.Equal(t, "Vacation", deleted.Name)
	assert.Len(t, l.Goals(), 1)

	// The ledger event drives the reload.
	ev := waitForEvent(a.events)()
	require.IsType(t, ledgerEventMsg{}, ev)
	assert.Equal(t, ledger.EventGoalDeleted, ev.(ledgerEventMsg).Event.Type)

	a, _ = update(t, a, ev)
	require.Len(t, a.goals, 1)
	assert.Equal(t, "Laptop", a.goals[0].Name)
	assert.Equal(t, 0, a.cursor)
}

func TestReloadKeepsSelection(t *testing.T) {
	a, l, _ := newTestApp(t, "Vacation", "Laptop")
	a, _ = update(t, a, key("j"))
	selected := a.goals[a.cursor].ID

	_, err := l.AddGoal(context.Background(), model.GoalDraft{
		Name:         "Car",
		TargetAmount: decimal.NewFromInt(9000),
		TargetDate:   testNow.AddDate(2, 0, 0),
	})
	require.NoError(t, err)

	// Drain events up to the new goal.
	var msg tea.Msg
	for i := 0; i < 10; i++ {
		msg = waitForEvent(a.events)()
		if m, ok := msg.(ledgerEventMsg); ok && m.Event.Revision == l.Revision() {
			break
		}
	}
	a, _ = update(t, a, msg)

	assert.Len(t, a.goals, 3)
	assert.Equal(t, selected, a.goals[a.cursor].ID)
}

func TestViewShowsSelectedGoal(t *testing.T) {
	a, _, _ := newTestApp(t, "Vacation")

	view := a.View()
	assert.Contains(t, view, "Vacation")
	assert.Contains(t, view, "$250.00")
	assert.Contains(t, view, "first paycheck")
	assert.Contains(t, view, "25%")

	a, _ = update(t, a, key("?"))
	assert.Contains(t, a.View(), "Keyboard Shortcuts")
	a, _ = update(t, a, key("x"))
	assert.False(t, a.showHelp)
}

func TestViewEmptyAndNarrow(t *testing.T) {
	a, _, _ := newTestApp(t)
	assert.Contains(t, a.View(), "No savings goals yet")

	a, _ = update(t, a, tea.WindowSizeMsg{Width: 40, Height: 20})
	assert.True(t, strings.Contains(a.View(), "too narrow"))
}

func TestQuitClosesSubscription(t *testing.T) {
	a, _, _ := newTestApp(t, "Vacation")

	_, cmd := update(t, a, key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.IsType(t, eventsClosedMsg{}, waitForEvent(a.events)())
}
