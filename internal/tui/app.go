// Package tui provides the interactive Bubble Tea dashboard for savr.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/savr/internal/ledger"
	"github.com/theirongolddev/savr/internal/model"
	"github.com/theirongolddev/savr/internal/tui/components"
	"github.com/theirongolddev/savr/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ThemeSaver persists the theme preference.
type ThemeSaver interface {
	SaveThemeMode(ctx context.Context, mode model.ThemeMode) error
}

// Options configures a new App.
type Options struct {
	ThemeMode model.ThemeMode
	ShowHints bool
	Now       func() time.Time
}

// ledgerEventMsg is sent for every committed ledger mutation.
type ledgerEventMsg struct {
	Event ledger.Event
}

// eventsClosedMsg is sent once the ledger subscription has been cancelled.
type eventsClosedMsg struct{}

// goalDeletedMsg reports the outcome of a delete started from the dashboard.
type goalDeletedMsg struct {
	Name string
	Err  error
}

// themeSavedMsg reports the outcome of persisting a theme change.
type themeSavedMsg struct {
	Mode model.ThemeMode
	Err  error
}

// App is the root Bubble Tea model.
type App struct {
	ledger *ledger.Ledger
	prefs  ThemeSaver
	now    func() time.Time

	events <-chan ledger.Event
	cancel func()

	// Data
	goals    []model.SavingsGoal
	revision int64

	// UI state
	width         int
	height        int
	cursor        int
	showHelp      bool
	showHints     bool
	confirmDelete bool
	themeMode     model.ThemeMode
	status        string
}

const (
	minTerminalWidth = 60
	maxContentWidth  = 160
	listWidthRatio   = 3 // list takes 1/listWidthRatio of the content width
	minListWidth     = 24
)

// NewApp creates a dashboard over l. It subscribes to ledger events
// immediately so no mutation between construction and Init is missed.
func NewApp(l *ledger.Ledger, prefs ThemeSaver, opts Options) App {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if !opts.ThemeMode.Valid() {
		opts.ThemeMode = model.DefaultThemeMode
	}
	theme.SetActive(opts.ThemeMode)

	events, cancel := l.Subscribe()
	a := App{
		ledger:    l,
		prefs:     prefs,
		now:       opts.Now,
		events:    events,
		cancel:    cancel,
		showHints: opts.ShowHints,
		themeMode: opts.ThemeMode,
	}
	a.reload()
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		waitForEvent(a.events),
	)
}

// Close cancels the ledger subscription.
func (a App) Close() {
	if a.cancel != nil {
		a.cancel()
	}
}

func (a *App) reload() {
	var selected string
	if a.cursor >= 0 && a.cursor < len(a.goals) {
		selected = a.goals[a.cursor].ID
	}

	a.goals = a.ledger.Goals()
	a.revision = a.ledger.Revision()

	// Keep the selection on the same goal when it still exists.
	for i, g := range a.goals {
		if g.ID == selected {
			a.cursor = i
			return
		}
	}
	if a.cursor >= len(a.goals) {
		a.cursor = len(a.goals) - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

func (a App) selected() (model.SavingsGoal, bool) {
	if a.cursor < 0 || a.cursor >= len(a.goals) {
		return model.SavingsGoal{}, false
	}
	return a.goals[a.cursor], true
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.MouseMsg:
		if a.showHelp || a.confirmDelete {
			return a, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			a.moveCursor(-1)
		case tea.MouseButtonWheelDown:
			a.moveCursor(1)
		}
		return a, nil

	case tea.KeyMsg:
		return a.updateKey(msg)

	case ledgerEventMsg:
		a.reload()
		return a, waitForEvent(a.events)

	case eventsClosedMsg:
		return a, nil

	case goalDeletedMsg:
		if msg.Err != nil {
			a.status = "Delete failed: " + msg.Err.Error()
		} else {
			a.status = fmt.Sprintf("Deleted %q", msg.Name)
		}
		return a, nil

	case themeSavedMsg:
		if msg.Err != nil {
			a.status = "Theme not saved: " + msg.Err.Error()
		} else {
			a.status = "Theme: " + string(msg.Mode)
		}
		return a, nil
	}

	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// Global: quit
	if key == "ctrl+c" {
		a.Close()
		return a, tea.Quit
	}

	// Delete confirmation intercepts all keys
	if a.confirmDelete {
		a.confirmDelete = false
		g, ok := a.selected()
		if ok && (key == "y" || key == "Y") {
			return a, deleteGoalCmd(a.ledger, g)
		}
		a.status = "Delete cancelled"
		return a, nil
	}

	// Help toggle
	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}

	// Dismiss help
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch key {
	case "q":
		a.Close()
		return a, tea.Quit
	case "j", "down":
		a.moveCursor(1)
	case "k", "up":
		a.moveCursor(-1)
	case "g", "home":
		a.cursor = 0
	case "G", "end":
		a.cursor = len(a.goals) - 1
		if a.cursor < 0 {
			a.cursor = 0
		}
	case "t":
		a.themeMode = a.themeMode.Next()
		theme.SetActive(a.themeMode)
		return a, saveThemeCmd(a.prefs, a.themeMode)
	case "d", "delete":
		if _, ok := a.selected(); ok {
			a.confirmDelete = true
			a.status = ""
		}
	}
	return a, nil
}

func (a *App) moveCursor(delta int) {
	a.cursor += delta
	if a.cursor >= len(a.goals) {
		a.cursor = len(a.goals) - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  savr needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewHelp() string {
	t := theme.Active
	h := a.height
	w := a.width

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.Primary).
		Bold(true)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Secondary).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(t.TextSecondary)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")

	bindings := []struct{ key, desc string }{
		{"j k", "Select goal"},
		{"g G", "First / last goal"},
		{"t", "Cycle theme (light, dark, system)"},
		{"d", "Delete selected goal"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
	for _, bind := range bindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-6s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Add goals and record deposits with the savr CLI."))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, card)
}

func (a App) viewMain() string {
	t := theme.Active
	cw := a.contentWidth()

	headerStyle := lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	modeStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	title := headerStyle.Render(" savr") + modeStyle.Render(fmt.Sprintf("  %d goals", len(a.goals)))
	mode := modeStyle.Render(fmt.Sprintf("theme: %s ", a.themeMode))
	gap := cw - lipgloss.Width(title) - lipgloss.Width(mode)
	if gap < 1 {
		gap = 1
	}
	header := title + strings.Repeat(" ", gap) + mode

	bodyH := a.height - 3 // header, blank line, status bar
	if bodyH < 5 {
		bodyH = 5
	}

	var body string
	if len(a.goals) == 0 {
		body = a.viewEmpty(cw, bodyH)
	} else {
		listW := cw / listWidthRatio
		if listW < minListWidth {
			listW = minListWidth
		}
		detailW := cw - listW

		list := a.renderGoalList(listW, bodyH)
		g, _ := a.selected()
		detail := a.renderGoalDetail(g, detailW, bodyH)
		body = lipgloss.JoinHorizontal(lipgloss.Top, list, detail)
	}

	return header + "\n\n" +
		padHeight(truncateHeight(body, bodyH), bodyH) + "\n" +
		a.renderStatusBar(cw)
}

func (a App) viewEmpty(w, h int) string {
	t := theme.Active
	msg := lipgloss.NewStyle().Foreground(t.TextSecondary).Render(
		"No savings goals yet.\n\nCreate one with `savr add`.")
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, msg)
}

func (a App) renderStatusBar(w int) string {
	t := theme.Active

	if a.confirmDelete {
		g, _ := a.selected()
		warn := lipgloss.NewStyle().Foreground(t.Error).Bold(true).Render(
			fmt.Sprintf(" Delete %q and all its transactions? (y/n)", truncStr(g.Name, 30)))
		return lipgloss.NewStyle().Width(w).Render(warn)
	}

	hints := ""
	if a.showHints {
		hints = "[j/k]select  [t]heme  [d]elete  [?]help  [q]uit"
	}
	return components.RenderStatusBar(w, hints, a.status)
}

// waitForEvent blocks until the ledger publishes or the subscription closes.
func waitForEvent(events <-chan ledger.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return eventsClosedMsg{}
		}
		return ledgerEventMsg{Event: ev}
	}
}

func deleteGoalCmd(l *ledger.Ledger, g model.SavingsGoal) tea.Cmd {
	return func() tea.Msg {
		err := l.DeleteGoal(context.Background(), g.ID)
		return goalDeletedMsg{Name: g.Name, Err: err}
	}
}

func saveThemeCmd(prefs ThemeSaver, mode model.ThemeMode) tea.Cmd {
	return func() tea.Msg {
		if prefs == nil {
			return themeSavedMsg{Mode: mode}
		}
		return themeSavedMsg{Mode: mode, Err: prefs.SaveThemeMode(context.Background(), mode)}
	}
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	padding := strings.Repeat("\n", h-len(lines))
	return s + padding
}
