package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/savr/internal/cli"
	"github.com/theirongolddev/savr/internal/model"
	"github.com/theirongolddev/savr/internal/progress"
	"github.com/theirongolddev/savr/internal/tui/components"
	"github.com/theirongolddev/savr/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// renderGoalList renders the scrollable goal list with the cursor row
// highlighted. Each goal takes two lines: name and a compact bar.
func (a App) renderGoalList(w, h int) string {
	t := theme.Active
	now := a.now()
	innerW := components.CardInnerWidth(w)

	nameStyle := lipgloss.NewStyle().Foreground(t.Text)
	selStyle := lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	// Two lines per goal plus one spacer; keep the cursor in view.
	perGoal := 3
	visible := (h - 3) / perGoal
	if visible < 1 {
		visible = 1
	}
	offset := 0
	if a.cursor >= visible {
		offset = a.cursor - visible + 1
	}
	end := offset + visible
	if end > len(a.goals) {
		end = len(a.goals)
	}

	var b strings.Builder
	for i := offset; i < end; i++ {
		g := a.goals[i]
		p := progress.Calculate(g, now)

		marker := "  "
		style := nameStyle
		if i == a.cursor {
			marker = "▸ "
			style = selStyle
		}
		b.WriteString(style.Render(marker + truncStr(g.Name, innerW-2)))
		b.WriteString("\n  ")
		b.WriteString(components.GoalBar(p, g.IsComplete(), innerW-2))
		if i < end-1 {
			b.WriteString("\n\n")
		}
	}
	if end < len(a.goals) {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render(fmt.Sprintf("  +%d more", len(a.goals)-end)))
	}

	return components.ContentCard(fmt.Sprintf("Goals (%d)", len(a.goals)), b.String(), w)
}

// renderGoalDetail renders the selected goal's metrics and its
// transactions newest first.
func (a App) renderGoalDetail(g model.SavingsGoal, w, h int) string {
	t := theme.Active
	p := progress.Calculate(g, a.now())
	cur := g.Currency.OrDefault()
	innerW := components.CardInnerWidth(w)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(t.Text)

	var statusStyle lipgloss.Style
	switch {
	case g.IsComplete():
		statusStyle = lipgloss.NewStyle().Foreground(t.Success).Bold(true)
	case p.IsOnTrack:
		statusStyle = lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	default:
		statusStyle = lipgloss.NewStyle().Foreground(t.Warning).Bold(true)
	}

	var head strings.Builder
	head.WriteString(components.GoalBar(p, g.IsComplete(), innerW))
	head.WriteString("\n")
	head.WriteString(components.ExpectedMarker(p, innerW))
	head.WriteString("\n\n")
	head.WriteString(labelStyle.Render("Status  "))
	head.WriteString(statusStyle.Render(cli.FormatStatus(p, g.IsComplete())))
	head.WriteString("\n")
	head.WriteString(labelStyle.Render("Target  "))
	head.WriteString(valueStyle.Render(fmt.Sprintf("%s by %s",
		cli.FormatMoney(g.TargetAmount, cur), cli.FormatDate(g.TargetDate))))
	if g.ImageURI != "" {
		head.WriteString("\n")
		head.WriteString(labelStyle.Render("Image   "))
		head.WriteString(valueStyle.Render(truncStr(g.ImageURI, innerW-8)))
	}
	headCard := components.ContentCard(truncStr(g.Name, innerW), head.String(), w)

	amounts := components.MetricCardRow([]components.Metric{
		{Label: "Saved", Value: cli.FormatMoney(g.CurrentAmount, cur)},
		{Label: "Remaining", Value: cli.FormatMoney(p.RemainingAmount, cur)},
		{Label: "Days left", Value: cli.FormatDaysLeft(p.DaysRemaining)},
	}, w)

	rates := components.MetricCardRow([]components.Metric{
		{Label: "Per day", Value: cli.FormatMoney(p.RequiredPerDay, cur)},
		{Label: "Per week", Value: cli.FormatMoney(p.RequiredPerWeek, cur)},
		{Label: "Per month", Value: cli.FormatMoney(p.RequiredPerMonth, cur)},
	}, w)

	top := lipgloss.JoinVertical(lipgloss.Left, headCard, amounts, rates)

	remaining := h - lipgloss.Height(top) - 3 // card border and title
	txns := a.renderTransactions(g, innerW, remaining)

	return lipgloss.JoinVertical(lipgloss.Left, top,
		components.ContentCard(fmt.Sprintf("Transactions (%d)", len(g.Transactions)), txns, w))
}

func (a App) renderTransactions(g model.SavingsGoal, w, maxLines int) string {
	t := theme.Active
	cur := g.Currency.OrDefault()

	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	depStyle := lipgloss.NewStyle().Foreground(t.Success)
	wdStyle := lipgloss.NewStyle().Foreground(t.Error)
	descStyle := lipgloss.NewStyle().Foreground(t.Text)

	if len(g.Transactions) == 0 {
		return mutedStyle.Render("No transactions yet")
	}
	if maxLines < 1 {
		maxLines = 1
	}

	recent := g.RecentTransactions()
	shown := recent
	if len(shown) > maxLines {
		shown = shown[:maxLines-1]
	}

	lines := make([]string, 0, len(shown)+1)
	for _, txn := range shown {
		amount := cli.FormatSignedMoney(txn, cur)
		style := depStyle
		if txn.Type == model.Withdrawal {
			style = wdStyle
		}
		date := cli.FormatDate(txn.Date)
		descW := w - lipgloss.Width(amount) - lipgloss.Width(date) - 4
		lines = append(lines, fmt.Sprintf("%s  %s  %s",
			mutedStyle.Render(date),
			style.Render(amount),
			descStyle.Render(truncStr(txn.Description, descW))))
	}
	if len(shown) < len(recent) {
		lines = append(lines, mutedStyle.Render(fmt.Sprintf("… %d older", len(recent)-len(shown))))
	}
	return strings.Join(lines, "\n")
}
