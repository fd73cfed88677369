package progress

import (
	"sort"
	"strings"
	"time"

	"github.com/theirongolddev/savr/internal/model"

	"github.com/shopspring/decimal"
)

// Summarize aggregates goals per currency. Amounts held in different
// currencies are never added together. Results are ordered by currency code.
func Summarize(goals []model.SavingsGoal, now time.Time) []model.CurrencySummary {
	byCurrency := make(map[model.Currency]*model.CurrencySummary)

	for _, g := range goals {
		cur := g.Currency.OrDefault()
		s, ok := byCurrency[cur]
		if !ok {
			s = &model.CurrencySummary{
				Currency:    cur,
				TotalSaved:  decimal.Zero,
				TotalTarget: decimal.Zero,
			}
			byCurrency[cur] = s
		}

		p := Calculate(g, now)
		s.Goals++
		s.TotalSaved = s.TotalSaved.Add(g.CurrentAmount)
		s.TotalTarget = s.TotalTarget.Add(g.TargetAmount)
		switch {
		case g.IsComplete():
			s.Completed++
		case p.DaysRemaining == 0:
			s.Overdue++
		}
		if p.IsOnTrack {
			s.OnTrack++
		}
	}

	result := make([]model.CurrencySummary, 0, len(byCurrency))
	for _, s := range byCurrency {
		s.ProgressPercentage = hundred
		if s.TotalTarget.IsPositive() {
			s.ProgressPercentage = percentOf(s.TotalSaved, s.TotalTarget)
		}
		result = append(result, *s)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Currency < result[j].Currency
	})
	return result
}

// FilterByName returns goals whose name contains query, ignoring case.
func FilterByName(goals []model.SavingsGoal, query string) []model.SavingsGoal {
	if query == "" {
		return goals
	}
	var result []model.SavingsGoal
	for _, g := range goals {
		if strings.Contains(strings.ToLower(g.Name), strings.ToLower(query)) {
			result = append(result, g)
		}
	}
	return result
}

// FilterByCurrency returns goals held in cur. An empty cur matches everything.
func FilterByCurrency(goals []model.SavingsGoal, cur model.Currency) []model.SavingsGoal {
	if cur == "" {
		return goals
	}
	var result []model.SavingsGoal
	for _, g := range goals {
		if g.Currency.OrDefault() == cur {
			result = append(result, g)
		}
	}
	return result
}
