// Package progress computes read-only savings metrics from goal snapshots.
package progress

import (
	"errors"
	"time"

	"github.com/theirongolddev/savr/internal/apperrors"
	"github.com/theirongolddev/savr/internal/model"

	"github.com/shopspring/decimal"
)

const day = 24 * time.Hour

var (
	hundred     = decimal.NewFromInt(100)
	daysPerWeek = decimal.NewFromInt(7)
	// Monthly rate is a flat 30-day scaling, not calendar-accurate.
	daysPerMonth = decimal.NewFromInt(30)
)

// Calculate derives the metrics for g as of now. It has no side effects and
// returns identical output for identical input.
//
// A non-positive target amount reports 100% complete with nothing remaining,
// and a target date that is not after creation treats the whole horizon as
// elapsed. Both cases set Progress.Degenerate.
func Calculate(g model.SavingsGoal, now time.Time) model.Progress {
	p := model.Progress{
		RemainingAmount:    decimal.Zero,
		ProgressPercentage: hundred,
		ExpectedPercentage: hundred,
		RequiredPerDay:     decimal.Zero,
		Degenerate:         Check(g),
	}

	if g.TargetAmount.IsPositive() {
		p.RemainingAmount = decimal.Max(decimal.Zero, g.TargetAmount.Sub(g.CurrentAmount))
		p.ProgressPercentage = percentOf(g.CurrentAmount, g.TargetAmount)
	}

	p.DaysRemaining = DaysUntil(now, g.TargetDate)
	if p.DaysRemaining > 0 {
		p.RequiredPerDay = p.RemainingAmount.Div(decimal.NewFromInt(int64(p.DaysRemaining)))
	}
	p.RequiredPerWeek = p.RequiredPerDay.Mul(daysPerWeek)
	p.RequiredPerMonth = p.RequiredPerDay.Mul(daysPerMonth)

	if horizon := g.TargetDate.Sub(g.CreatedAt); horizon > 0 {
		elapsed := now.Sub(g.CreatedAt)
		p.ExpectedPercentage = decimal.NewFromInt(int64(elapsed)).
			Mul(hundred).
			Div(decimal.NewFromInt(int64(horizon)))
	}
	p.IsOnTrack = p.ProgressPercentage.GreaterThanOrEqual(p.ExpectedPercentage)

	return p
}

// Check reports the degenerate conditions of g, or nil when every progress
// term is well defined. Matches apperrors.ErrDegenerate.
func Check(g model.SavingsGoal) error {
	var errs []error
	if !g.TargetAmount.IsPositive() {
		errs = append(errs, apperrors.ErrZeroTarget)
	}
	if !g.TargetDate.After(g.CreatedAt) {
		errs = append(errs, apperrors.ErrZeroHorizon)
	}
	return errors.Join(errs...)
}

// DaysUntil returns the whole days from now until target, rounding partial
// days up. Past targets return 0.
func DaysUntil(now, target time.Time) int {
	diff := target.Sub(now)
	if diff <= 0 {
		return 0
	}
	days := diff / day
	if diff%day != 0 {
		days++
	}
	return int(days)
}

// percentOf returns part/whole*100 capped at 100. whole must be positive.
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	return decimal.Min(hundred, part.Mul(hundred).Div(whole))
}
