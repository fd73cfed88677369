package model

import "github.com/shopspring/decimal"

// Progress holds the derived metrics for one goal at one instant.
// It is computed on demand and never persisted.
type Progress struct {
	RemainingAmount    decimal.Decimal
	ProgressPercentage decimal.Decimal // 0..100
	ExpectedPercentage decimal.Decimal // share of the goal's time horizon already elapsed
	DaysRemaining      int
	RequiredPerDay     decimal.Decimal
	RequiredPerWeek    decimal.Decimal
	RequiredPerMonth   decimal.Decimal
	IsOnTrack          bool

	// Degenerate is non-nil when a sentinel replaced an undefined term.
	Degenerate error
}

// CurrencySummary aggregates all goals held in one currency.
type CurrencySummary struct {
	Currency           Currency
	Goals              int
	Completed          int
	OnTrack            int
	Overdue            int
	TotalSaved         decimal.Decimal
	TotalTarget        decimal.Decimal
	ProgressPercentage decimal.Decimal
}
