// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"time"

	"github.com/theirongolddev/savr/internal/model"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// moneyFormats are go-humanize FormatFloat directives per currency.
var moneyFormats = map[model.Currency]string{
	model.USD: "#,###.##",
	model.IDR: "#.###,",
}

// FormatMoney formats an amount in the given currency.
// e.g., (1234.5, USD) -> "$1,234.50", (1234567, IDR) -> "Rp 1.234.567"
func FormatMoney(amount decimal.Decimal, currency model.Currency) string {
	if amount.IsNegative() {
		return "-" + FormatMoney(amount.Neg(), currency)
	}

	info := currency.OrDefault().Info()
	format, ok := moneyFormats[info.Code]
	if !ok {
		format = moneyFormats[model.USD]
	}

	n := humanize.FormatFloat(format, amount.Round(int32(info.Precision)).InexactFloat64())
	if info.Code == model.IDR {
		return info.Symbol + " " + n
	}
	return info.Symbol + n
}

// FormatSignedMoney formats a transaction amount with a leading + or -.
func FormatSignedMoney(t model.Transaction, currency model.Currency) string {
	sign := "+"
	if t.Type == model.Withdrawal {
		sign = "-"
	}
	return sign + FormatMoney(t.Amount, currency)
}

// FormatPercent formats a 0-100 percentage rounded to a whole number.
func FormatPercent(pct decimal.Decimal) string {
	return pct.Round(0).String() + "%"
}

// FormatDate formats a date for tables and detail views.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("Jan 2, 2006")
}

// FormatDaysLeft formats a whole-day countdown.
func FormatDaysLeft(days int) string {
	switch {
	case days <= 0:
		return "due"
	case days == 1:
		return "1 day"
	default:
		return humanize.Comma(int64(days)) + " days"
	}
}

// FormatRelative formats a past time relative to now.
// e.g., "3 days ago"
func FormatRelative(t time.Time) string {
	return humanize.Time(t)
}

// ShortID returns the first eight characters of a goal or transaction id.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// FormatStatus renders the on-track state as a short label.
func FormatStatus(p model.Progress, complete bool) string {
	switch {
	case complete:
		return "done"
	case p.IsOnTrack:
		return "on track"
	default:
		return fmt.Sprintf("behind %s", FormatPercent(p.ExpectedPercentage.Sub(p.ProgressPercentage)))
	}
}
