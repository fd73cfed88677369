package cli

import (
	"strings"
	"testing"

	"github.com/theirongolddev/savr/internal/model"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount   string
		currency model.Currency
		want     string
	}{
		{"0", model.USD, "$0.00"},
		{"1234.5", model.USD, "$1,234.50"},
		{"1234567.891", model.USD, "$1,234,567.89"},
		{"-20", model.USD, "-$20.00"},
		{"1234567", model.IDR, "Rp 1.234.567"},
		{"999", model.IDR, "Rp 999"},
		{"15", "", "$15.00"},
	}

	for _, tt := range tests {
		got := FormatMoney(decimal.RequireFromString(tt.amount), tt.currency)
		if got != tt.want {
			t.Errorf("FormatMoney(%s, %q) = %q, want %q", tt.amount, tt.currency, got, tt.want)
		}
	}
}

func TestFormatSignedMoney(t *testing.T) {
	dep := model.Transaction{Amount: decimal.NewFromInt(5), Type: model.Deposit}
	wd := model.Transaction{Amount: decimal.NewFromInt(5), Type: model.Withdrawal}

	if got := FormatSignedMoney(dep, model.USD); got != "+$5.00" {
		t.Errorf("deposit = %q, want +$5.00", got)
	}
	if got := FormatSignedMoney(wd, model.USD); got != "-$5.00" {
		t.Errorf("withdrawal = %q, want -$5.00", got)
	}
}

func TestFormatPercent(t *testing.T) {
	tests := map[string]string{
		"0":     "0%",
		"33.33": "33%",
		"66.5":  "67%",
		"100":   "100%",
	}
	for in, want := range tests {
		if got := FormatPercent(decimal.RequireFromString(in)); got != want {
			t.Errorf("FormatPercent(%s) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatDaysLeft(t *testing.T) {
	tests := map[int]string{
		-3:   "due",
		0:    "due",
		1:    "1 day",
		45:   "45 days",
		1200: "1,200 days",
	}
	for in, want := range tests {
		if got := FormatDaysLeft(in); got != want {
			t.Errorf("FormatDaysLeft(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestShortID(t *testing.T) {
	if got := ShortID("0b7e2c1a-aaaa-bbbb"); got != "0b7e2c1a" {
		t.Errorf("ShortID = %q", got)
	}
	if got := ShortID("abc"); got != "abc" {
		t.Errorf("ShortID = %q", got)
	}
}

func TestRenderProgressBar(t *testing.T) {
	tests := []struct {
		pct  string
		want string
	}{
		{"0", "░░░░░░░░░░"},
		{"50", "█████░░░░░"},
		{"99.9", "█████████░"},
		{"100", "██████████"},
		{"-5", "░░░░░░░░░░"},
	}
	for _, tt := range tests {
		if got := RenderProgressBar(decimal.RequireFromString(tt.pct), 10); got != tt.want {
			t.Errorf("RenderProgressBar(%s) = %q, want %q", tt.pct, got, tt.want)
		}
	}
}

func TestRenderTable_AlignsWideCells(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"Goal", "Progress"},
		Rows: [][]string{
			{"Trip", RenderProgressBar(decimal.NewFromInt(50), 6)},
			{"---"},
			{"Emergency fund", "-"},
		},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 7 {
		t.Fatalf("got %d lines, want 7:\n%s", len(lines), out)
	}
	width := lipgloss.Width(lines[0])
	for i, l := range lines {
		if w := lipgloss.Width(l); w != width {
			t.Errorf("line %d width = %d, want %d: %q", i, w, width, l)
		}
	}
}
