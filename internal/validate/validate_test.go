package validate

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/savr/internal/apperrors"
	"github.com/theirongolddev/savr/internal/model"

	"github.com/shopspring/decimal"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func validDraft() model.GoalDraft {
	return model.GoalDraft{
		Name:         "Vacation",
		TargetAmount: decimal.NewFromInt(1000),
		TargetDate:   now.AddDate(0, 6, 0),
		Currency:     model.USD,
	}
}

func fieldOf(t *testing.T, err error) string {
	t.Helper()
	var ve *apperrors.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("error %v is not a ValidationError", err)
	}
	if !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("error %v does not match ErrValidation", err)
	}
	return ve.Field
}

func TestGoal(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.GoalDraft)
		field  string
	}{
		{"valid", func(*model.GoalDraft) {}, ""},
		{"empty currency allowed", func(d *model.GoalDraft) { d.Currency = "" }, ""},
		{"with image", func(d *model.GoalDraft) { d.ImageURI = "file:///tmp/a.png" }, ""},
		{"blank name", func(d *model.GoalDraft) { d.Name = "   " }, "name"},
		{"zero target", func(d *model.GoalDraft) { d.TargetAmount = decimal.Zero }, "targetAmount"},
		{"negative target", func(d *model.GoalDraft) { d.TargetAmount = decimal.NewFromInt(-5) }, "targetAmount"},
		{"past date", func(d *model.GoalDraft) { d.TargetDate = now.AddDate(0, 0, -1) }, "targetDate"},
		{"date equal to now", func(d *model.GoalDraft) { d.TargetDate = now }, "targetDate"},
		{"unknown currency", func(d *model.GoalDraft) { d.Currency = "EUR" }, "currency"},
		{"bad image uri", func(d *model.GoalDraft) { d.ImageURI = "not a uri" }, "imageUri"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.mutate(&d)
			err := Goal(d, now)
			if tt.field == "" {
				if err != nil {
					t.Fatalf("Goal() = %v, want nil", err)
				}
				return
			}
			if got := fieldOf(t, err); got != tt.field {
				t.Errorf("field = %q, want %q", got, tt.field)
			}
		})
	}
}

func TestGoalUpdate(t *testing.T) {
	blank := " "
	zero := decimal.Zero
	past := now.Add(-time.Hour)
	eur := model.Currency("EUR")
	badURI := "::"
	clearURI := ""

	if err := GoalUpdate(model.GoalUpdate{}, now); err != nil {
		t.Fatalf("empty update = %v, want nil", err)
	}
	if err := GoalUpdate(model.GoalUpdate{ImageURI: &clearURI}, now); err != nil {
		t.Fatalf("clearing image = %v, want nil", err)
	}

	tests := []struct {
		name  string
		u     model.GoalUpdate
		field string
	}{
		{"blank name", model.GoalUpdate{Name: &blank}, "name"},
		{"zero target", model.GoalUpdate{TargetAmount: &zero}, "targetAmount"},
		{"past date", model.GoalUpdate{TargetDate: &past}, "targetDate"},
		{"unknown currency", model.GoalUpdate{Currency: &eur}, "currency"},
		{"bad image", model.GoalUpdate{ImageURI: &badURI}, "imageUri"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fieldOf(t, GoalUpdate(tt.u, now)); got != tt.field {
				t.Errorf("field = %q, want %q", got, tt.field)
			}
		})
	}
}

func TestTransaction(t *testing.T) {
	g := model.SavingsGoal{ID: "g1", CurrentAmount: decimal.NewFromInt(50)}

	ok := []model.TransactionDraft{
		{Amount: decimal.NewFromInt(10), Type: model.Deposit, Description: "pay"},
		{Amount: decimal.NewFromInt(50), Type: model.Withdrawal, Description: "all of it"},
		{Amount: decimal.RequireFromString("0.01"), Type: model.Withdrawal, Description: "cent"},
	}
	for _, d := range ok {
		if err := Transaction(g, d); err != nil {
			t.Errorf("Transaction(%v %s) = %v, want nil", d.Type, d.Amount, err)
		}
	}

	tests := []struct {
		name  string
		d     model.TransactionDraft
		field string
	}{
		{"zero amount", model.TransactionDraft{Amount: decimal.Zero, Type: model.Deposit, Description: "x"}, "amount"},
		{"negative amount", model.TransactionDraft{Amount: decimal.NewFromInt(-1), Type: model.Deposit, Description: "x"}, "amount"},
		{"blank description", model.TransactionDraft{Amount: decimal.NewFromInt(1), Type: model.Deposit, Description: "  "}, "description"},
		{"bad type", model.TransactionDraft{Amount: decimal.NewFromInt(1), Type: "transfer", Description: "x"}, "type"},
		{"over withdrawal", model.TransactionDraft{Amount: decimal.RequireFromString("50.01"), Type: model.Withdrawal, Description: "x"}, "amount"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fieldOf(t, Transaction(g, tt.d)); got != tt.field {
				t.Errorf("field = %q, want %q", got, tt.field)
			}
		})
	}
}

func TestTransaction_InsufficientBalanceMessage(t *testing.T) {
	g := model.SavingsGoal{CurrentAmount: decimal.NewFromInt(20)}
	err := Transaction(g, model.TransactionDraft{Amount: decimal.NewFromInt(30), Type: model.Withdrawal, Description: "x"})
	if err == nil || !strings.Contains(err.Error(), "insufficient balance") {
		t.Fatalf("err = %v, want insufficient balance", err)
	}
}
