// Package model defines the savings goal data types shared across packages.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType records whether a transaction adds to or removes from a goal.
type TransactionType string

const (
	Deposit    TransactionType = "deposit"
	Withdrawal TransactionType = "withdrawal"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	return t == Deposit || t == Withdrawal
}

// Sign returns +1 for deposits and -1 for withdrawals.
func (t TransactionType) Sign() int64 {
	if t == Withdrawal {
		return -1
	}
	return 1
}

// Transaction is a single balance-affecting event recorded against a goal.
type Transaction struct {
	ID          string          `json:"id"`
	GoalID      string          `json:"goalId"`
	Amount      decimal.Decimal `json:"amount"` // always positive, direction is Type
	Type        TransactionType `json:"type"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
}

// Signed returns the amount with the sign implied by the transaction type.
func (t Transaction) Signed() decimal.Decimal {
	if t.Type == Withdrawal {
		return t.Amount.Neg()
	}
	return t.Amount
}

// SavingsGoal is a savings objective and its transaction history.
type SavingsGoal struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	TargetDate    time.Time       `json:"targetDate"`
	Currency      Currency        `json:"currency"`
	ImageURI      string          `json:"imageUri,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	Transactions  []Transaction   `json:"transactions"`
}

// Clone returns a deep copy of g.
func (g SavingsGoal) Clone() SavingsGoal {
	c := g
	c.Transactions = make([]Transaction, len(g.Transactions))
	copy(c.Transactions, g.Transactions)
	return c
}

// RecentTransactions returns the transactions newest first. The stored
// order is recording order and is left untouched.
func (g SavingsGoal) RecentTransactions() []Transaction {
	out := make([]Transaction, len(g.Transactions))
	for i, t := range g.Transactions {
		out[len(out)-1-i] = t
	}
	return out
}

// IsComplete reports whether the goal has reached its target.
func (g SavingsGoal) IsComplete() bool {
	return g.TargetAmount.IsPositive() && g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount)
}

// GoalDraft holds the caller-supplied fields for a new goal.
type GoalDraft struct {
	Name         string
	TargetAmount decimal.Decimal
	TargetDate   time.Time
	Currency     Currency
	ImageURI     string
}

// GoalUpdate is a sparse set of field overrides. Nil fields are left unchanged.
type GoalUpdate struct {
	Name         *string
	TargetAmount *decimal.Decimal
	TargetDate   *time.Time
	Currency     *Currency
	ImageURI     *string // pointer to "" clears the image
}

// IsEmpty reports whether the update carries no overrides.
func (u GoalUpdate) IsEmpty() bool {
	return u.Name == nil && u.TargetAmount == nil && u.TargetDate == nil &&
		u.Currency == nil && u.ImageURI == nil
}

// Apply returns g with the supplied overrides applied.
func (u GoalUpdate) Apply(g SavingsGoal) SavingsGoal {
	if u.Name != nil {
		g.Name = *u.Name
	}
	if u.TargetAmount != nil {
		g.TargetAmount = *u.TargetAmount
	}
	if u.TargetDate != nil {
		g.TargetDate = *u.TargetDate
	}
	if u.Currency != nil {
		g.Currency = u.Currency.OrDefault()
	}
	if u.ImageURI != nil {
		g.ImageURI = *u.ImageURI
	}
	return g
}

// TransactionDraft holds the caller-supplied fields for a new transaction.
type TransactionDraft struct {
	Amount      decimal.Decimal
	Type        TransactionType
	Description string
	Date        time.Time // zero means now
}
