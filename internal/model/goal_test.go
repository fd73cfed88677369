package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestRecentTransactionsNewestFirst(t *testing.T) {
	g := SavingsGoal{Transactions: []Transaction{{ID: "a"}, {ID: "b"}, {ID: "c"}}}

	got := g.RecentTransactions()
	if got[0].ID != "c" || got[1].ID != "b" || got[2].ID != "a" {
		t.Fatalf("RecentTransactions IDs = [%s %s %s], want [c b a]", got[0].ID, got[1].ID, got[2].ID)
	}
	if g.Transactions[0].ID != "a" {
		t.Fatal("RecentTransactions reordered the stored slice")
	}
}

func TestCloneIsDeep(t *testing.T) {
	g := SavingsGoal{Transactions: []Transaction{{ID: "a"}}}
	c := g.Clone()
	c.Transactions[0].ID = "changed"
	if g.Transactions[0].ID != "a" {
		t.Fatal("Clone shares the transactions backing array")
	}
}

func TestSigned(t *testing.T) {
	amt := decimal.NewFromInt(25)
	dep := Transaction{Amount: amt, Type: Deposit}
	wd := Transaction{Amount: amt, Type: Withdrawal}

	if !dep.Signed().Equal(amt) {
		t.Fatalf("deposit Signed = %s, want 25", dep.Signed())
	}
	if !wd.Signed().Equal(amt.Neg()) {
		t.Fatalf("withdrawal Signed = %s, want -25", wd.Signed())
	}
	if Withdrawal.Sign() != -1 || Deposit.Sign() != 1 {
		t.Fatal("Sign mismatch")
	}
}

func TestGoalUpdateApply(t *testing.T) {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	g := SavingsGoal{
		ID:           "g1",
		Name:         "Old",
		TargetAmount: decimal.NewFromInt(10),
		Currency:     USD,
		ImageURI:     "file:///tmp/a.png",
		CreatedAt:    created,
	}

	name := "New"
	noImage := ""
	idr := IDR
	got := GoalUpdate{Name: &name, ImageURI: &noImage, Currency: &idr}.Apply(g)

	if got.Name != "New" || got.ImageURI != "" || got.Currency != IDR {
		t.Fatalf("Apply = %+v, want name New, no image, IDR", got)
	}
	if !got.TargetAmount.Equal(decimal.NewFromInt(10)) || got.ID != "g1" || !got.CreatedAt.Equal(created) {
		t.Fatal("Apply changed fields that were not supplied")
	}
	if !(GoalUpdate{}).IsEmpty() {
		t.Fatal("zero GoalUpdate should be empty")
	}
}

func TestParseCurrency(t *testing.T) {
	c, err := ParseCurrency(" idr ")
	if err != nil || c != IDR {
		t.Fatalf("ParseCurrency(idr) = %q, %v; want IDR", c, err)
	}
	if _, err := ParseCurrency("EUR"); err == nil {
		t.Fatal("ParseCurrency(EUR) should fail")
	}
	if Currency("").OrDefault() != USD {
		t.Fatal("empty currency should default to USD")
	}
	if IDR.Info().Symbol != "Rp" {
		t.Fatalf("IDR symbol = %q, want Rp", IDR.Info().Symbol)
	}
}

func TestThemeModeCycle(t *testing.T) {
	m := ThemeLight
	want := []ThemeMode{ThemeDark, ThemeSystem, ThemeLight}
	for i, w := range want {
		m = m.Next()
		if m != w {
			t.Fatalf("step %d: Next = %q, want %q", i, m, w)
		}
	}
	if ThemeMode("bogus").Next() != ThemeLight {
		t.Fatal("unknown mode should cycle to light")
	}
	if _, err := ParseThemeMode("Dark"); err != nil {
		t.Fatalf("ParseThemeMode(Dark) error: %v", err)
	}
	if _, err := ParseThemeMode("sepia"); err == nil {
		t.Fatal("ParseThemeMode(sepia) should fail")
	}
}
