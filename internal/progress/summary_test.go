package progress

import (
	"testing"

	"github.com/theirongolddev/savr/internal/model"
)

func TestSummarize_GroupsByCurrency(t *testing.T) {
	bike := goal("100", "100", 10*day)
	trip := goal("300", "60", 10*day)
	house := goal("1000000", "250000", 10*day)
	house.Currency = model.IDR
	legacy := goal("50", "0", 2*day)
	legacy.Currency = ""

	got := Summarize([]model.SavingsGoal{bike, house, trip, legacy}, t0.Add(5*day))

	if len(got) != 2 {
		t.Fatalf("len(Summarize) = %d, want 2", len(got))
	}
	if got[0].Currency != model.IDR || got[1].Currency != model.USD {
		t.Fatalf("currency order = [%s %s], want [IDR USD]", got[0].Currency, got[1].Currency)
	}

	usd := got[1]
	if usd.Goals != 3 {
		t.Errorf("USD Goals = %d, want 3", usd.Goals)
	}
	if usd.Completed != 1 {
		t.Errorf("USD Completed = %d, want 1", usd.Completed)
	}
	if usd.Overdue != 1 {
		t.Errorf("USD Overdue = %d, want 1 (legacy goal past its date)", usd.Overdue)
	}
	if !usd.TotalSaved.Equal(dec("160")) {
		t.Errorf("USD TotalSaved = %s, want 160", usd.TotalSaved)
	}
	if !usd.TotalTarget.Equal(dec("450")) {
		t.Errorf("USD TotalTarget = %s, want 450", usd.TotalTarget)
	}

	idr := got[0]
	if !idr.ProgressPercentage.Equal(dec("25")) {
		t.Errorf("IDR ProgressPercentage = %s, want 25", idr.ProgressPercentage)
	}
	if idr.OnTrack != 0 {
		t.Errorf("IDR OnTrack = %d, want 0", idr.OnTrack)
	}
}

func TestSummarize_Empty(t *testing.T) {
	if got := Summarize(nil, t0); len(got) != 0 {
		t.Fatalf("Summarize(nil) = %v, want empty", got)
	}
}

func TestFilterByName(t *testing.T) {
	a := goal("1", "0", day)
	a.Name = "Summer Trip"
	b := goal("1", "0", day)
	b.Name = "New Laptop"

	got := FilterByName([]model.SavingsGoal{a, b}, "trip")
	if len(got) != 1 || got[0].Name != "Summer Trip" {
		t.Fatalf("FilterByName(trip) = %v, want [Summer Trip]", got)
	}
	if got := FilterByName([]model.SavingsGoal{a, b}, ""); len(got) != 2 {
		t.Fatalf("FilterByName(\"\") len = %d, want 2", len(got))
	}
}

func TestFilterByCurrency(t *testing.T) {
	a := goal("1", "0", day)
	b := goal("1", "0", day)
	b.Currency = model.IDR

	got := FilterByCurrency([]model.SavingsGoal{a, b}, model.IDR)
	if len(got) != 1 || got[0].Currency != model.IDR {
		t.Fatalf("FilterByCurrency(IDR) = %v, want one IDR goal", got)
	}
}
