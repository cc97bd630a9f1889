package domain

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"
)

func TestNewTurnSnapshot_Defaults(t *testing.T) {
	at := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	snap := NewTurnSnapshot(3, at, TurnState{})

	if snap.Turn != 3 || !snap.Timestamp.Equal(at) {
		t.Fatalf("turn/timestamp = %d/%v", snap.Turn, snap.Timestamp)
	}
	if snap.Satisfaction != DefaultSatisfaction {
		t.Errorf("satisfaction = %v, want %v", snap.Satisfaction, DefaultSatisfaction)
	}
	if snap.TaxRate != DefaultTaxRate {
		t.Errorf("tax_rate = %v, want %v", snap.TaxRate, DefaultTaxRate)
	}
	if snap.CreditScore != DefaultCreditScore {
		t.Errorf("credit_score = %v, want %v", snap.CreditScore, DefaultCreditScore)
	}
	if snap.Population != 0 || snap.BuildingsCount != 0 || snap.TotalDebt != 0 {
		t.Errorf("expected zero counts, got %+v", snap)
	}
}

func TestNewTurnSnapshot_DerivedFields(t *testing.T) {
	state := TurnState{
		"population":   json.Number("1200"),
		"money":        5000,
		"income":       800.0,
		"expenses":     300,
		"net_income":   99999, // ignored
		"satisfaction": "high",
		"buildings": []any{
			map[string]any{"category": "residential"},
			map[string]any{"category": "residential"},
			map[string]any{"category": "industrial"},
			"not-a-building",
		},
		"active_loans": []any{
			map[string]any{"remaining_amount": 1000.0},
			map[string]any{"remaining_amount": 250},
		},
		"researched_technologies": []string{"roads", "power"},
	}

	snap := NewTurnSnapshot(1, time.Now(), state)

	if snap.Population != 1200 {
		t.Errorf("population = %d", snap.Population)
	}
	if snap.NetIncome != 500 {
		t.Errorf("net_income = %v, want 500", snap.NetIncome)
	}
	if snap.Satisfaction != DefaultSatisfaction {
		t.Errorf("malformed satisfaction should default, got %v", snap.Satisfaction)
	}
	if snap.BuildingsCount != 4 {
		t.Errorf("buildings_count = %d, want 4", snap.BuildingsCount)
	}
	if snap.ResidentialBuildings != 2 || snap.IndustrialBuildings != 1 || snap.CommercialBuildings != 0 {
		t.Errorf("categories = %d/%d/%d", snap.ResidentialBuildings, snap.CommercialBuildings, snap.IndustrialBuildings)
	}
	if snap.ActiveLoans != 2 || snap.TotalDebt != 1250 {
		t.Errorf("loans = %d debt = %v", snap.ActiveLoans, snap.TotalDebt)
	}
	if snap.TechnologiesResearched != 2 {
		t.Errorf("technologies = %d", snap.TechnologiesResearched)
	}
}

func TestFields_MarshalKeepsOrder(t *testing.T) {
	f := Fields{
		{Key: "zeta", Value: 1},
		{Key: "alpha", Value: Fields{{Key: "b", Value: "x"}, {Key: "a", Value: true}}},
	}
	data, err := json.Marshal(f)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"zeta":1,"alpha":{"b":"x","a":true}}`
	if string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}
}

func TestFinancialReport_Fields(t *testing.T) {
	r := NewFinancialReport(time.Now(), 1000, 400, 150)
	if r.NetIncome != 250 || r.NetIncomeRecomputed() != 250 {
		t.Fatalf("net income = %v", r.NetIncome)
	}

	keys := r.Fields().Keys()
	want := []string{"timestamp", "type", "current_money", "total_income", "total_expenses", "net_income"}
	if len(keys) != len(want) {
		t.Fatalf("keys = %v", keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("key %d = %s, want %s", i, keys[i], want[i])
		}
	}
	if v, _ := r.Fields().Get("type"); v != "FinancialReport" {
		t.Errorf("type = %v", v)
	}
}

func TestCompareFinancial(t *testing.T) {
	before := NewFinancialReport(time.Now(), 1000, 400, 150)
	after := NewFinancialReport(time.Now(), 1300, 450, 250)

	cmp := CompareFinancial(before, after)
	if cmp.MoneyChange != 300 || cmp.IncomeChange != 50 || cmp.ExpensesChange != 100 || cmp.NetIncomeChange != -50 {
		t.Errorf("comparison = %+v", cmp)
	}
}

func TestAggregateReport_SeriesLength(t *testing.T) {
	r := NewAggregateReport("Population", ChartLine)
	r.SetTurns([]int{1, 2, 3})

	if err := r.AddSeries("population", []float64{1, 2, 3}); err != nil {
		t.Fatalf("aligned series: %v", err)
	}
	err := r.AddSeries("satisfaction", []float64{1, 2})
	if !errors.Is(err, ErrSeriesLength) {
		t.Fatalf("expected ErrSeriesLength, got %v", err)
	}
	if len(r.Series) != 1 {
		t.Errorf("rejected series was stored")
	}
}

func TestHumanizeKey(t *testing.T) {
	cases := map[string]string{
		"net_income": "Net Income",
		"population": "Population",
		"TOTAL_debt": "Total Debt",
		"ąb_cd":      "Ąb Cd",
		"":           "",
	}
	for in, want := range cases {
		if got := HumanizeKey(in); got != want {
			t.Errorf("HumanizeKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestAggregateReport_ClampsNonFiniteValues(t *testing.T) {
	r := NewAggregateReport("Economy", ChartLine)
	r.SetTurns([]int{1, 2})
	if err := r.AddSeries("income", []float64{math.Inf(1), math.NaN()}); err != nil {
		t.Fatalf("add series: %v", err)
	}
	r.AddScalar("total_income", math.Inf(1))
	r.AddScalar("total_expenses", math.Inf(-1))
	r.AddCategory("residential", math.NaN())

	if v, _ := r.Scalar("total_income"); v != math.MaxFloat64 {
		t.Errorf("total_income = %v", v)
	}
	if v, _ := r.Scalar("total_expenses"); v != -math.MaxFloat64 {
		t.Errorf("total_expenses = %v", v)
	}
	if v, _ := r.SeriesByName("income"); v[0] != math.MaxFloat64 || v[1] != 0 {
		t.Errorf("income = %v", v)
	}
	if r.Categories[0].Value != 0 {
		t.Errorf("category = %v", r.Categories[0].Value)
	}
	if _, err := json.Marshal(r.Fields()); err != nil {
		t.Errorf("marshal: %v", err)
	}
}
