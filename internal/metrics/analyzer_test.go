package metrics

import (
	"math"
	"testing"

	"city-stats/internal/domain"
)

func snapshots() []domain.TurnSnapshot {
	return []domain.TurnSnapshot{
		{Turn: 1, Population: 1000, Satisfaction: 60, UnemploymentRate: 0.05, Money: 20000, Income: 1000, Expenses: 800, TotalDebt: 0},
		{Turn: 2, Population: 1100, Satisfaction: 50, UnemploymentRate: 0.10, Money: 15000, Income: 1200, Expenses: 1300, TotalDebt: 5000},
		{Turn: 3, Population: 1200, Satisfaction: 40, UnemploymentRate: 0.15, Money: 10000, Income: 900, Expenses: 1000, TotalDebt: 30000},
	}
}

func normalized(in []domain.TurnSnapshot) []domain.TurnSnapshot {
	out := make([]domain.TurnSnapshot, len(in))
	for i, s := range in {
		out[i] = s.Normalize()
	}
	return out
}

func TestAnalyzePopulation(t *testing.T) {
	trends, ok := AnalyzePopulation(snapshots())
	if !ok {
		t.Fatal("expected trends")
	}
	if math.Abs(trends.Growth-0.2) > eps {
		t.Errorf("Growth = %f, want 0.2", trends.Growth)
	}
	if math.Abs(trends.GrowthPct()-20) > eps {
		t.Errorf("GrowthPct = %f, want 20", trends.GrowthPct())
	}
	if math.Abs(trends.AvgSatisfaction-50) > eps {
		t.Errorf("AvgSatisfaction = %f, want 50", trends.AvgSatisfaction)
	}
	if math.Abs(trends.AvgUnemployment-0.10) > eps {
		t.Errorf("AvgUnemployment = %f, want 0.10", trends.AvgUnemployment)
	}
	if trends.CurrentPopulation != 1200 {
		t.Errorf("CurrentPopulation = %f, want 1200", trends.CurrentPopulation)
	}
}

func TestAnalyzeEconomy(t *testing.T) {
	trends, ok := AnalyzeEconomy(normalized(snapshots()))
	if !ok {
		t.Fatal("expected trends")
	}
	if trends.TotalIncome != 3100 {
		t.Errorf("TotalIncome = %f, want 3100", trends.TotalIncome)
	}
	if trends.TotalExpenses != 3100 {
		t.Errorf("TotalExpenses = %f, want 3100", trends.TotalExpenses)
	}
	// net incomes: 200, -100, -100
	if math.Abs(trends.AvgNetIncome-0) > eps {
		t.Errorf("AvgNetIncome = %f, want 0", trends.AvgNetIncome)
	}
	if math.Abs(trends.DebtRatio-3) > eps {
		t.Errorf("DebtRatio = %f, want 3", trends.DebtRatio)
	}
	if trends.LatestCash != 10000 {
		t.Errorf("LatestCash = %f, want 10000", trends.LatestCash)
	}
	if trends.BudgetBalance() != 0 {
		t.Errorf("BudgetBalance = %f, want 0", trends.BudgetBalance())
	}
}

func TestAnalyze_EmptyHistory(t *testing.T) {
	if _, ok := AnalyzePopulation(nil); ok {
		t.Error("expected no population trends for empty history")
	}
	if _, ok := AnalyzeEconomy(nil); ok {
		t.Error("expected no economy trends for empty history")
	}
}

func TestAnalyze_SingletonKeepsValues(t *testing.T) {
	single := normalized(snapshots()[:1])

	pop, _ := AnalyzePopulation(single)
	if pop.Growth != 0 {
		t.Errorf("Growth = %f, want 0", pop.Growth)
	}
	if pop.AvgSatisfaction != 60 {
		t.Errorf("AvgSatisfaction = %f, want 60", pop.AvgSatisfaction)
	}

	econ, _ := AnalyzeEconomy(single)
	if econ.AvgNetIncome != 200 {
		t.Errorf("AvgNetIncome = %f, want 200", econ.AvgNetIncome)
	}
}

func TestAnalyzeEconomy_SingleTurnHasNoDebtRatio(t *testing.T) {
	single := normalized(snapshots()[2:])

	econ, ok := AnalyzeEconomy(single)
	if !ok {
		t.Fatal("expected trends for a single turn")
	}
	if econ.DebtRatio != 0 {
		t.Errorf("DebtRatio = %f, want 0", econ.DebtRatio)
	}
	if econ.LatestCash != 10000 {
		t.Errorf("LatestCash = %f, want 10000", econ.LatestCash)
	}
}

func TestNetIncomeTrendAndPrediction(t *testing.T) {
	snaps := normalized([]domain.TurnSnapshot{
		{Turn: 1, Population: 1000, Income: 1000, Expenses: 800},
		{Turn: 2, Population: 1100, Income: 1200, Expenses: 800},
		{Turn: 3, Population: 1200, Income: 1400, Expenses: 800},
	})

	// net income 200 -> 600
	if got := NetIncomeTrend(snaps); math.Abs(got-2) > eps {
		t.Errorf("NetIncomeTrend = %f, want 2", got)
	}
	if got := PredictPopulation(snaps, 2); math.Abs(got-1400) > eps {
		t.Errorf("PredictPopulation = %f, want 1400", got)
	}
}
