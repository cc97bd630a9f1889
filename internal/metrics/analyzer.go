package metrics

import "city-stats/internal/domain"

// PopulationTrends are the population indicators derived over history.
type PopulationTrends struct {
	Growth            float64 // first-to-last ratio
	AvgSatisfaction   float64
	AvgUnemployment   float64
	CurrentPopulation float64
}

// GrowthPct returns Growth as a percentage.
func (p PopulationTrends) GrowthPct() float64 {
	return p.Growth * 100
}

// EconomyTrends are the economic indicators derived over history.
type EconomyTrends struct {
	TotalIncome   float64
	TotalExpenses float64
	AvgNetIncome  float64
	DebtRatio     float64
	LatestCash    float64
}

// BudgetBalance returns total income minus total expenses.
func (e EconomyTrends) BudgetBalance() float64 {
	return e.TotalIncome - e.TotalExpenses
}

// AnalyzePopulation derives population trends from snapshots (oldest first).
// ok is false when there is no history.
func AnalyzePopulation(snapshots []domain.TurnSnapshot) (PopulationTrends, bool) {
	if len(snapshots) == 0 {
		return PopulationTrends{}, false
	}
	population := domain.SeriesOf(snapshots, domain.MetricPopulation)
	return PopulationTrends{
		Growth:            GrowthRate(population),
		AvgSatisfaction:   Average(domain.SeriesOf(snapshots, domain.MetricSatisfaction)),
		AvgUnemployment:   Average(domain.SeriesOf(snapshots, domain.MetricUnemploymentRate)),
		CurrentPopulation: Last(population),
	}, true
}

// AnalyzeEconomy derives economic trends from snapshots (oldest first).
// ok is false when there is no history. A single turn has no debt ratio.
func AnalyzeEconomy(snapshots []domain.TurnSnapshot) (EconomyTrends, bool) {
	if len(snapshots) == 0 {
		return EconomyTrends{}, false
	}
	money := domain.SeriesOf(snapshots, domain.MetricMoney)
	trends := EconomyTrends{
		TotalIncome:   Sum(domain.SeriesOf(snapshots, domain.MetricIncome)),
		TotalExpenses: Sum(domain.SeriesOf(snapshots, domain.MetricExpenses)),
		AvgNetIncome:  Average(domain.SeriesOf(snapshots, domain.MetricNetIncome)),
		LatestCash:    Last(money),
	}
	if len(snapshots) > 1 {
		trends.DebtRatio = DebtRatio(domain.SeriesOf(snapshots, domain.MetricTotalDebt), money)
	}
	return trends, true
}

// NetIncomeTrend returns the first-to-last growth of net income.
func NetIncomeTrend(snapshots []domain.TurnSnapshot) float64 {
	return GrowthRate(domain.SeriesOf(snapshots, domain.MetricNetIncome))
}

// PredictPopulation extrapolates population turnsAhead turns past the
// latest snapshot along the linear trend.
func PredictPopulation(snapshots []domain.TurnSnapshot, turnsAhead int) float64 {
	return Forecast(domain.SeriesOf(snapshots, domain.MetricPopulation), turnsAhead)
}
