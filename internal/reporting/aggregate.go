package reporting

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"

	"city-stats/internal/decision"
	"city-stats/internal/domain"
	"city-stats/internal/metrics"
)

// Aggregate report titles and comprehensive report keys.
const (
	TitlePopulation           = "Population Report"
	TitleEconomic             = "Economic Report"
	TitleBuildingDistribution = "Building Distribution"

	AggregatePopulation = "population"
	AggregateEconomic   = "economic"
	AggregateBuildings  = "buildings"

	noHistoryDescription = "No historical data"
)

// AggregateNames lists the aggregate reports in comprehensive order.
var AggregateNames = []string{AggregatePopulation, AggregateEconomic, AggregateBuildings}

// Aggregator derives multi-turn reports from snapshots (oldest first).
// Trend values come from the metrics package and recommendations from the
// advisor; the aggregator never applies thresholds itself.
type Aggregator struct {
	advisor  *decision.Advisor
	onAdvice func(decision.Advisory)
}

// NewAggregator creates an aggregator using advisor for recommendations.
func NewAggregator(advisor *decision.Advisor) *Aggregator {
	if advisor == nil {
		advisor = decision.NewAdvisor(decision.DefaultThresholds())
	}
	return &Aggregator{advisor: advisor}
}

// OnAdvisory registers a callback invoked for every rule that fires.
func (a *Aggregator) OnAdvisory(fn func(decision.Advisory)) *Aggregator {
	a.onAdvice = fn
	return a
}

// Build produces the aggregate report registered under name.
func (a *Aggregator) Build(name string, snapshots []domain.TurnSnapshot) (*domain.AggregateReport, error) {
	switch name {
	case AggregatePopulation:
		return a.Population(snapshots)
	case AggregateEconomic:
		return a.Economic(snapshots)
	case AggregateBuildings:
		return a.BuildingDistribution(snapshots), nil
	default:
		return nil, fmt.Errorf("%w: aggregate %q", ErrUnknownReportType, name)
	}
}

// Population builds the population trend report.
func (a *Aggregator) Population(snapshots []domain.TurnSnapshot) (*domain.AggregateReport, error) {
	r := domain.NewAggregateReport(TitlePopulation, domain.ChartLine)
	trends, ok := metrics.AnalyzePopulation(snapshots)
	if !ok {
		r.Description = noHistoryDescription
		return r, nil
	}

	if err := addSeries(r, snapshots,
		domain.MetricPopulation,
		domain.MetricSatisfaction,
		domain.MetricUnemploymentRate,
	); err != nil {
		return nil, err
	}

	r.AddScalar("population_growth", trends.GrowthPct())
	r.AddScalar("avg_satisfaction", trends.AvgSatisfaction)
	r.AddScalar("avg_unemployment", trends.AvgUnemployment)
	r.AddScalar("current_population", trends.CurrentPopulation)

	r.Description = fmt.Sprintf("Analysis of the city's population development. Population growth: %.1f%%, current population: %s",
		trends.GrowthPct(), humanize.Comma(int64(trends.CurrentPopulation)))
	r.Recommendations = a.recommend(a.advisor.EvaluatePopulation(decision.PopulationIndicators{
		Growth:          trends.Growth,
		AvgSatisfaction: trends.AvgSatisfaction,
		AvgUnemployment: trends.AvgUnemployment,
	}))
	return r, nil
}

// Economic builds the economic trend report.
func (a *Aggregator) Economic(snapshots []domain.TurnSnapshot) (*domain.AggregateReport, error) {
	r := domain.NewAggregateReport(TitleEconomic, domain.ChartLine)
	trends, ok := metrics.AnalyzeEconomy(snapshots)
	if !ok {
		r.Description = noHistoryDescription
		return r, nil
	}

	if err := addSeries(r, snapshots,
		domain.MetricMoney,
		domain.MetricIncome,
		domain.MetricExpenses,
		domain.MetricNetIncome,
	); err != nil {
		return nil, err
	}
	if err := r.AddSeries("debt", domain.SeriesOf(snapshots, domain.MetricTotalDebt)); err != nil {
		return nil, err
	}

	r.AddScalar("total_income", trends.TotalIncome)
	r.AddScalar("total_expenses", trends.TotalExpenses)
	r.AddScalar("avg_net_income", trends.AvgNetIncome)
	r.AddScalar("debt_ratio", trends.DebtRatio)
	r.AddScalar("budget_balance", trends.BudgetBalance())

	r.Description = fmt.Sprintf("Analysis of the city's financial situation. Average net income: $%s",
		humanize.Comma(int64(math.Round(trends.AvgNetIncome))))
	r.Recommendations = a.recommend(a.advisor.EvaluateEconomy(decision.EconomyIndicators{
		AvgNetIncome: trends.AvgNetIncome,
		DebtRatio:    trends.DebtRatio,
		Cash:         trends.LatestCash,
	}))
	return r, nil
}

// BuildingDistribution builds the bar report of building counts per
// category at the latest snapshot.
func (a *Aggregator) BuildingDistribution(snapshots []domain.TurnSnapshot) *domain.AggregateReport {
	r := domain.NewAggregateReport(TitleBuildingDistribution, domain.ChartBar)
	if len(snapshots) == 0 {
		r.Description = noHistoryDescription
		return r
	}

	latest := snapshots[len(snapshots)-1]
	for _, c := range latest.BuildingDistribution() {
		r.AddCategory(c.Label, c.Value)
	}
	r.AddScalar("total_buildings", float64(latest.BuildingsCount))
	r.Description = fmt.Sprintf("Building distribution at turn %d: %s buildings in total",
		latest.Turn, humanize.Comma(int64(latest.BuildingsCount)))
	return r
}

// Advisories evaluates every population and economy rule over snapshots,
// fired or not. Empty history yields no advisories. The advisory hook is
// not invoked.
func (a *Aggregator) Advisories(snapshots []domain.TurnSnapshot) []decision.Advisory {
	var out []decision.Advisory
	if trends, ok := metrics.AnalyzePopulation(snapshots); ok {
		out = append(out, a.advisor.EvaluatePopulation(decision.PopulationIndicators{
			Growth:          trends.Growth,
			AvgSatisfaction: trends.AvgSatisfaction,
			AvgUnemployment: trends.AvgUnemployment,
		})...)
	}
	if trends, ok := metrics.AnalyzeEconomy(snapshots); ok {
		out = append(out, a.advisor.EvaluateEconomy(decision.EconomyIndicators{
			AvgNetIncome: trends.AvgNetIncome,
			DebtRatio:    trends.DebtRatio,
			Cash:         trends.LatestCash,
		})...)
	}
	return out
}

func (a *Aggregator) recommend(advisories []decision.Advisory) []string {
	if a.onAdvice != nil {
		for _, adv := range decision.Fired(advisories) {
			a.onAdvice(adv)
		}
	}
	return decision.Recommendations(advisories)
}

func addSeries(r *domain.AggregateReport, snapshots []domain.TurnSnapshot, ms ...domain.Metric) error {
	if !r.HasTurnAxis() {
		r.SetTurns(domain.TurnsOf(snapshots))
	}
	for _, m := range ms {
		if err := r.AddSeries(string(m), domain.SeriesOf(snapshots, m)); err != nil {
			return err
		}
	}
	return nil
}
