package reporting

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"city-stats/internal/decision"
	"city-stats/internal/domain"
	"city-stats/internal/export"
	"city-stats/internal/history"
)

func snapshots(states ...domain.TurnState) []domain.TurnSnapshot {
	s := history.NewStore(0)
	for i, st := range states {
		s.Record(i+1, st)
	}
	return s.Snapshots()
}

func TestPopulation_EmptyHistory(t *testing.T) {
	r, err := NewAggregator(nil).Population(nil)
	require.NoError(t, err)

	assert.Equal(t, TitlePopulation, r.Title)
	assert.Equal(t, "No historical data", r.Description)
	assert.Empty(t, r.Series)
	assert.Empty(t, r.Scalars)
	assert.Empty(t, r.Recommendations)
}

func TestPopulation_TrendsAndRecommendations(t *testing.T) {
	snaps := snapshots(
		domain.TurnState{"population": 1000, "satisfaction": 40, "unemployment_rate": 0.15},
		domain.TurnState{"population": 900, "satisfaction": 45, "unemployment_rate": 0.12},
	)

	r, err := NewAggregator(nil).Population(snaps)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2}, r.Turns)
	pop, ok := r.SeriesByName("population")
	require.True(t, ok)
	assert.Equal(t, []float64{1000, 900}, pop)

	growth, _ := r.Scalar("population_growth")
	assert.InDelta(t, -10.0, growth, 1e-9)
	sat, _ := r.Scalar("avg_satisfaction")
	assert.InDelta(t, 42.5, sat, 1e-9)
	cur, _ := r.Scalar("current_population")
	assert.Equal(t, 900.0, cur)

	assert.Len(t, r.Recommendations, 3)
	assert.Contains(t, r.Description, "-10.0%")
}

func TestPopulation_SingletonAveragesToValue(t *testing.T) {
	r, err := NewAggregator(nil).Population(snapshots(domain.TurnState{"population": 500, "satisfaction": 72}))
	require.NoError(t, err)

	growth, _ := r.Scalar("population_growth")
	assert.Equal(t, 0.0, growth)
	sat, _ := r.Scalar("avg_satisfaction")
	assert.Equal(t, 72.0, sat)
	assert.Empty(t, r.Recommendations)
}

func TestEconomic_Scalars(t *testing.T) {
	snaps := snapshots(
		domain.TurnState{"money": 5000, "income": 1000, "expenses": 1500,
			"active_loans": []any{map[string]any{"remaining_amount": 20000}}},
		domain.TurnState{"money": 4000, "income": 1200, "expenses": 1300,
			"active_loans": []any{map[string]any{"remaining_amount": 15000}}},
	)

	var fired []string
	a := NewAggregator(decision.NewAdvisor(decision.DefaultThresholds())).
		OnAdvisory(func(adv decision.Advisory) { fired = append(fired, adv.Rule) })

	r, err := a.Economic(snaps)
	require.NoError(t, err)

	debt, ok := r.SeriesByName("debt")
	require.True(t, ok)
	assert.Equal(t, []float64{20000, 15000}, debt)

	total, _ := r.Scalar("total_income")
	assert.Equal(t, 2200.0, total)
	avg, _ := r.Scalar("avg_net_income")
	assert.Equal(t, -300.0, avg)
	ratio, _ := r.Scalar("debt_ratio")
	assert.InDelta(t, 3.75, ratio, 1e-9)
	balance, _ := r.Scalar("budget_balance")
	assert.Equal(t, -600.0, balance)

	assert.Equal(t, []string{decision.RuleNegativeCashFlow, decision.RuleHighDebt, decision.RuleLowCash}, fired)
	assert.Len(t, r.Recommendations, 3)
	assert.Equal(t, "Analysis of the city's financial situation. Average net income: $-300", r.Description)
	assert.Len(t, r.AlignedSeries(), 5)
}

func TestEconomic_SingleTurnSkipsDebtRule(t *testing.T) {
	snaps := snapshots(domain.TurnState{"money": 10000, "income": 500, "expenses": 200,
		"active_loans": []any{map[string]any{"remaining_amount": 30000}}})

	r, err := NewAggregator(decision.NewAdvisor(decision.DefaultThresholds())).Economic(snaps)
	require.NoError(t, err)

	ratio, ok := r.Scalar("debt_ratio")
	require.True(t, ok)
	assert.Zero(t, ratio)
	assert.Empty(t, r.Recommendations)
}

func TestEconomic_OverflowingTotalsStayEncodable(t *testing.T) {
	snaps := snapshots(
		domain.TurnState{"income": 1.5e308, "expenses": 1},
		domain.TurnState{"income": 1.5e308, "expenses": 1},
	)

	r, err := NewAggregator(nil).Economic(snaps)
	require.NoError(t, err)

	total, _ := r.Scalar("total_income")
	assert.Equal(t, math.MaxFloat64, total)

	_, err = export.MarshalJSON(r.Fields())
	assert.NoError(t, err)
}

func TestBuildingDistribution(t *testing.T) {
	snaps := snapshots(
		domain.TurnState{"buildings": []any{map[string]any{"category": "residential"}}},
		domain.TurnState{"buildings": []any{
			map[string]any{"category": "residential"},
			map[string]any{"category": "residential"},
			map[string]any{"category": "public"},
		}},
	)

	r := NewAggregator(nil).BuildingDistribution(snaps)
	assert.Equal(t, domain.ChartBar, r.ChartKind)
	assert.Equal(t, []domain.CategoryValue{
		{Label: "residential", Value: 2},
		{Label: "commercial", Value: 0},
		{Label: "industrial", Value: 0},
		{Label: "public", Value: 1},
	}, r.Categories)
	assert.False(t, r.HasTurnAxis())

	empty := NewAggregator(nil).BuildingDistribution(nil)
	assert.Equal(t, "No historical data", empty.Description)
	assert.Empty(t, empty.Categories)
}

func TestAggregator_UnknownName(t *testing.T) {
	_, err := NewAggregator(nil).Build("weather", nil)
	assert.ErrorIs(t, err, ErrUnknownReportType)
}

func TestAggregator_Advisories(t *testing.T) {
	var hooked int
	a := NewAggregator(nil).OnAdvisory(func(decision.Advisory) { hooked++ })

	assert.Empty(t, a.Advisories(nil))

	snaps := snapshots(
		domain.TurnState{"population": 1000, "satisfaction": 40, "money": 500, "income": 100, "expenses": 300},
		domain.TurnState{"population": 900, "satisfaction": 45, "money": 300, "income": 100, "expenses": 300},
	)
	advisories := a.Advisories(snaps)
	assert.Len(t, advisories, 6)
	assert.NotEmpty(t, decision.Fired(advisories))
	assert.Zero(t, hooked)
}
