package domain

// Metric names a per-turn series that can be extracted from snapshots.
type Metric string

// Metric names match the historical_data keys.
const (
	MetricPopulation        Metric = "population"
	MetricMoney             Metric = "money"
	MetricSatisfaction      Metric = "satisfaction"
	MetricUnemploymentRate  Metric = "unemployment_rate"
	MetricCrimeRate         Metric = "crime_rate"
	MetricPollutionLevel    Metric = "pollution_level"
	MetricEnergyConsumption Metric = "energy_consumption"
	MetricWaterConsumption  Metric = "water_consumption"
	MetricBuildingsCount    Metric = "buildings_count"
	MetricIncome            Metric = "income"
	MetricExpenses          Metric = "expenses"
	MetricNetIncome         Metric = "net_income"
	MetricTaxRate           Metric = "tax_rate"
	MetricTotalDebt         Metric = "total_debt"
	MetricCreditScore       Metric = "credit_score"
	MetricReputation        Metric = "diplomatic_reputation"
	MetricTechnologies      Metric = "technologies_researched"
	MetricActiveLoans       Metric = "active_loans"
)

// Value returns the snapshot's value for m. ok is false for unknown metrics.
func (s TurnSnapshot) Value(m Metric) (float64, bool) {
	switch m {
	case MetricPopulation:
		return float64(s.Population), true
	case MetricMoney:
		return s.Money, true
	case MetricSatisfaction:
		return s.Satisfaction, true
	case MetricUnemploymentRate:
		return s.UnemploymentRate, true
	case MetricCrimeRate:
		return s.CrimeRate, true
	case MetricPollutionLevel:
		return s.PollutionLevel, true
	case MetricEnergyConsumption:
		return s.EnergyConsumption, true
	case MetricWaterConsumption:
		return s.WaterConsumption, true
	case MetricBuildingsCount:
		return float64(s.BuildingsCount), true
	case MetricIncome:
		return s.Income, true
	case MetricExpenses:
		return s.Expenses, true
	case MetricNetIncome:
		return s.NetIncome, true
	case MetricTaxRate:
		return s.TaxRate, true
	case MetricTotalDebt:
		return s.TotalDebt, true
	case MetricCreditScore:
		return s.CreditScore, true
	case MetricReputation:
		return s.DiplomaticReputation, true
	case MetricTechnologies:
		return float64(s.TechnologiesResearched), true
	case MetricActiveLoans:
		return float64(s.ActiveLoans), true
	default:
		return 0, false
	}
}

// SeriesOf extracts metric m from snapshots, oldest first.
// Returns nil for unknown metrics.
func SeriesOf(snapshots []TurnSnapshot, m Metric) []float64 {
	if _, ok := (TurnSnapshot{}).Value(m); !ok {
		return nil
	}
	out := make([]float64, len(snapshots))
	for i, s := range snapshots {
		out[i], _ = s.Value(m)
	}
	return out
}

// TurnsOf extracts the turn axis from snapshots, oldest first.
func TurnsOf(snapshots []TurnSnapshot) []int {
	out := make([]int, len(snapshots))
	for i, s := range snapshots {
		out[i] = s.Turn
	}
	return out
}
