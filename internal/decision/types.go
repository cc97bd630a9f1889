package decision

// Domain groups recommendation rules.
type Domain string

const (
	DomainPopulation Domain = "population"
	DomainEconomy    Domain = "economy"
)

// Rule identifiers, in canonical evaluation order.
const (
	RulePopulationDecline = "population_decline"
	RuleLowSatisfaction   = "low_satisfaction"
	RuleHighUnemployment  = "high_unemployment"
	RuleNegativeCashFlow  = "negative_cash_flow"
	RuleHighDebt          = "high_debt"
	RuleLowCash           = "low_cash"
)

// Thresholds configures the recommendation rules.
type Thresholds struct {
	PopulationGrowthBelow float64 `yaml:"population_growth_below"`
	SatisfactionBelow     float64 `yaml:"satisfaction_below"`
	UnemploymentAbove     float64 `yaml:"unemployment_above"`
	NetIncomeBelow        float64 `yaml:"net_income_below"`
	DebtRatioAbove        float64 `yaml:"debt_ratio_above"`
	CashBelow             float64 `yaml:"cash_below"`
}

// DefaultThresholds returns the standard rule thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		PopulationGrowthBelow: 0,
		SatisfactionBelow:     50,
		UnemploymentAbove:     0.10,
		NetIncomeBelow:        0,
		DebtRatioAbove:        2,
		CashBelow:             10000,
	}
}

// PopulationIndicators are the trend outputs the population rules read.
type PopulationIndicators struct {
	Growth          float64
	AvgSatisfaction float64
	AvgUnemployment float64
}

// EconomyIndicators are the trend outputs the economy rules read.
type EconomyIndicators struct {
	AvgNetIncome float64
	DebtRatio    float64
	Cash         float64
}

// Advisory is the evaluation of one rule.
type Advisory struct {
	Rule      string
	Domain    Domain
	Name      string
	Threshold string
	Actual    string
	Fired     bool
	Message   string
}
