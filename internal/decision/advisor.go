package decision

import "fmt"

// Advisor evaluates threshold rules against trend indicators. Rules are
// independent: every matching rule fires, in canonical order.
type Advisor struct {
	thresholds Thresholds
}

// NewAdvisor creates an advisor with the given thresholds.
func NewAdvisor(thresholds Thresholds) *Advisor {
	return &Advisor{thresholds: thresholds}
}

// Thresholds returns the configured thresholds.
func (a *Advisor) Thresholds() Thresholds {
	return a.thresholds
}

// EvaluatePopulation evaluates the population rules.
func (a *Advisor) EvaluatePopulation(in PopulationIndicators) []Advisory {
	t := a.thresholds
	return []Advisory{
		{
			Rule:      RulePopulationDecline,
			Domain:    DomainPopulation,
			Name:      "Population growth",
			Threshold: fmt.Sprintf("< %.2f", t.PopulationGrowthBelow),
			Actual:    fmt.Sprintf("%.4f", in.Growth),
			Fired:     in.Growth < t.PopulationGrowthBelow,
			Message:   "Population is declining - consider lowering taxes or improving quality of life",
		},
		{
			Rule:      RuleLowSatisfaction,
			Domain:    DomainPopulation,
			Name:      "Average satisfaction",
			Threshold: fmt.Sprintf("< %.2f", t.SatisfactionBelow),
			Actual:    fmt.Sprintf("%.2f", in.AvgSatisfaction),
			Fired:     in.AvgSatisfaction < t.SatisfactionBelow,
			Message:   "Low satisfaction - invest in public services and entertainment",
		},
		{
			Rule:      RuleHighUnemployment,
			Domain:    DomainPopulation,
			Name:      "Average unemployment",
			Threshold: fmt.Sprintf("> %.2f", t.UnemploymentAbove),
			Actual:    fmt.Sprintf("%.4f", in.AvgUnemployment),
			Fired:     in.AvgUnemployment > t.UnemploymentAbove,
			Message:   "High unemployment - build more workplaces",
		},
	}
}

// EvaluateEconomy evaluates the economy rules.
func (a *Advisor) EvaluateEconomy(in EconomyIndicators) []Advisory {
	t := a.thresholds
	return []Advisory{
		{
			Rule:      RuleNegativeCashFlow,
			Domain:    DomainEconomy,
			Name:      "Average net income",
			Threshold: fmt.Sprintf("< %.2f", t.NetIncomeBelow),
			Actual:    fmt.Sprintf("%.2f", in.AvgNetIncome),
			Fired:     in.AvgNetIncome < t.NetIncomeBelow,
			Message:   "Negative cash flow - increase revenue or cut expenses",
		},
		{
			Rule:      RuleHighDebt,
			Domain:    DomainEconomy,
			Name:      "Debt ratio",
			Threshold: fmt.Sprintf("> %.2f", t.DebtRatioAbove),
			Actual:    fmt.Sprintf("%.2f", in.DebtRatio),
			Fired:     in.DebtRatio > t.DebtRatioAbove,
			Message:   "High debt - prioritize loan repayment",
		},
		{
			Rule:      RuleLowCash,
			Domain:    DomainEconomy,
			Name:      "Latest cash",
			Threshold: fmt.Sprintf("< %.0f", t.CashBelow),
			Actual:    fmt.Sprintf("%.0f", in.Cash),
			Fired:     in.Cash < t.CashBelow,
			Message:   "Low cash reserves - raise taxes or cut spending",
		},
	}
}

// PopulationRecommendations returns the messages of the fired population rules.
func (a *Advisor) PopulationRecommendations(in PopulationIndicators) []string {
	return Recommendations(a.EvaluatePopulation(in))
}

// EconomyRecommendations returns the messages of the fired economy rules.
func (a *Advisor) EconomyRecommendations(in EconomyIndicators) []string {
	return Recommendations(a.EvaluateEconomy(in))
}

// Recommendations returns the messages of fired advisories, order preserved.
func Recommendations(advisories []Advisory) []string {
	var out []string
	for _, adv := range advisories {
		if adv.Fired {
			out = append(out, adv.Message)
		}
	}
	return out
}

// Fired returns the fired advisories, order preserved.
func Fired(advisories []Advisory) []Advisory {
	var out []Advisory
	for _, adv := range advisories {
		if adv.Fired {
			out = append(out, adv)
		}
	}
	return out
}
