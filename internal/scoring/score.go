// Package scoring maps aggregate metrics to category sub-scores, an
// overall score, a letter grade and a narrative.
package scoring

import (
	"math"

	"city-stats/internal/domain"
)

// Breakpoints are the minimum overall scores for each letter grade.
type Breakpoints struct {
	A float64 `yaml:"a"`
	B float64 `yaml:"b"`
	C float64 `yaml:"c"`
}

// DefaultBreakpoints returns A >= 80, B >= 60, C >= 40, otherwise D.
func DefaultBreakpoints() Breakpoints {
	return Breakpoints{A: 80, B: 60, C: 40}
}

// Narrative brackets, highest first.
var narratives = []struct {
	min  float64
	text string
}{
	{90, "Excellently managed city - a model to follow"},
	{80, "Very well developing city"},
	{70, "Well managed city with growth potential"},
	{60, "City with an average level of development"},
	{50, "City requiring improvement in several areas"},
	{40, "City with serious problems to solve"},
}

const crisisNarrative = "City in crisis - immediate action required"

// Calculator computes score results.
type Calculator struct {
	breakpoints Breakpoints
}

// NewCalculator creates a calculator with the given grade breakpoints.
func NewCalculator(breakpoints Breakpoints) *Calculator {
	return &Calculator{breakpoints: breakpoints}
}

// Clamp limits v to [0, 100].
func Clamp(v float64) float64 {
	return math.Min(100, math.Max(0, v))
}

// PopulationScore scores average satisfaction.
func PopulationScore(avgSatisfaction float64) float64 {
	return Clamp(avgSatisfaction)
}

// EconomyScore scores average net income: 50 + avg/1000.
func EconomyScore(avgNetIncome float64) float64 {
	return Clamp(50 + avgNetIncome/1000)
}

// FromReports scores every category whose aggregate metric is present:
// population from avg_satisfaction, economy from avg_net_income. Nil
// reports and missing metrics are skipped.
func (c *Calculator) FromReports(population, economic *domain.AggregateReport) domain.ScoreResult {
	var scores []domain.CategoryScore
	if population != nil {
		if v, ok := population.Scalar("avg_satisfaction"); ok {
			scores = append(scores, domain.CategoryScore{Category: domain.ScoreCategoryPopulation, Score: PopulationScore(v)})
		}
	}
	if economic != nil {
		if v, ok := economic.Scalar("avg_net_income"); ok {
			scores = append(scores, domain.CategoryScore{Category: domain.ScoreCategoryEconomy, Score: EconomyScore(v)})
		}
	}
	return c.Calculate(scores)
}

// Calculate averages the present category scores (each clamped to
// [0, 100]) and derives grade and narrative. With no scores the result is
// overall 0 and grade F.
func (c *Calculator) Calculate(scores []domain.CategoryScore) domain.ScoreResult {
	if len(scores) == 0 {
		return domain.ScoreResult{
			Overall:     0,
			Grade:       domain.GradeF,
			Description: Describe(0),
		}
	}

	clamped := make([]domain.CategoryScore, len(scores))
	total := 0.0
	for i, s := range scores {
		clamped[i] = domain.CategoryScore{Category: s.Category, Score: Clamp(s.Score)}
		total += clamped[i].Score
	}
	overall := total / float64(len(clamped))

	return domain.ScoreResult{
		CategoryScores: clamped,
		Overall:        overall,
		Grade:          c.Grade(overall),
		Description:    Describe(overall),
	}
}

// Grade maps an overall score to a letter grade.
func (c *Calculator) Grade(overall float64) domain.Grade {
	switch {
	case overall >= c.breakpoints.A:
		return domain.GradeA
	case overall >= c.breakpoints.B:
		return domain.GradeB
	case overall >= c.breakpoints.C:
		return domain.GradeC
	default:
		return domain.GradeD
	}
}

// Describe returns the fixed narrative for an overall score.
func Describe(overall float64) string {
	for _, n := range narratives {
		if overall >= n.min {
			return n.text
		}
	}
	return crisisNarrative
}
