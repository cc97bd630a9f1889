package domain

// Grade is the letter grade of a city.
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F" // no category produced a score
)

// Score categories.
const (
	ScoreCategoryPopulation = "population"
	ScoreCategoryEconomy    = "economy"
)

// CategoryScore is a 0-100 sub-score for one evaluation category.
type CategoryScore struct {
	Category string
	Score    float64
}

// ScoreResult is the aggregate city evaluation.
type ScoreResult struct {
	CategoryScores []CategoryScore
	Overall        float64
	Grade          Grade
	Description    string
}

// Fields returns the result's field mapping in export order.
func (r ScoreResult) Fields() Fields {
	scores := make(Fields, len(r.CategoryScores))
	for i, s := range r.CategoryScores {
		scores[i] = Field{Key: s.Category, Value: s.Score}
	}
	return Fields{
		{Key: "category_scores", Value: scores},
		{Key: "overall_score", Value: r.Overall},
		{Key: "grade", Value: r.Grade},
		{Key: "description", Value: r.Description},
	}
}
