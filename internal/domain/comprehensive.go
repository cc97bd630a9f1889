package domain

import "time"

// NamedChart pairs a chart specification with the report it was built from.
type NamedChart struct {
	Name string
	Spec ChartSpec
}

// NamedReport is an aggregate report keyed by area name.
type NamedReport struct {
	Name   string
	Report *AggregateReport
}

// ComprehensiveReport combines all aggregate reports with their chart
// specifications and the overall city score.
type ComprehensiveReport struct {
	ID          string
	Number      int // value of the reports-generated counter after this report
	GeneratedAt time.Time
	Reports     []NamedReport
	Charts      []NamedChart
	Score       ScoreResult
}

// Report returns the aggregate report stored under name.
func (c *ComprehensiveReport) Report(name string) (*AggregateReport, bool) {
	for _, r := range c.Reports {
		if r.Name == name {
			return r.Report, true
		}
	}
	return nil, false
}

// Fields returns the report's field mapping in export order.
func (c *ComprehensiveReport) Fields() Fields {
	reports := make(Fields, len(c.Reports))
	for i, r := range c.Reports {
		reports[i] = Field{Key: r.Name, Value: r.Report.Fields()}
	}
	charts := make(Fields, len(c.Charts))
	for i, ch := range c.Charts {
		charts[i] = Field{Key: ch.Name, Value: ch.Spec}
	}
	return Fields{
		{Key: "id", Value: c.ID},
		{Key: "report_number", Value: c.Number},
		{Key: "generation_time", Value: c.GeneratedAt},
		{Key: "reports", Value: reports},
		{Key: "charts", Value: charts},
		{Key: "overall_score", Value: c.Score.Fields()},
	}
}
