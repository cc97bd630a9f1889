package domain

import (
	"fmt"
	"math"
)

// ChartKind is the declared chart type of an aggregate report.
type ChartKind string

const (
	ChartLine    ChartKind = "line"
	ChartBar     ChartKind = "bar"
	ChartPie     ChartKind = "pie"
	ChartScatter ChartKind = "scatter"
)

// Series is a named per-turn series.
type Series struct {
	Name   string
	Values []float64
}

// Scalar is a named single value derived over the whole history.
type Scalar struct {
	Name  string
	Value float64
}

// CategoryValue is one label/value pair of a categorical breakdown.
type CategoryValue struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// AggregateReport spans multiple turns. Every series is aligned to Turns
// when a turn axis is present; scalars and categories are not per-turn.
type AggregateReport struct {
	Title           string
	Turns           []int
	Series          []Series
	Scalars         []Scalar
	Categories      []CategoryValue
	ChartKind       ChartKind
	Description     string
	Recommendations []string
}

// NewAggregateReport creates an empty aggregate report.
func NewAggregateReport(title string, kind ChartKind) *AggregateReport {
	return &AggregateReport{
		Title:     title,
		ChartKind: kind,
	}
}

// SetTurns sets the turn axis. Must be called before AddSeries.
func (r *AggregateReport) SetTurns(turns []int) {
	r.Turns = append([]int(nil), turns...)
}

// HasTurnAxis reports whether the report carries a non-empty turn axis.
func (r *AggregateReport) HasTurnAxis() bool {
	return len(r.Turns) > 0
}

// AddSeries appends a named series. When a turn axis is present the series
// must have the same length; otherwise ErrSeriesLength is returned.
func (r *AggregateReport) AddSeries(name string, values []float64) error {
	if r.HasTurnAxis() && len(values) != len(r.Turns) {
		return fmt.Errorf("%w: %s has %d values, axis has %d", ErrSeriesLength, name, len(values), len(r.Turns))
	}
	clean := make([]float64, len(values))
	for i, v := range values {
		clean[i] = Finite(v)
	}
	r.Series = append(r.Series, Series{Name: name, Values: clean})
	return nil
}

// AddScalar appends a named scalar.
func (r *AggregateReport) AddScalar(name string, value float64) {
	r.Scalars = append(r.Scalars, Scalar{Name: name, Value: Finite(value)})
}

// AddCategory appends a categorical label/value pair.
func (r *AggregateReport) AddCategory(label string, value float64) {
	r.Categories = append(r.Categories, CategoryValue{Label: label, Value: Finite(value)})
}

// Finite clamps overflowed values to the largest float64 of the same sign
// and maps NaN to 0, so report data always encodes as JSON.
func Finite(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case math.IsInf(v, 1):
		return math.MaxFloat64
	case math.IsInf(v, -1):
		return -math.MaxFloat64
	}
	return v
}

// Scalar returns the scalar stored under name.
func (r *AggregateReport) Scalar(name string) (float64, bool) {
	for _, s := range r.Scalars {
		if s.Name == name {
			return s.Value, true
		}
	}
	return 0, false
}

// SeriesByName returns the series stored under name.
func (r *AggregateReport) SeriesByName(name string) ([]float64, bool) {
	for _, s := range r.Series {
		if s.Name == name {
			return s.Values, true
		}
	}
	return nil, false
}

// AlignedSeries returns the series aligned to the turn axis, in insertion
// order. Empty when there is no turn axis.
func (r *AggregateReport) AlignedSeries() []Series {
	if !r.HasTurnAxis() {
		return nil
	}
	var out []Series
	for _, s := range r.Series {
		if len(s.Values) == len(r.Turns) {
			out = append(out, s)
		}
	}
	return out
}

// Data returns the report's data mapping: turns, series, scalars and the
// category breakdown, in insertion order.
func (r *AggregateReport) Data() Fields {
	var data Fields
	if r.HasTurnAxis() {
		data = append(data, Field{Key: "turns", Value: r.Turns})
	}
	for _, s := range r.Series {
		data = append(data, Field{Key: s.Name, Value: s.Values})
	}
	for _, s := range r.Scalars {
		data = append(data, Field{Key: s.Name, Value: s.Value})
	}
	if len(r.Categories) > 0 {
		dist := make(Fields, len(r.Categories))
		for i, c := range r.Categories {
			dist[i] = Field{Key: c.Label, Value: c.Value}
		}
		data = append(data, Field{Key: "distribution", Value: dist})
	}
	return data
}

// Fields returns the report's field mapping in export order.
func (r *AggregateReport) Fields() Fields {
	recs := r.Recommendations
	if recs == nil {
		recs = []string{}
	}
	data := r.Data()
	if data == nil {
		data = Fields{}
	}
	return Fields{
		{Key: "title", Value: r.Title},
		{Key: "data", Value: data},
		{Key: "chart_type", Value: r.ChartKind},
		{Key: "description", Value: r.Description},
		{Key: "recommendations", Value: recs},
	}
}
