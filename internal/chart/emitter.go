// Package chart emits declarative chart specifications from aggregate
// reports. Rendering belongs to the consumer of the specification.
package chart

import (
	"city-stats/internal/domain"
)

// DefaultMaxLineSeries caps the series plotted on a line chart.
const DefaultMaxLineSeries = 5

// Axis labels.
const (
	LabelTurn          = "Turn"
	LabelValue         = "Value"
	LabelBuildingType  = "Building Type"
	LabelBuildingCount = "Number of Buildings"
)

// Emitter converts aggregate reports into chart specifications.
type Emitter struct {
	maxLineSeries int
}

// NewEmitter creates an emitter. A non-positive cap uses DefaultMaxLineSeries.
func NewEmitter(maxLineSeries int) *Emitter {
	if maxLineSeries <= 0 {
		maxLineSeries = DefaultMaxLineSeries
	}
	return &Emitter{maxLineSeries: maxLineSeries}
}

// Emit returns the chart specification for r. Bar and pie charts plot the
// report's category breakdown; every other kind is emitted as a line chart
// of the turn-aligned series, capped in first-seen order.
func (e *Emitter) Emit(r *domain.AggregateReport) domain.ChartSpec {
	switch r.ChartKind {
	case domain.ChartBar:
		return domain.ChartSpec{
			Kind:   domain.ChartBar,
			Title:  r.Title,
			XLabel: LabelBuildingType,
			YLabel: LabelBuildingCount,
			Points: categories(r),
		}
	case domain.ChartPie:
		return domain.ChartSpec{
			Kind:   domain.ChartPie,
			Title:  r.Title,
			Points: categories(r),
		}
	default:
		return e.line(r)
	}
}

// EmitAll returns one specification per named report, in input order.
func (e *Emitter) EmitAll(reports []domain.NamedReport) []domain.NamedChart {
	out := make([]domain.NamedChart, 0, len(reports))
	for _, nr := range reports {
		out = append(out, domain.NamedChart{Name: nr.Name, Spec: e.Emit(nr.Report)})
	}
	return out
}

func (e *Emitter) line(r *domain.AggregateReport) domain.ChartSpec {
	spec := domain.ChartSpec{
		Kind:  domain.ChartLine,
		Title: r.Title,
	}
	if !r.HasTurnAxis() {
		return spec
	}

	spec.XLabel = LabelTurn
	spec.YLabel = LabelValue
	spec.X = append([]int(nil), r.Turns...)
	for _, s := range r.AlignedSeries() {
		if len(spec.Series) == e.maxLineSeries {
			break
		}
		spec.Series = append(spec.Series, domain.ChartSeries{
			Name:   s.Name,
			Label:  domain.HumanizeKey(s.Name),
			Values: append([]float64(nil), s.Values...),
		})
	}
	return spec
}

func categories(r *domain.AggregateReport) []domain.CategoryValue {
	return append([]domain.CategoryValue(nil), r.Categories...)
}
