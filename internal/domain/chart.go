package domain

// ChartSeries is one plotted line of a chart specification.
type ChartSeries struct {
	Name   string    `json:"name"`
	Label  string    `json:"label"`
	Values []float64 `json:"values"`
}

// ChartSpec is a declarative chart description consumed by an external
// renderer.
type ChartSpec struct {
	Kind   ChartKind       `json:"kind"`
	Title  string          `json:"title"`
	XLabel string          `json:"x_label,omitempty"`
	YLabel string          `json:"y_label,omitempty"`
	X      []int           `json:"x,omitempty"`
	Series []ChartSeries   `json:"series,omitempty"`
	Points []CategoryValue `json:"points,omitempty"`
}
