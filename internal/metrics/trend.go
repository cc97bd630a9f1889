package metrics

import (
	"math"

	"city-stats/internal/domain"
)

// GrowthRate returns the first-to-last relative change of series:
// (last - first) / max(|first|, 1). Returns 0 for fewer than 2 points.
func GrowthRate(series []float64) float64 {
	if len(series) < 2 {
		return 0
	}
	first := series[0]
	last := series[len(series)-1]
	return (last - first) / math.Max(math.Abs(first), 1)
}

// Average returns the arithmetic mean of series. A singleton series yields
// its only value; an empty series yields 0.
func Average(series []float64) float64 {
	if len(series) == 0 {
		return 0
	}
	return Sum(series) / float64(len(series))
}

// Sum returns the sum of series. An overflowing total saturates at the
// largest finite float64.
func Sum(series []float64) float64 {
	total := 0.0
	for _, v := range series {
		total += v
	}
	return domain.Finite(total)
}

// Last returns the final value of series, or 0 when empty.
func Last(series []float64) float64 {
	if len(series) == 0 {
		return 0
	}
	return series[len(series)-1]
}

// DebtRatio returns latest debt over latest cash: debt[-1] / max(money[-1], 1).
// Returns 0 when either series is empty or latest cash is not positive.
func DebtRatio(debt, money []float64) float64 {
	if len(debt) == 0 || len(money) == 0 {
		return 0
	}
	cash := Last(money)
	if cash <= 0 {
		return 0
	}
	return Last(debt) / math.Max(cash, 1)
}

// Slope returns the least-squares slope of series against its index.
// Returns 0 for fewer than 2 points.
func Slope(series []float64) float64 {
	n := len(series)
	if n < 2 {
		return 0
	}
	meanX := float64(n-1) / 2
	meanY := Average(series)

	var num, den float64
	for i, y := range series {
		dx := float64(i) - meanX
		num += dx * (y - meanY)
		den += dx * dx
	}
	return num / den
}

// Forecast extrapolates series steps points past its end along the
// least-squares line. An empty series yields 0; a singleton yields its value.
func Forecast(series []float64, steps int) float64 {
	n := len(series)
	switch n {
	case 0:
		return 0
	case 1:
		return series[0]
	}
	slope := Slope(series)
	intercept := Average(series) - slope*float64(n-1)/2
	return intercept + slope*float64(n-1+steps)
}
