package services

import (
	"math"
	"sort"
)

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// stdDev is the population standard deviation.
func stdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := mean(values)
	var sum float64
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)))
}

// consistencyScore normalizes spread to 0-100: 100 at zero deviation,
// degrading to 0 as the deviation approaches half the mean. The half-mean
// denominator is this engine's normalization choice, not a universal
// constant.
func consistencyScore(m, sd float64) float64 {
	if sd == 0 {
		return 100
	}
	if m == 0 {
		return 0
	}
	s := (1 - sd/(m/2)) * 100
	if s < 0 {
		s = 0
	}
	return math.Round(s)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
