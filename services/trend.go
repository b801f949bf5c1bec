package services

import (
	"math"

	"charting/models"
)

const (
	trendWindow = 5
	// relative change below 5% reads as stable
	trendStabilityThreshold = 0.05
)

// DetermineTrend compares the newest min(5, N) values against the remainder.
// values must be ordered newest first. higherIsBetter inverts the reading for
// metrics where a numeric decrease is the improvement.
func DetermineTrend(values []float64, higherIsBetter bool) string {
	if len(values) < 2 {
		return models.TrendStable
	}
	window := trendWindow
	if window > len(values) {
		window = len(values)
	}
	recent := mean(values[:window])
	older := values[window:]
	if len(older) == 0 {
		return models.TrendStable
	}
	olderMean := mean(older)

	if olderMean == 0 {
		if recent == 0 {
			return models.TrendStable
		}
		// any movement off a zero baseline is a change
		if (recent > 0) == higherIsBetter {
			return models.TrendImproving
		}
		return models.TrendDeclining
	}

	if math.Abs(recent-olderMean)/math.Abs(olderMean) < trendStabilityThreshold {
		return models.TrendStable
	}
	if (recent > olderMean) == higherIsBetter {
		return models.TrendImproving
	}
	return models.TrendDeclining
}

// majorityTrend takes the most common direction; ties resolve by the fixed
// precedence stable > improving > declining.
func majorityTrend(trends []string) string {
	counts := map[string]int{}
	for _, t := range trends {
		if t != "" {
			counts[t]++
		}
	}
	if len(counts) == 0 {
		return models.TrendStable
	}
	best := models.TrendStable
	bestCount := -1
	for _, t := range []string{models.TrendStable, models.TrendImproving, models.TrendDeclining} {
		if counts[t] > bestCount {
			best = t
			bestCount = counts[t]
		}
	}
	return best
}
