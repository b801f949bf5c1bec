package services

import (
	"fmt"
	"math"
	"sort"

	"charting/models"
)

// instancesOf returns every answer object of a section payload: one for a
// flat object, all repetitions for a list.
func instancesOf(raw any) []map[string]any {
	if raw == nil {
		return nil
	}
	if list, ok := asSlice(raw); ok {
		out := make([]map[string]any, 0, len(list))
		for _, item := range list {
			if m, ok := asMap(item); ok {
				out = append(out, m)
			}
		}
		return out
	}
	if m, ok := asMap(raw); ok {
		return []map[string]any{m}
	}
	return nil
}

// collectFieldValues gathers every present value of a field across entries.
// Entries must be ordered newest first; unlike the completion check, every
// repetition of a repeatable section contributes.
func collectFieldValues(entries []models.ChartingEntry, sectionID, fieldID string) []any {
	var values []any
	for _, e := range entries {
		if e.Responses == nil {
			continue
		}
		for _, instance := range instancesOf(e.Responses[sectionID]) {
			raw, ok := instance[fieldID]
			if !ok || !HasValue(raw) {
				continue
			}
			values = append(values, UnwrapValue(raw))
		}
	}
	return values
}

func fieldLabel(f models.Field) string {
	if f.Analytics.DisplayName != "" {
		return f.Analytics.DisplayName
	}
	return f.Label
}

func collectNumbers(values []any) []float64 {
	nums := make([]float64, 0, len(values))
	for _, v := range values {
		if n, ok := toFloat(v); ok {
			nums = append(nums, n)
		}
	}
	return nums
}

func minMax(nums []float64) (float64, float64) {
	lo, hi := nums[0], nums[0]
	for _, n := range nums[1:] {
		if n < lo {
			lo = n
		}
		if n > hi {
			hi = n
		}
	}
	return lo, hi
}

func floatPtr(v float64) *float64 { return &v }

// normalizedAverageScore maps an average onto 0-100 using the field's
// declared min/max bounds, falling back to the observed range. Returns nil
// when no usable range exists.
func normalizedAverageScore(f models.Field, avg float64, nums []float64) *float64 {
	var lo, hi float64
	switch {
	case f.Validation.Min != nil && f.Validation.Max != nil && *f.Validation.Max > *f.Validation.Min:
		lo, hi = *f.Validation.Min, *f.Validation.Max
	case len(nums) > 0:
		lo, hi = minMax(nums)
		if hi <= lo {
			return nil
		}
	default:
		return nil
	}
	score := (avg - lo) / (hi - lo) * 100
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return floatPtr(math.Round(score))
}

// aggregateField computes the measures selected by the field's analytics
// descriptor over its collected values (newest first).
func aggregateField(f models.Field, values []any) models.FieldAnalytics {
	fa := models.FieldAnalytics{
		FieldID:        f.ID,
		Label:          fieldLabel(f),
		AnalyticsType:  f.Analytics.Type,
		Category:       f.Analytics.Category,
		HigherIsBetter: f.Analytics.HigherIsBetter,
		ValueCount:     len(values),
	}
	if len(values) == 0 {
		return fa
	}

	switch f.Analytics.Type {
	case models.AnalyticsPercentage:
		truthy := 0
		series := make([]float64, len(values))
		for i, v := range values {
			if isTruthy(v) {
				truthy++
				series[i] = 1
			}
		}
		pct := math.Round(100 * float64(truthy) / float64(len(values)))
		fa.Percentage = floatPtr(pct)
		fa.Trend = DetermineTrend(series, f.Analytics.HigherIsBetter)
		fa.Score = floatPtr(pct)

	case models.AnalyticsAverage:
		nums := collectNumbers(values)
		if len(nums) == 0 {
			return fa
		}
		avg := mean(nums)
		lo, hi := minMax(nums)
		fa.Average = floatPtr(round2(avg))
		fa.Min = floatPtr(lo)
		fa.Max = floatPtr(hi)
		fa.Median = floatPtr(median(nums))
		fa.Trend = DetermineTrend(nums, f.Analytics.HigherIsBetter)
		fa.Score = normalizedAverageScore(f, avg, nums)

	case models.AnalyticsSum:
		nums := collectNumbers(values)
		var total float64
		for _, n := range nums {
			total += n
		}
		fa.Sum = floatPtr(round2(total))

	case models.AnalyticsDistribution:
		fa.Distribution, fa.DistributionPct, fa.Mode = distribute(values)

	case models.AnalyticsConsistency:
		nums := collectNumbers(values)
		if len(nums) == 0 {
			return fa
		}
		m := mean(nums)
		sd := stdDev(nums)
		score := consistencyScore(m, sd)
		fa.Average = floatPtr(round2(m))
		fa.StdDev = floatPtr(round2(sd))
		fa.ConsistencyScore = floatPtr(score)
		fa.Score = floatPtr(score)

	case models.AnalyticsTrend:
		nums := collectNumbers(values)
		if len(nums) == 0 {
			return fa
		}
		fa.Average = floatPtr(round2(mean(nums)))
		fa.Trend = DetermineTrend(nums, f.Analytics.HigherIsBetter)

	case models.AnalyticsCount:
		// ValueCount already carries the answer
	}

	return fa
}

// distribute flattens list answers (checkbox) and counts occurrences per
// distinct option. Mode ties resolve to the lexicographically smallest
// option.
func distribute(values []any) (map[string]int, map[string]float64, string) {
	counts := map[string]int{}
	total := 0
	for _, v := range values {
		if list, ok := asSlice(v); ok {
			for _, item := range list {
				counts[fmt.Sprintf("%v", UnwrapValue(item))]++
				total++
			}
			continue
		}
		counts[fmt.Sprintf("%v", v)]++
		total++
	}
	pcts := make(map[string]float64, len(counts))
	mode := ""
	best := -1
	options := make([]string, 0, len(counts))
	for opt := range counts {
		options = append(options, opt)
	}
	sort.Strings(options)
	for _, opt := range options {
		pcts[opt] = round1(100 * float64(counts[opt]) / float64(total))
		if counts[opt] > best {
			best = counts[opt]
			mode = opt
		}
	}
	return counts, pcts, mode
}

// rankByScore orders fields by normalized score descending, keeping template
// order for ties; fields without a score are dropped.
func rankByScore(fields []models.FieldAnalytics) []models.FieldAnalytics {
	scored := make([]models.FieldAnalytics, 0, len(fields))
	for _, f := range fields {
		if f.Score != nil {
			scored = append(scored, f)
		}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return *scored[i].Score > *scored[j].Score
	})
	return scored
}

func topLabels(ranked []models.FieldAnalytics, n int) []string {
	out := []string{}
	for i := 0; i < n && i < len(ranked); i++ {
		out = append(out, ranked[i].Label)
	}
	return out
}

func bottomLabels(ranked []models.FieldAnalytics, n int) []string {
	out := []string{}
	for i := len(ranked) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, ranked[i].Label)
	}
	return out
}

// buildCategoryAnalytics groups fields by their declared category. The
// category score averages member scores; members lacking a derivable 0-100
// score are excluded from it (no proxy score is substituted).
func buildCategoryAnalytics(ordered []models.FieldAnalytics) map[string]models.CategoryAnalytics {
	grouped := map[string][]models.FieldAnalytics{}
	var order []string
	for _, fa := range ordered {
		if fa.Category == "" {
			continue
		}
		if _, ok := grouped[fa.Category]; !ok {
			order = append(order, fa.Category)
		}
		grouped[fa.Category] = append(grouped[fa.Category], fa)
	}

	out := make(map[string]models.CategoryAnalytics, len(order))
	for _, cat := range order {
		members := grouped[cat]
		var scores []float64
		var trends []string
		for _, m := range members {
			if m.Score != nil {
				scores = append(scores, *m.Score)
			}
			trends = append(trends, m.Trend)
		}
		ranked := rankByScore(members)
		out[cat] = models.CategoryAnalytics{
			Category:               cat,
			Score:                  round1(mean(scores)),
			Trend:                  majorityTrend(trends),
			FieldCount:             len(members),
			TopPerformingFields:    topLabels(ranked, 3),
			NeedsImprovementFields: bottomLabels(ranked, 3),
		}
	}
	return out
}

// buildSessionStats summarizes counts, completion and cadence. Entries must
// be ordered newest first. A day span under one day is clamped to one so a
// single-date history cannot divide by zero.
func buildSessionStats(entries []models.ChartingEntry) models.SessionStats {
	stats := models.SessionStats{TotalSessions: len(entries)}
	if len(entries) == 0 {
		return stats
	}

	var completionSum float64
	for _, e := range entries {
		if e.IsComplete {
			stats.CompletedSessions++
		}
		completionSum += float64(e.CompletionPercentage)
	}
	stats.CompletionRate = round1(100 * float64(stats.CompletedSessions) / float64(len(entries)))
	stats.AverageCompletionPercentage = round1(completionSum / float64(len(entries)))

	newest := entries[0].SubmittedAt
	oldest := entries[len(entries)-1].SubmittedAt
	stats.LastSessionAt = &newest
	stats.FirstSessionAt = &oldest

	spanDays := newest.Sub(oldest).Hours() / 24
	if spanDays < 1 {
		spanDays = 1
	}
	stats.SessionsPerWeek = round2(float64(len(entries)) / spanDays * 7)
	stats.SessionsPerMonth = round2(float64(len(entries)) / spanDays * 30)
	return stats
}
