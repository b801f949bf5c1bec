package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"charting/models"
)

// fixAnalyticsClock pins the service to the streak fixture date so day-based
// assertions are deterministic.
func fixAnalyticsClock(svc *AnalyticsService) {
	svc.now = func() time.Time { return streakNow }
	svc.loc = time.UTC
}

// seedGoalieHistory records five daily sessions for student-1: saves
// [true, true, false, true, true] oldest to newest, shot counts 10, 20 and 30
// on the first, third and fifth day.
func seedGoalieHistory(t *testing.T, templates *TemplateService, entries *EntryService) *models.FormTemplate {
	t.Helper()
	tpl := createTemplate(t, templates, goalieTemplate())

	saves := []bool{true, true, false, true, true}
	counts := map[int]int{0: 10, 2: 20, 4: 30}
	for i, save := range saves {
		resp := map[string]any{"save_made": save}
		if c, ok := counts[i]; ok {
			resp["shot_count"] = c
		}
		createEntry(t, entries, tpl.TemplateID, "student-1",
			models.FormResponses{"shots": resp}, day(4-i))
	}
	return tpl
}

func TestRecalculateEndToEnd(t *testing.T) {
	templates, entries, analytics, _ := newTestServices(t)
	fixAnalyticsClock(analytics)
	tpl := seedGoalieHistory(t, templates, entries)

	snap, err := analytics.Recalculate(context.Background(), "student-1", tpl.TemplateID, RecalculateOptions{})
	require.NoError(t, err)

	assert.Equal(t, "student-1", snap.SubjectID)
	assert.Equal(t, tpl.TemplateID, snap.FormTemplateID)
	assert.Equal(t, CalculationVersion, snap.CalculationVersion)
	assert.Equal(t, streakNow, snap.LastCalculated)

	saves := snap.FieldAnalytics["save_made"]
	require.NotNil(t, saves.Percentage)
	assert.Equal(t, 80.0, *saves.Percentage)
	assert.Equal(t, 5, saves.ValueCount)

	shots := snap.FieldAnalytics["shot_count"]
	require.NotNil(t, shots.Average)
	assert.Equal(t, 20.0, *shots.Average)
	assert.Equal(t, 10.0, *shots.Min)
	assert.Equal(t, 30.0, *shots.Max)
	require.NotNil(t, shots.Score)
	assert.Equal(t, 50.0, *shots.Score)

	assert.Equal(t, 65.0, snap.OverallPerformanceScore)
	assert.Equal(t, models.TrendStable, snap.OverallTrend)
	assert.Equal(t, []string{"Save made", "Shots faced"}, snap.TopStrengths)
	assert.Equal(t, []string{"Shots faced", "Save made"}, snap.AreasForImprovement)

	goal := snap.CategoryAnalytics["goaltending"]
	assert.Equal(t, 65.0, goal.Score)
	assert.Equal(t, 2, goal.FieldCount)
	assert.Equal(t, models.TrendStable, goal.Trend)

	assert.Equal(t, 5, snap.SessionStats.TotalSessions)
	assert.Equal(t, 100.0, snap.SessionStats.CompletionRate)
	assert.Equal(t, 80.0, snap.SessionStats.AverageCompletionPercentage)
	assert.Equal(t, 8.75, snap.SessionStats.SessionsPerWeek)

	assert.Equal(t, 5, snap.Streak.CurrentStreak)
	assert.Equal(t, 5, snap.Streak.LongestStreak)
}

func TestGetCachedRoundTrip(t *testing.T) {
	templates, entries, analytics, _ := newTestServices(t)
	fixAnalyticsClock(analytics)
	tpl := seedGoalieHistory(t, templates, entries)

	_, err := analytics.GetCached(context.Background(), "student-1", tpl.TemplateID)
	var derr *DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, CodeNotFound, derr.Code)

	snap, err := analytics.Recalculate(context.Background(), "student-1", tpl.TemplateID, RecalculateOptions{})
	require.NoError(t, err)

	cached, err := analytics.GetCached(context.Background(), "student-1", tpl.TemplateID)
	require.NoError(t, err)
	assert.Equal(t, snap.OverallPerformanceScore, cached.OverallPerformanceScore)
	assert.Equal(t, snap.SessionStats.TotalSessions, cached.SessionStats.TotalSessions)
}

func TestRecalculateOverwritesSnapshot(t *testing.T) {
	templates, entries, analytics, _ := newTestServices(t)
	fixAnalyticsClock(analytics)
	tpl := seedGoalieHistory(t, templates, entries)

	_, err := analytics.Recalculate(context.Background(), "student-1", tpl.TemplateID, RecalculateOptions{})
	require.NoError(t, err)

	createEntry(t, entries, tpl.TemplateID, "student-1", models.FormResponses{
		"shots": map[string]any{"save_made": true},
	}, streakNow.Add(time.Hour))

	_, err = analytics.Recalculate(context.Background(), "student-1", tpl.TemplateID, RecalculateOptions{})
	require.NoError(t, err)

	cached, err := analytics.GetCached(context.Background(), "student-1", tpl.TemplateID)
	require.NoError(t, err)
	assert.Equal(t, 6, cached.SessionStats.TotalSessions)
}

func TestRecalculateUnknownTemplate(t *testing.T) {
	_, _, analytics, _ := newTestServices(t)

	_, err := analytics.Recalculate(context.Background(), "student-1", "missing", RecalculateOptions{})
	var derr *DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, CodeNotFound, derr.Code)
}

func TestRecalculateNoEntries(t *testing.T) {
	templates, _, analytics, _ := newTestServices(t)
	fixAnalyticsClock(analytics)
	tpl := createTemplate(t, templates, goalieTemplate())

	snap, err := analytics.Recalculate(context.Background(), "student-1", tpl.TemplateID, RecalculateOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, snap.SessionStats.TotalSessions)
	assert.Equal(t, 0, snap.Streak.CurrentStreak)
	assert.Equal(t, 0.0, snap.OverallPerformanceScore)
	assert.Equal(t, models.TrendStable, snap.OverallTrend)
	assert.Empty(t, snap.TopStrengths)
}

func TestRecalculateExcludesPartialByDefault(t *testing.T) {
	templates, entries, analytics, _ := newTestServices(t)
	fixAnalyticsClock(analytics)
	tpl := createTemplate(t, templates, goalieTemplate())

	createEntry(t, entries, tpl.TemplateID, "student-1", models.FormResponses{
		"shots": map[string]any{"save_made": true},
	}, day(1))
	createEntry(t, entries, tpl.TemplateID, "student-1", models.FormResponses{
		"shots": map[string]any{}, // required field missing: partial
	}, day(0))

	snap, err := analytics.Recalculate(context.Background(), "student-1", tpl.TemplateID, RecalculateOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, snap.SessionStats.TotalSessions)

	snap, err = analytics.Recalculate(context.Background(), "student-1", tpl.TemplateID, RecalculateOptions{IncludePartial: true})
	require.NoError(t, err)
	assert.Equal(t, 2, snap.SessionStats.TotalSessions)
}

func TestRecalculateDateRangeInclusive(t *testing.T) {
	templates, entries, analytics, _ := newTestServices(t)
	fixAnalyticsClock(analytics)
	tpl := seedGoalieHistory(t, templates, entries)

	from := day(2)
	to := day(0)
	snap, err := analytics.Recalculate(context.Background(), "student-1", tpl.TemplateID, RecalculateOptions{
		DateFrom: &from,
		DateTo:   &to,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, snap.SessionStats.TotalSessions)
	assert.Equal(t, day(2), *snap.SessionStats.FirstSessionAt)
	assert.Equal(t, day(0), *snap.SessionStats.LastSessionAt)
}

func TestRecalculateLimitKeepsNewest(t *testing.T) {
	templates, entries, analytics, _ := newTestServices(t)
	fixAnalyticsClock(analytics)
	tpl := seedGoalieHistory(t, templates, entries)

	snap, err := analytics.Recalculate(context.Background(), "student-1", tpl.TemplateID, RecalculateOptions{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, snap.SessionStats.TotalSessions)
	assert.Equal(t, day(1), *snap.SessionStats.FirstSessionAt)
	assert.Equal(t, day(0), *snap.SessionStats.LastSessionAt)
}

func TestRecalculateIsolatedPerSubject(t *testing.T) {
	templates, entries, analytics, _ := newTestServices(t)
	fixAnalyticsClock(analytics)
	tpl := seedGoalieHistory(t, templates, entries)
	createEntry(t, entries, tpl.TemplateID, "student-2", models.FormResponses{
		"shots": map[string]any{"save_made": false},
	}, day(0))

	snap, err := analytics.Recalculate(context.Background(), "student-2", tpl.TemplateID, RecalculateOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, snap.SessionStats.TotalSessions)
	saves := snap.FieldAnalytics["save_made"]
	require.NotNil(t, saves.Percentage)
	assert.Equal(t, 0.0, *saves.Percentage)
}
