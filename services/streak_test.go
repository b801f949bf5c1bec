package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var streakNow = time.Date(2026, 8, 29, 15, 0, 0, 0, time.UTC)

func day(offset int) time.Time {
	return streakNow.AddDate(0, 0, -offset)
}

func TestComputeStreakConsecutiveDays(t *testing.T) {
	stats := ComputeStreak([]time.Time{day(0), day(1), day(2)}, streakNow, time.UTC)
	assert.Equal(t, 3, stats.CurrentStreak)
	assert.Equal(t, 3, stats.LongestStreak)
	assert.Equal(t, []string{"2026-08-29", "2026-08-28", "2026-08-27"}, stats.EntryDates)
}

func TestComputeStreakGapResetsCurrent(t *testing.T) {
	// entry today, then a gap at yesterday, then a two-day run before it
	stats := ComputeStreak([]time.Time{day(0), day(3), day(4)}, streakNow, time.UTC)
	assert.Equal(t, 1, stats.CurrentStreak)
	assert.Equal(t, 2, stats.LongestStreak)
}

func TestComputeStreakStaleRunIsNotCarriedForward(t *testing.T) {
	// a long run that ended three days ago contributes nothing to current
	stats := ComputeStreak([]time.Time{day(3), day(4), day(5), day(6)}, streakNow, time.UTC)
	assert.Equal(t, 0, stats.CurrentStreak)
	assert.Equal(t, 4, stats.LongestStreak)
}

func TestComputeStreakYesterdayAnchorsCurrent(t *testing.T) {
	stats := ComputeStreak([]time.Time{day(1), day(2)}, streakNow, time.UTC)
	assert.Equal(t, 2, stats.CurrentStreak)
	assert.Equal(t, 2, stats.LongestStreak)
}

func TestComputeStreakMultipleEntriesPerDay(t *testing.T) {
	stats := ComputeStreak([]time.Time{
		day(0), day(0).Add(-2 * time.Hour), day(1),
	}, streakNow, time.UTC)
	assert.Equal(t, 2, stats.CurrentStreak)
	assert.Len(t, stats.EntryDates, 2)
}

func TestComputeStreakEmpty(t *testing.T) {
	stats := ComputeStreak(nil, streakNow, time.UTC)
	assert.Equal(t, 0, stats.CurrentStreak)
	assert.Equal(t, 0, stats.LongestStreak)
	assert.Empty(t, stats.EntryDates)
}
