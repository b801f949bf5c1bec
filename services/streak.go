package services

import (
	"sort"
	"time"

	"charting/models"
)

const dayFormat = "2006-01-02"

// ComputeStreak collapses entry timestamps to distinct calendar days in loc
// and walks them newest first. The current streak must include today or
// yesterday; any gap between now and the most recent entry resets it to zero,
// so a stale run is never carried forward. The longest streak scans the whole
// history.
func ComputeStreak(times []time.Time, now time.Time, loc *time.Location) models.StreakStats {
	seen := map[string]bool{}
	for _, t := range times {
		seen[t.In(loc).Format(dayFormat)] = true
	}
	if len(seen) == 0 {
		return models.StreakStats{EntryDates: []string{}}
	}

	days := make([]time.Time, 0, len(seen))
	dates := make([]string, 0, len(seen))
	for key := range seen {
		d, err := time.Parse(dayFormat, key)
		if err != nil {
			continue
		}
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })
	for _, d := range days {
		dates = append(dates, d.Format(dayFormat))
	}

	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i-1].AddDate(0, 0, -1).Equal(days[i]) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	today, _ := time.Parse(dayFormat, now.In(loc).Format(dayFormat))
	start := today
	if !seen[start.Format(dayFormat)] {
		start = today.AddDate(0, 0, -1)
	}
	current := 0
	for seen[start.Format(dayFormat)] {
		current++
		start = start.AddDate(0, 0, -1)
	}

	return models.StreakStats{
		CurrentStreak: current,
		LongestStreak: longest,
		EntryDates:    dates,
	}
}
