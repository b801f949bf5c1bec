package services

import (
	"context"
	"time"

	"charting/models"
	"charting/repositories"
)

// CalculationVersion is stamped into every snapshot and bumped whenever the
// aggregation algorithm changes, so snapshots computed under an older
// algorithm can be detected and invalidated.
const CalculationVersion = 1

// RecalculateOptions narrow the entry set feeding a snapshot.
type RecalculateOptions struct {
	DateFrom       *time.Time `json:"date_from,omitempty"`
	DateTo         *time.Time `json:"date_to,omitempty"`
	IncludePartial bool       `json:"include_partial,omitempty"`
	// Limit bounds the number of entries (newest first) feeding the
	// computation; zero means no bound.
	Limit int `json:"limit,omitempty"`
}

// AnalyticsService derives the per-field, per-category and overall
// statistics for one (subject, template) pair and persists the result as a
// wholesale-replaced snapshot.
type AnalyticsService struct {
	snapshots repositories.AnalyticsRepository
	entries   *EntryService
	templates *TemplateService

	// injected clock and day-boundary location, fixed in tests
	now func() time.Time
	loc *time.Location
}

func NewAnalyticsService(snapshots repositories.AnalyticsRepository, entries *EntryService, templates *TemplateService) *AnalyticsService {
	return &AnalyticsService{
		snapshots: snapshots,
		entries:   entries,
		templates: templates,
		now:       time.Now,
		loc:       time.Local,
	}
}

// Recalculate recomputes the snapshot from scratch and overwrites any prior
// one for the same key. A missing template fails loudly; an empty entry set
// does not, it just produces zeroed stats.
func (s *AnalyticsService) Recalculate(ctx context.Context, subjectID, templateID string, opts RecalculateOptions) (*models.StudentAnalytics, error) {
	tpl, err := s.templates.Get(ctx, templateID)
	if err != nil {
		return nil, err
	}

	entries, err := s.entries.GetBySubject(ctx, subjectID, templateID)
	if err != nil {
		return nil, err
	}
	entries = filterEntries(entries, opts)

	snap := s.compute(tpl, entries, subjectID)
	if err := s.snapshots.Upsert(ctx, snap); err != nil {
		return nil, &PersistenceError{Op: "analytics.upsert", Err: err}
	}
	return snap, nil
}

// GetCached returns the last persisted snapshot without recomputation.
func (s *AnalyticsService) GetCached(ctx context.Context, subjectID, templateID string) (*models.StudentAnalytics, error) {
	snap, err := s.snapshots.Get(ctx, subjectID, templateID)
	if err == repositories.ErrNotFound {
		return nil, NewNotFoundError("analytics snapshot", subjectID+"/"+templateID)
	}
	if err != nil {
		return nil, &PersistenceError{Op: "analytics.get", Err: err}
	}
	return snap, nil
}

// filterEntries applies the inclusive date bounds, drops incomplete entries
// unless asked otherwise, and truncates to the newest Limit entries. Input
// and output are ordered newest first.
func filterEntries(entries []models.ChartingEntry, opts RecalculateOptions) []models.ChartingEntry {
	out := make([]models.ChartingEntry, 0, len(entries))
	for _, e := range entries {
		if opts.DateFrom != nil && e.SubmittedAt.Before(*opts.DateFrom) {
			continue
		}
		if opts.DateTo != nil && e.SubmittedAt.After(*opts.DateTo) {
			continue
		}
		if !opts.IncludePartial && !e.IsComplete {
			continue
		}
		out = append(out, e)
	}
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out
}

func (s *AnalyticsService) compute(tpl *models.FormTemplate, entries []models.ChartingEntry, subjectID string) *models.StudentAnalytics {
	times := make([]time.Time, len(entries))
	for i, e := range entries {
		times[i] = e.SubmittedAt
	}

	var ordered []models.FieldAnalytics
	fieldMap := map[string]models.FieldAnalytics{}
	for _, sec := range tpl.Sections {
		for _, f := range sec.Fields {
			if !f.Analytics.Enabled || f.Analytics.Type == models.AnalyticsNone {
				continue
			}
			fa := aggregateField(f, collectFieldValues(entries, sec.ID, f.ID))
			ordered = append(ordered, fa)
			fieldMap[f.ID] = fa
		}
	}

	var scores []float64
	var trends []string
	for _, fa := range ordered {
		if fa.Score != nil {
			scores = append(scores, *fa.Score)
		}
		trends = append(trends, fa.Trend)
	}
	ranked := rankByScore(ordered)

	return &models.StudentAnalytics{
		SubjectID:               subjectID,
		FormTemplateID:          tpl.TemplateID,
		SessionStats:            buildSessionStats(entries),
		Streak:                  ComputeStreak(times, s.now(), s.loc),
		FieldAnalytics:          fieldMap,
		CategoryAnalytics:       buildCategoryAnalytics(ordered),
		OverallPerformanceScore: round1(mean(scores)),
		OverallTrend:            majorityTrend(trends),
		TopStrengths:            topLabels(ranked, 5),
		AreasForImprovement:     bottomLabels(ranked, 5),
		LastCalculated:          s.now(),
		CalculationVersion:      CalculationVersion,
	}
}
