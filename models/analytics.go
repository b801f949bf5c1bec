package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Trend directions.
const (
	TrendImproving = "improving"
	TrendDeclining = "declining"
	TrendStable    = "stable"
)

// SessionStats summarizes submission counts and cadence for one subject.
type SessionStats struct {
	TotalSessions               int        `bson:"total_sessions" json:"total_sessions"`
	CompletedSessions           int        `bson:"completed_sessions" json:"completed_sessions"`
	CompletionRate              float64    `bson:"completion_rate" json:"completion_rate"`
	AverageCompletionPercentage float64    `bson:"average_completion_percentage" json:"average_completion_percentage"`
	SessionsPerWeek             float64    `bson:"sessions_per_week" json:"sessions_per_week"`
	SessionsPerMonth            float64    `bson:"sessions_per_month" json:"sessions_per_month"`
	FirstSessionAt              *time.Time `bson:"first_session_at,omitempty" json:"first_session_at,omitempty"`
	LastSessionAt               *time.Time `bson:"last_session_at,omitempty" json:"last_session_at,omitempty"`
}

// StreakStats counts consecutive calendar days with at least one entry.
// CurrentStreak is zero whenever neither today nor yesterday has an entry.
type StreakStats struct {
	CurrentStreak int      `bson:"current_streak" json:"current_streak"`
	LongestStreak int      `bson:"longest_streak" json:"longest_streak"`
	EntryDates    []string `bson:"entry_dates" json:"entry_dates"` // distinct YYYY-MM-DD, newest first
}

// FieldAnalytics is the aggregation result for one field; only the measures
// matching the field's analytics type are populated.
type FieldAnalytics struct {
	FieldID        string `bson:"field_id" json:"field_id"`
	Label          string `bson:"label" json:"label"`
	AnalyticsType  string `bson:"analytics_type" json:"analytics_type"`
	Category       string `bson:"category,omitempty" json:"category,omitempty"`
	HigherIsBetter bool   `bson:"higher_is_better" json:"higher_is_better"`
	ValueCount     int    `bson:"value_count" json:"value_count"`

	Percentage       *float64 `bson:"percentage,omitempty" json:"percentage,omitempty"`
	Average          *float64 `bson:"average,omitempty" json:"average,omitempty"`
	Min              *float64 `bson:"min,omitempty" json:"min,omitempty"`
	Max              *float64 `bson:"max,omitempty" json:"max,omitempty"`
	Median           *float64 `bson:"median,omitempty" json:"median,omitempty"`
	Sum              *float64 `bson:"sum,omitempty" json:"sum,omitempty"`
	StdDev           *float64 `bson:"std_dev,omitempty" json:"std_dev,omitempty"`
	ConsistencyScore *float64 `bson:"consistency_score,omitempty" json:"consistency_score,omitempty"`

	Distribution    map[string]int     `bson:"distribution,omitempty" json:"distribution,omitempty"`
	DistributionPct map[string]float64 `bson:"distribution_pct,omitempty" json:"distribution_pct,omitempty"`
	Mode            string             `bson:"mode,omitempty" json:"mode,omitempty"`

	Trend string `bson:"trend,omitempty" json:"trend,omitempty"`

	// Score is the normalized 0-100 value used by category and overall
	// rollups; nil when no such normalization exists for the type.
	Score *float64 `bson:"score,omitempty" json:"score,omitempty"`
}

// CategoryAnalytics aggregates the fields sharing one analytics category.
type CategoryAnalytics struct {
	Category               string   `bson:"category" json:"category"`
	Score                  float64  `bson:"score" json:"score"`
	Trend                  string   `bson:"trend" json:"trend"`
	FieldCount             int      `bson:"field_count" json:"field_count"`
	TopPerformingFields    []string `bson:"top_performing_fields" json:"top_performing_fields"`
	NeedsImprovementFields []string `bson:"needs_improvement_fields" json:"needs_improvement_fields"`
}

// StudentAnalytics is the persisted snapshot for one (subject, template)
// pair. It is recomputed wholesale, never patched incrementally.
type StudentAnalytics struct {
	ID                      primitive.ObjectID           `bson:"_id,omitempty" json:"-"`
	SubjectID               string                       `bson:"subject_id" json:"subject_id"`
	FormTemplateID          string                       `bson:"form_template_id" json:"form_template_id"`
	SessionStats            SessionStats                 `bson:"session_stats" json:"session_stats"`
	Streak                  StreakStats                  `bson:"streak" json:"streak"`
	FieldAnalytics          map[string]FieldAnalytics    `bson:"field_analytics" json:"field_analytics"`
	CategoryAnalytics       map[string]CategoryAnalytics `bson:"category_analytics" json:"category_analytics"`
	OverallPerformanceScore float64                      `bson:"overall_performance_score" json:"overall_performance_score"`
	OverallTrend            string                       `bson:"overall_trend" json:"overall_trend"`
	TopStrengths            []string                     `bson:"top_strengths" json:"top_strengths"`
	AreasForImprovement     []string                     `bson:"areas_for_improvement" json:"areas_for_improvement"`
	LastCalculated          time.Time                    `bson:"last_calculated" json:"last_calculated"`
	CalculationVersion      int                          `bson:"calculation_version" json:"calculation_version"`
}
