package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Field types supported by the form builder.
const (
	FieldText     = "text"
	FieldTextarea = "textarea"
	FieldNumber   = "number"
	FieldScale    = "scale"
	FieldBoolean  = "boolean"
	FieldRadio    = "radio"
	FieldCheckbox = "checkbox"
	FieldDate     = "date"
)

// Analytics aggregation types selectable per field.
const (
	AnalyticsNone         = "none"
	AnalyticsPercentage   = "percentage"
	AnalyticsAverage      = "average"
	AnalyticsSum          = "sum"
	AnalyticsDistribution = "distribution"
	AnalyticsConsistency  = "consistency"
	AnalyticsTrend        = "trend"
	AnalyticsCount        = "count"
)

// AnalyticsDescriptor selects which aggregation applies to a field's values
// and how to interpret "better" when computing trends.
type AnalyticsDescriptor struct {
	Enabled        bool     `bson:"enabled" json:"enabled"`
	Type           string   `bson:"type" json:"type"`
	Category       string   `bson:"category,omitempty" json:"category,omitempty"`
	DisplayName    string   `bson:"display_name,omitempty" json:"display_name,omitempty"`
	HigherIsBetter bool     `bson:"higher_is_better" json:"higher_is_better"`
	TargetValue    *float64 `bson:"target_value,omitempty" json:"target_value,omitempty"`
}

type FieldValidation struct {
	Required bool     `bson:"required" json:"required"`
	Min      *float64 `bson:"min,omitempty" json:"min,omitempty"`
	Max      *float64 `bson:"max,omitempty" json:"max,omitempty"`
}

type Field struct {
	ID         string              `bson:"field_id" json:"field_id"`
	Label      string              `bson:"label" json:"label"`
	Type       string              `bson:"type" json:"type"`
	Options    []string            `bson:"options,omitempty" json:"options,omitempty"`
	Validation FieldValidation     `bson:"validation" json:"validation"`
	Analytics  AnalyticsDescriptor `bson:"analytics" json:"analytics"`
}

// Section groups fields; a repeatable section holds N independent instances
// per entry.
type Section struct {
	ID           string  `bson:"section_id" json:"section_id"`
	Title        string  `bson:"title" json:"title"`
	IsRepeatable bool    `bson:"is_repeatable" json:"is_repeatable"`
	Fields       []Field `bson:"fields" json:"fields"`
}

// FormTemplate is a versioned form schema. At most one template per sport may
// be active at a time; a template that has entries recorded against it can
// only be archived, never hard-deleted.
type FormTemplate struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	TemplateID  string             `bson:"template_id" json:"template_id"`
	Name        string             `bson:"name" json:"name" validate:"required,min=2,max=200"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Sport       string             `bson:"sport,omitempty" json:"sport,omitempty"`
	Version     int                `bson:"version" json:"version"`
	Sections    []Section          `bson:"sections" json:"sections"`
	IsActive    bool               `bson:"is_active" json:"is_active"`
	IsArchived  bool               `bson:"is_archived" json:"is_archived"`
	UsageCount  int                `bson:"usage_count" json:"usage_count"`
	CreatedBy   string             `bson:"created_by" json:"created_by"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// TemplateUpdate is a partial patch; nil fields are left untouched.
type TemplateUpdate struct {
	Name        *string   `json:"name,omitempty"`
	Description *string   `json:"description,omitempty"`
	Sport       *string   `json:"sport,omitempty"`
	Sections    []Section `json:"sections,omitempty"`
	IsActive    *bool     `json:"is_active,omitempty"`
}

// TemplateStats is the admin dashboard rollup over the templates collection.
type TemplateStats struct {
	TotalTemplates    int `json:"total_templates"`
	ActiveTemplates   int `json:"active_templates"`
	ArchivedTemplates int `json:"archived_templates"`
	TemplatesInUse    int `json:"templates_in_use"`
	TotalEntries      int `json:"total_entries"`
}

// ValidationIssue pinpoints one violated rule.
type ValidationIssue struct {
	SectionID string `json:"section_id,omitempty"`
	FieldID   string `json:"field_id,omitempty"`
	Message   string `json:"message"`
}

// ValidationResult carries every violation found, not just the first, so the
// UI can render all problems at once.
type ValidationResult struct {
	IsValid  bool              `json:"is_valid"`
	Errors   []ValidationIssue `json:"errors"`
	Warnings []string          `json:"warnings"`
}
