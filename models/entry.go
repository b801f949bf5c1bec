package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FormResponses maps section id to that section's answers. A non-repeatable
// section holds a single object of field id -> value; a repeatable section
// holds an ordered list of such objects, one per repetition. A value may be a
// bare scalar or a {"value": ...} wrapper; both shapes are accepted.
type FormResponses map[string]any

// ChartingEntry is one submission against a specific template version.
// IsComplete and CompletionPercentage are derived at write time and never
// trusted from the caller.
type ChartingEntry struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	EntryID              string             `bson:"entry_id" json:"entry_id"`
	SubjectID            string             `bson:"subject_id" json:"subject_id" validate:"required"`
	SessionID            string             `bson:"session_id,omitempty" json:"session_id,omitempty"`
	FormTemplateID       string             `bson:"form_template_id" json:"form_template_id" validate:"required"`
	Responses            FormResponses      `bson:"responses" json:"responses"`
	IsComplete           bool               `bson:"is_complete" json:"is_complete"`
	CompletionPercentage int                `bson:"completion_percentage" json:"completion_percentage"`
	SubmittedAt          time.Time          `bson:"submitted_at" json:"submitted_at"`
	CreatedAt            time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt            time.Time          `bson:"updated_at" json:"updated_at"`
}

// EntryUpdate is a partial patch; nil fields are left untouched. Patching
// Responses recomputes completion against the entry's template.
type EntryUpdate struct {
	SessionID   *string       `json:"session_id,omitempty"`
	Responses   FormResponses `json:"responses,omitempty"`
	SubmittedAt *time.Time    `json:"submitted_at,omitempty"`
}
