package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"charting/models"
)

// Template with two required and two optional fields spread over a flat and a
// repeatable section.
func drillTemplate() *models.FormTemplate {
	return &models.FormTemplate{
		Name: "Drill log",
		Sections: []models.Section{
			{
				ID: "warmup",
				Fields: []models.Field{
					{ID: "duration", Type: models.FieldNumber, Validation: models.FieldValidation{Required: true}},
					{ID: "notes", Type: models.FieldTextarea},
				},
			},
			{
				ID:           "drills",
				IsRepeatable: true,
				Fields: []models.Field{
					{ID: "name", Type: models.FieldText, Validation: models.FieldValidation{Required: true}},
					{ID: "rating", Type: models.FieldScale},
				},
			},
		},
	}
}

func TestComputeCompletionAllFilled(t *testing.T) {
	complete, pct := ComputeCompletion(drillTemplate(), models.FormResponses{
		"warmup": map[string]any{"duration": 10, "notes": "easy skate"},
		"drills": []any{map[string]any{"name": "breakaway", "rating": 4}},
	})
	assert.True(t, complete)
	assert.Equal(t, 100, pct)
}

func TestComputeCompletionRequiredOnlyGating(t *testing.T) {
	// every optional field filled, one required field empty: incomplete
	complete, pct := ComputeCompletion(drillTemplate(), models.FormResponses{
		"warmup": map[string]any{"duration": "", "notes": "easy skate"},
		"drills": []any{map[string]any{"name": "breakaway", "rating": 4}},
	})
	assert.False(t, complete)
	assert.Equal(t, 75, pct)
}

func TestComputeCompletionOptionalDragsPercentage(t *testing.T) {
	// required filled, optionals empty: complete but only half the fields
	complete, pct := ComputeCompletion(drillTemplate(), models.FormResponses{
		"warmup": map[string]any{"duration": 10},
		"drills": []any{map[string]any{"name": "breakaway"}},
	})
	assert.True(t, complete)
	assert.Equal(t, 50, pct)
}

func TestComputeCompletionRepeatableChecksFirstInstanceOnly(t *testing.T) {
	base := models.FormResponses{
		"warmup": map[string]any{"duration": 10, "notes": "n"},
		"drills": []any{
			map[string]any{"name": "breakaway", "rating": 5},
			map[string]any{}, // later repetition entirely empty
		},
	}
	complete, pct := ComputeCompletion(drillTemplate(), base)
	assert.True(t, complete)
	assert.Equal(t, 100, pct)

	// incomplete first instance is not rescued by a complete second one
	swapped := models.FormResponses{
		"warmup": map[string]any{"duration": 10, "notes": "n"},
		"drills": []any{
			map[string]any{},
			map[string]any{"name": "breakaway", "rating": 5},
		},
	}
	complete, _ = ComputeCompletion(drillTemplate(), swapped)
	assert.False(t, complete)
}

func TestComputeCompletionWrappedValues(t *testing.T) {
	complete, pct := ComputeCompletion(drillTemplate(), models.FormResponses{
		"warmup": map[string]any{
			"duration": map[string]any{"value": 10},
			"notes":    map[string]any{"value": ""},
		},
		"drills": []any{map[string]any{"name": map[string]any{"value": "one timer"}}},
	})
	assert.True(t, complete)
	assert.Equal(t, 50, pct)
}

func TestComputeCompletionDeterminism(t *testing.T) {
	resp := models.FormResponses{
		"warmup": map[string]any{"duration": 0, "notes": nil},
		"drills": []any{map[string]any{"name": "x"}},
	}
	c1, p1 := ComputeCompletion(drillTemplate(), resp)
	c2, p2 := ComputeCompletion(drillTemplate(), resp)
	assert.Equal(t, c1, c2)
	assert.Equal(t, p1, p2)
	assert.True(t, c1) // 0 counts as present
}

func TestComputeCompletionNilResponses(t *testing.T) {
	complete, pct := ComputeCompletion(drillTemplate(), nil)
	assert.False(t, complete)
	assert.Equal(t, 0, pct)
}

func TestComputeCompletionEmptyTemplate(t *testing.T) {
	complete, pct := ComputeCompletion(&models.FormTemplate{Name: "empty"}, nil)
	assert.True(t, complete)
	assert.Equal(t, 100, pct)
}
