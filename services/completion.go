package services

import (
	"math"

	"charting/models"
)

// firstInstance returns the first answer object of a section, whether the
// payload is a single object or a list of repetitions.
func firstInstance(raw any) map[string]any {
	if raw == nil {
		return nil
	}
	if list, ok := asSlice(raw); ok {
		if len(list) == 0 {
			return nil
		}
		m, _ := asMap(list[0])
		return m
	}
	m, _ := asMap(raw)
	return m
}

// ComputeCompletion derives (isComplete, completionPercentage) for responses
// against a template. Only the first repetition of a repeatable section
// counts; later repetitions never affect completion. isComplete depends on
// required fields only, while the percentage spans required and optional
// fields alike.
func ComputeCompletion(t *models.FormTemplate, responses models.FormResponses) (bool, int) {
	var totalFields, filledFields, requiredTotal, requiredFilled int

	for _, sec := range t.Sections {
		var instance map[string]any
		if responses != nil {
			instance = firstInstance(responses[sec.ID])
		}
		for _, f := range sec.Fields {
			totalFields++
			if f.Validation.Required {
				requiredTotal++
			}
			var raw any
			if instance != nil {
				raw = instance[f.ID]
			}
			if HasValue(raw) {
				filledFields++
				if f.Validation.Required {
					requiredFilled++
				}
			}
		}
	}

	if totalFields == 0 {
		return true, 100
	}
	isComplete := requiredFilled == requiredTotal
	pct := int(math.Round(100 * float64(filledFields) / float64(totalFields)))
	return isComplete, pct
}
