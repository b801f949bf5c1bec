package services

import (
	"fmt"

	"charting/models"
)

var knownFieldTypes = map[string]bool{
	models.FieldText:     true,
	models.FieldTextarea: true,
	models.FieldNumber:   true,
	models.FieldScale:    true,
	models.FieldBoolean:  true,
	models.FieldRadio:    true,
	models.FieldCheckbox: true,
	models.FieldDate:     true,
}

var knownAnalyticsTypes = map[string]bool{
	models.AnalyticsNone:         true,
	models.AnalyticsPercentage:   true,
	models.AnalyticsAverage:      true,
	models.AnalyticsSum:          true,
	models.AnalyticsDistribution: true,
	models.AnalyticsConsistency:  true,
	models.AnalyticsTrend:        true,
	models.AnalyticsCount:        true,
}

// analyticsCompatible reports whether an aggregation makes sense for a field
// type. Numeric aggregations are meaningless over free text and dates; sums
// and distributions are meaningless over yes/no answers.
func analyticsCompatible(fieldType, analyticsType string) bool {
	switch analyticsType {
	case models.AnalyticsNone, models.AnalyticsCount:
		return true
	case models.AnalyticsPercentage:
		return fieldType == models.FieldBoolean || fieldType == models.FieldRadio
	case models.AnalyticsAverage, models.AnalyticsSum,
		models.AnalyticsConsistency, models.AnalyticsTrend:
		return fieldType == models.FieldNumber || fieldType == models.FieldScale
	case models.AnalyticsDistribution:
		return fieldType == models.FieldRadio || fieldType == models.FieldCheckbox ||
			fieldType == models.FieldText
	}
	return false
}

// ValidateTemplate checks the structural invariants of a template definition.
// Pure, no I/O; collects every violation instead of failing on the first.
func ValidateTemplate(t *models.FormTemplate) models.ValidationResult {
	res := models.ValidationResult{Errors: []models.ValidationIssue{}, Warnings: []string{}}

	addErr := func(sectionID, fieldID, msg string) {
		res.Errors = append(res.Errors, models.ValidationIssue{
			SectionID: sectionID, FieldID: fieldID, Message: msg,
		})
	}

	if t.Name == "" {
		addErr("", "", "template name is required")
	}
	if len(t.Sections) == 0 {
		addErr("", "", "template must declare at least one section")
	}

	seenSections := map[string]bool{}
	for _, sec := range t.Sections {
		if sec.ID == "" {
			addErr(sec.ID, "", "section id is required")
			continue
		}
		if seenSections[sec.ID] {
			addErr(sec.ID, "", fmt.Sprintf("duplicate section id %q", sec.ID))
		}
		seenSections[sec.ID] = true

		if len(sec.Fields) == 0 {
			res.Warnings = append(res.Warnings, fmt.Sprintf("section %q has no fields", sec.ID))
		}

		seenFields := map[string]bool{}
		for _, f := range sec.Fields {
			if f.ID == "" {
				addErr(sec.ID, f.ID, "field id is required")
				continue
			}
			if seenFields[f.ID] {
				addErr(sec.ID, f.ID, fmt.Sprintf("duplicate field id %q in section %q", f.ID, sec.ID))
			}
			seenFields[f.ID] = true

			if !knownFieldTypes[f.Type] {
				addErr(sec.ID, f.ID, fmt.Sprintf("unknown field type %q", f.Type))
				continue
			}

			if (f.Type == models.FieldRadio || f.Type == models.FieldCheckbox) && len(f.Options) == 0 {
				addErr(sec.ID, f.ID, fmt.Sprintf("%s field must declare at least one option", f.Type))
			}

			if f.Type == models.FieldNumber || f.Type == models.FieldScale {
				if f.Validation.Min != nil && f.Validation.Max != nil && *f.Validation.Min >= *f.Validation.Max {
					addErr(sec.ID, f.ID, "min must be less than max")
				}
			}

			if f.Analytics.Enabled {
				if !knownAnalyticsTypes[f.Analytics.Type] {
					addErr(sec.ID, f.ID, fmt.Sprintf("unknown analytics type %q", f.Analytics.Type))
				} else if f.Analytics.Type == models.AnalyticsNone {
					addErr(sec.ID, f.ID, "analytics is enabled but type is none")
				} else if !analyticsCompatible(f.Type, f.Analytics.Type) {
					addErr(sec.ID, f.ID, fmt.Sprintf(
						"analytics type %q is incompatible with field type %q", f.Analytics.Type, f.Type))
				}
				if f.Analytics.Type == models.AnalyticsAverage && f.Type == models.FieldScale &&
					(f.Validation.Min == nil || f.Validation.Max == nil) {
					res.Warnings = append(res.Warnings, fmt.Sprintf(
						"scale field %q has no min/max; score normalization will use the observed range", f.ID))
				}
			}
		}
	}

	res.IsValid = len(res.Errors) == 0
	return res
}
