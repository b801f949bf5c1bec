package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"charting/models"
	"charting/repositories"
)

func newTestServices(t *testing.T) (*TemplateService, *EntryService, *AnalyticsService, *repositories.MemoryAnalyticsRepository) {
	t.Helper()
	templateRepo := repositories.NewMemoryTemplateRepository()
	entryRepo := repositories.NewMemoryEntryRepository()
	analyticsRepo := repositories.NewMemoryAnalyticsRepository()

	templates := NewTemplateService(templateRepo)
	entries := NewEntryService(entryRepo, templates)
	analytics := NewAnalyticsService(analyticsRepo, entries, templates)
	return templates, entries, analytics, analyticsRepo
}

// goalieTemplate is a minimal charting sheet: one required yes/no field with
// percentage analytics and one optional numeric field with average analytics.
func goalieTemplate() *models.FormTemplate {
	return &models.FormTemplate{
		Name:  "Goalie session sheet",
		Sport: "hockey",
		Sections: []models.Section{
			{
				ID:    "shots",
				Title: "Shots",
				Fields: []models.Field{
					{
						ID:         "save_made",
						Label:      "Save made",
						Type:       models.FieldBoolean,
						Validation: models.FieldValidation{Required: true},
						Analytics: models.AnalyticsDescriptor{
							Enabled:        true,
							Type:           models.AnalyticsPercentage,
							Category:       "goaltending",
							HigherIsBetter: true,
						},
					},
					{
						ID:    "shot_count",
						Label: "Shots faced",
						Type:  models.FieldNumber,
						Analytics: models.AnalyticsDescriptor{
							Enabled:        true,
							Type:           models.AnalyticsAverage,
							Category:       "goaltending",
							HigherIsBetter: true,
						},
					},
				},
			},
		},
	}
}

func createTemplate(t *testing.T, svc *TemplateService, tpl *models.FormTemplate) *models.FormTemplate {
	t.Helper()
	created, err := svc.Create(context.Background(), tpl)
	require.NoError(t, err)
	return created
}

func createEntry(t *testing.T, svc *EntryService, templateID, subjectID string, responses models.FormResponses, submittedAt time.Time) *models.ChartingEntry {
	t.Helper()
	entry, err := svc.Create(context.Background(), &models.ChartingEntry{
		SubjectID:      subjectID,
		FormTemplateID: templateID,
		Responses:      responses,
		SubmittedAt:    submittedAt,
	})
	require.NoError(t, err)
	return entry
}
