package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"charting/models"
)

func TestCreateTemplateDefaults(t *testing.T) {
	templates, _, _, _ := newTestServices(t)

	created := createTemplate(t, templates, goalieTemplate())
	assert.NotEmpty(t, created.TemplateID)
	assert.Equal(t, 1, created.Version)
	assert.Equal(t, 0, created.UsageCount)
	assert.False(t, created.IsArchived)
}

func TestCreateTemplateInvalid(t *testing.T) {
	templates, _, _, _ := newTestServices(t)

	_, err := templates.Create(context.Background(), &models.FormTemplate{Name: ""})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.NotEmpty(t, verr.Result.Errors)
}

func TestUpdateUnusedTemplateInPlace(t *testing.T) {
	templates, _, _, _ := newTestServices(t)
	created := createTemplate(t, templates, goalieTemplate())

	name := "Goalie sheet v2"
	updated, err := templates.Update(context.Background(), created.TemplateID, models.TemplateUpdate{Name: &name}, false)
	require.NoError(t, err)

	assert.Equal(t, created.TemplateID, updated.TemplateID)
	assert.Equal(t, 1, updated.Version)
	assert.Equal(t, "Goalie sheet v2", updated.Name)
}

func TestUpdateUsedTemplateCreatesNewVersion(t *testing.T) {
	templates, entries, _, _ := newTestServices(t)
	created := createTemplate(t, templates, goalieTemplate())
	createEntry(t, entries, created.TemplateID, "student-1", models.FormResponses{
		"shots": map[string]any{"save_made": true},
	}, streakNow)

	name := "Goalie sheet v2"
	updated, err := templates.Update(context.Background(), created.TemplateID, models.TemplateUpdate{Name: &name}, false)
	require.NoError(t, err)

	assert.NotEqual(t, created.TemplateID, updated.TemplateID)
	assert.Equal(t, 2, updated.Version)
	assert.Equal(t, 0, updated.UsageCount)

	old, err := templates.Get(context.Background(), created.TemplateID)
	require.NoError(t, err)
	assert.True(t, old.IsArchived)
	assert.False(t, old.IsActive)
	assert.Equal(t, 1, old.UsageCount)
}

func TestUpdateForceNewVersion(t *testing.T) {
	templates, _, _, _ := newTestServices(t)
	created := createTemplate(t, templates, goalieTemplate())

	updated, err := templates.Update(context.Background(), created.TemplateID, models.TemplateUpdate{}, true)
	require.NoError(t, err)
	assert.NotEqual(t, created.TemplateID, updated.TemplateID)
	assert.Equal(t, 2, updated.Version)
}

func TestDeleteTemplateInUse(t *testing.T) {
	templates, entries, _, _ := newTestServices(t)
	created := createTemplate(t, templates, goalieTemplate())
	createEntry(t, entries, created.TemplateID, "student-1", models.FormResponses{
		"shots": map[string]any{"save_made": true},
	}, streakNow)

	err := templates.Delete(context.Background(), created.TemplateID)
	var derr *DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, CodeTemplateInUse, derr.Code)

	// no mutation happened
	still, err := templates.Get(context.Background(), created.TemplateID)
	require.NoError(t, err)
	assert.False(t, still.IsArchived)
}

func TestDeleteUnusedTemplate(t *testing.T) {
	templates, _, _, _ := newTestServices(t)
	created := createTemplate(t, templates, goalieTemplate())

	require.NoError(t, templates.Delete(context.Background(), created.TemplateID))
	_, err := templates.Get(context.Background(), created.TemplateID)
	var derr *DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, CodeNotFound, derr.Code)
}

func TestActivateDeactivatesSiblings(t *testing.T) {
	templates, _, _, _ := newTestServices(t)

	a := goalieTemplate()
	a.IsActive = true
	tplA := createTemplate(t, templates, a)
	tplB := createTemplate(t, templates, goalieTemplate())

	_, err := templates.Activate(context.Background(), tplB.TemplateID, "")
	require.NoError(t, err)

	reloadedA, err := templates.Get(context.Background(), tplA.TemplateID)
	require.NoError(t, err)
	reloadedB, err := templates.Get(context.Background(), tplB.TemplateID)
	require.NoError(t, err)
	assert.False(t, reloadedA.IsActive)
	assert.True(t, reloadedB.IsActive)
}

func TestActivateWithoutScope(t *testing.T) {
	templates, _, _, _ := newTestServices(t)
	tpl := goalieTemplate()
	tpl.Sport = ""
	created := createTemplate(t, templates, tpl)

	_, err := templates.Activate(context.Background(), created.TemplateID, "")
	var derr *DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, CodeMissingScope, derr.Code)
}

func TestGetActive(t *testing.T) {
	templates, _, _, _ := newTestServices(t)

	none, err := templates.GetActive(context.Background(), "hockey")
	require.NoError(t, err)
	assert.Nil(t, none)

	tpl := goalieTemplate()
	tpl.IsActive = true
	created := createTemplate(t, templates, tpl)

	active, err := templates.GetActive(context.Background(), "hockey")
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, created.TemplateID, active.TemplateID)

	// archived templates are never returned as active
	_, err = templates.Archive(context.Background(), created.TemplateID)
	require.NoError(t, err)
	none, err = templates.GetActive(context.Background(), "hockey")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestArchiveRestore(t *testing.T) {
	templates, _, _, _ := newTestServices(t)
	tpl := goalieTemplate()
	tpl.IsActive = true
	created := createTemplate(t, templates, tpl)

	archived, err := templates.Archive(context.Background(), created.TemplateID)
	require.NoError(t, err)
	assert.True(t, archived.IsArchived)
	assert.False(t, archived.IsActive) // archiving drops the active flag

	restored, err := templates.Restore(context.Background(), created.TemplateID)
	require.NoError(t, err)
	assert.False(t, restored.IsArchived)
	assert.False(t, restored.IsActive)
}

func TestCloneTemplate(t *testing.T) {
	templates, entries, _, _ := newTestServices(t)
	tpl := goalieTemplate()
	tpl.IsActive = true
	created := createTemplate(t, templates, tpl)
	createEntry(t, entries, created.TemplateID, "student-1", models.FormResponses{
		"shots": map[string]any{"save_made": true},
	}, streakNow)

	clone, err := templates.Clone(context.Background(), created.TemplateID, "Copy of sheet", "coach-2")
	require.NoError(t, err)
	assert.NotEqual(t, created.TemplateID, clone.TemplateID)
	assert.Equal(t, "Copy of sheet", clone.Name)
	assert.Equal(t, 1, clone.Version)
	assert.Equal(t, 0, clone.UsageCount)
	assert.False(t, clone.IsActive)
	assert.Equal(t, "coach-2", clone.CreatedBy)
	assert.Len(t, clone.Sections, len(created.Sections))
}

func TestTemplateStats(t *testing.T) {
	templates, entries, _, _ := newTestServices(t)

	active := goalieTemplate()
	active.IsActive = true
	tplA := createTemplate(t, templates, active)
	createEntry(t, entries, tplA.TemplateID, "student-1", models.FormResponses{
		"shots": map[string]any{"save_made": true},
	}, streakNow)
	createEntry(t, entries, tplA.TemplateID, "student-2", models.FormResponses{
		"shots": map[string]any{"save_made": false},
	}, streakNow)

	tplB := createTemplate(t, templates, goalieTemplate())
	_, err := templates.Archive(context.Background(), tplB.TemplateID)
	require.NoError(t, err)

	stats, err := templates.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalTemplates)
	assert.Equal(t, 1, stats.ActiveTemplates)
	assert.Equal(t, 1, stats.ArchivedTemplates)
	assert.Equal(t, 1, stats.TemplatesInUse)
	assert.Equal(t, 2, stats.TotalEntries)
}
