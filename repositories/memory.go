package repositories

import (
	"context"
	"sync"

	"charting/models"
)

// In-memory repositories backing the service tests. They honor the same
// contracts as the Mongo implementations, including ErrNotFound.

type MemoryTemplateRepository struct {
	mu        sync.RWMutex
	templates map[string]models.FormTemplate
}

func NewMemoryTemplateRepository() *MemoryTemplateRepository {
	return &MemoryTemplateRepository{templates: make(map[string]models.FormTemplate)}
}

func (r *MemoryTemplateRepository) Insert(_ context.Context, t *models.FormTemplate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.templates[t.TemplateID] = *t
	return nil
}

func (r *MemoryTemplateRepository) Get(_ context.Context, templateID string) (*models.FormTemplate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.templates[templateID]
	if !ok {
		return nil, ErrNotFound
	}
	return &t, nil
}

func (r *MemoryTemplateRepository) Replace(_ context.Context, t *models.FormTemplate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.templates[t.TemplateID]; !ok {
		return ErrNotFound
	}
	r.templates[t.TemplateID] = *t
	return nil
}

func (r *MemoryTemplateRepository) Delete(_ context.Context, templateID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.templates[templateID]; !ok {
		return ErrNotFound
	}
	delete(r.templates, templateID)
	return nil
}

func (r *MemoryTemplateRepository) FindBySport(_ context.Context, sport string, activeOnly bool) ([]models.FormTemplate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.FormTemplate
	for _, t := range r.templates {
		if t.Sport != sport {
			continue
		}
		if activeOnly && (!t.IsActive || t.IsArchived) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (r *MemoryTemplateRepository) FindAll(_ context.Context) ([]models.FormTemplate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.FormTemplate, 0, len(r.templates))
	for _, t := range r.templates {
		out = append(out, t)
	}
	return out, nil
}

func (r *MemoryTemplateRepository) IncrementUsage(_ context.Context, templateID string, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.templates[templateID]
	if !ok {
		return ErrNotFound
	}
	t.UsageCount += delta
	r.templates[templateID] = t
	return nil
}

type MemoryEntryRepository struct {
	mu      sync.RWMutex
	entries map[string]models.ChartingEntry
}

func NewMemoryEntryRepository() *MemoryEntryRepository {
	return &MemoryEntryRepository{entries: make(map[string]models.ChartingEntry)}
}

func (r *MemoryEntryRepository) Insert(_ context.Context, e *models.ChartingEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[e.EntryID] = *e
	return nil
}

func (r *MemoryEntryRepository) Get(_ context.Context, entryID string) (*models.ChartingEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[entryID]
	if !ok {
		return nil, ErrNotFound
	}
	return &e, nil
}

func (r *MemoryEntryRepository) Replace(_ context.Context, e *models.ChartingEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[e.EntryID]; !ok {
		return ErrNotFound
	}
	r.entries[e.EntryID] = *e
	return nil
}

func (r *MemoryEntryRepository) Delete(_ context.Context, entryID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[entryID]; !ok {
		return ErrNotFound
	}
	delete(r.entries, entryID)
	return nil
}

func (r *MemoryEntryRepository) Find(_ context.Context, f EntryFilter) ([]models.ChartingEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.ChartingEntry
	for _, e := range r.entries {
		if f.SubjectID != "" && e.SubjectID != f.SubjectID {
			continue
		}
		if f.SessionID != "" && e.SessionID != f.SessionID {
			continue
		}
		if f.FormTemplateID != "" && e.FormTemplateID != f.FormTemplateID {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

type MemoryAnalyticsRepository struct {
	mu    sync.RWMutex
	snaps map[string]models.StudentAnalytics
}

func NewMemoryAnalyticsRepository() *MemoryAnalyticsRepository {
	return &MemoryAnalyticsRepository{snaps: make(map[string]models.StudentAnalytics)}
}

func snapshotKey(subjectID, templateID string) string {
	return subjectID + "/" + templateID
}

func (r *MemoryAnalyticsRepository) Upsert(_ context.Context, snap *models.StudentAnalytics) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snaps[snapshotKey(snap.SubjectID, snap.FormTemplateID)] = *snap
	return nil
}

func (r *MemoryAnalyticsRepository) Get(_ context.Context, subjectID, templateID string) (*models.StudentAnalytics, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	snap, ok := r.snaps[snapshotKey(subjectID, templateID)]
	if !ok {
		return nil, ErrNotFound
	}
	return &snap, nil
}
