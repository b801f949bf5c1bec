package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"charting/models"
	"charting/repositories"
)

// TemplateService owns the form template lifecycle: structural validation,
// single-active-per-sport enforcement, archiving and copy-on-write
// versioning for templates that already have entries.
type TemplateService struct {
	repo repositories.TemplateRepository
}

func NewTemplateService(repo repositories.TemplateRepository) *TemplateService {
	return &TemplateService{repo: repo}
}

// Validate runs the pure structural checks; exposed for pre-flight use.
func (s *TemplateService) Validate(t *models.FormTemplate) models.ValidationResult {
	return ValidateTemplate(t)
}

func (s *TemplateService) Create(ctx context.Context, t *models.FormTemplate) (*models.FormTemplate, error) {
	if res := ValidateTemplate(t); !res.IsValid {
		return nil, &ValidationError{Result: res}
	}

	now := time.Now()
	t.TemplateID = uuid.NewString()
	t.Version = 1
	t.UsageCount = 0
	t.IsArchived = false
	t.CreatedAt = now
	t.UpdatedAt = now

	if t.IsActive && t.Sport != "" {
		if err := s.deactivateSiblings(ctx, t.Sport, t.TemplateID); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Insert(ctx, t); err != nil {
		return nil, &PersistenceError{Op: "template.create", Err: err}
	}
	return t, nil
}

func (s *TemplateService) Get(ctx context.Context, id string) (*models.FormTemplate, error) {
	return s.load(ctx, id)
}

// Update applies a partial patch. A template that already has entries is
// never mutated in place: the current version is archived and the merged
// result is inserted as a fresh template with version+1 and zero usage.
func (s *TemplateService) Update(ctx context.Context, id string, patch models.TemplateUpdate, forceNewVersion bool) (*models.FormTemplate, error) {
	current, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := *current
	applyTemplatePatch(&merged, patch)

	if res := ValidateTemplate(&merged); !res.IsValid {
		return nil, &ValidationError{Result: res}
	}

	now := time.Now()
	if forceNewVersion || current.UsageCount > 0 {
		current.IsArchived = true
		current.IsActive = false
		current.UpdatedAt = now
		if err := s.repo.Replace(ctx, current); err != nil {
			return nil, &PersistenceError{Op: "template.update.archivePrior", Err: err}
		}

		merged.ID = primitive.NilObjectID
		merged.TemplateID = uuid.NewString()
		merged.Version = current.Version + 1
		merged.UsageCount = 0
		merged.IsArchived = false
		merged.CreatedAt = now
		merged.UpdatedAt = now
		if merged.IsActive && merged.Sport != "" {
			if err := s.deactivateSiblings(ctx, merged.Sport, merged.TemplateID); err != nil {
				return nil, err
			}
		}
		if err := s.repo.Insert(ctx, &merged); err != nil {
			return nil, &PersistenceError{Op: "template.update.insertNewVersion", Err: err}
		}
		return &merged, nil
	}

	if patch.IsActive != nil && *patch.IsActive && merged.Sport != "" {
		if err := s.deactivateSiblings(ctx, merged.Sport, merged.TemplateID); err != nil {
			return nil, err
		}
	}
	merged.UpdatedAt = now
	if err := s.repo.Replace(ctx, &merged); err != nil {
		return nil, &PersistenceError{Op: "template.update", Err: err}
	}
	return &merged, nil
}

// Delete hard-deletes a template; refused once any entry was recorded
// against it.
func (s *TemplateService) Delete(ctx context.Context, id string) error {
	t, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if t.UsageCount > 0 {
		return NewTemplateInUseError(id)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return &PersistenceError{Op: "template.delete", Err: err}
	}
	return nil
}

// Archive soft-deletes: the template stops accepting entries and loses its
// active flag, but stays readable for historical analytics.
func (s *TemplateService) Archive(ctx context.Context, id string) (*models.FormTemplate, error) {
	t, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	t.IsArchived = true
	t.IsActive = false
	t.UpdatedAt = time.Now()
	if err := s.repo.Replace(ctx, t); err != nil {
		return nil, &PersistenceError{Op: "template.archive", Err: err}
	}
	return t, nil
}

func (s *TemplateService) Restore(ctx context.Context, id string) (*models.FormTemplate, error) {
	t, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	t.IsArchived = false
	t.UpdatedAt = time.Now()
	if err := s.repo.Replace(ctx, t); err != nil {
		return nil, &PersistenceError{Op: "template.restore", Err: err}
	}
	return t, nil
}

// Clone copies the structure under a fresh id, inactive and unused.
func (s *TemplateService) Clone(ctx context.Context, id, newName, creatorID string) (*models.FormTemplate, error) {
	t, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	copied := *t
	copied.ID = primitive.NilObjectID
	copied.TemplateID = uuid.NewString()
	copied.Name = newName
	copied.Version = 1
	copied.UsageCount = 0
	copied.IsActive = false
	copied.IsArchived = false
	copied.CreatedBy = creatorID
	now := time.Now()
	copied.CreatedAt = now
	copied.UpdatedAt = now
	if err := s.repo.Insert(ctx, &copied); err != nil {
		return nil, &PersistenceError{Op: "template.clone", Err: err}
	}
	return &copied, nil
}

// Activate makes the template the single active one for its sport,
// deactivating siblings first. The sport comes from the explicit argument or
// the template's own tag.
func (s *TemplateService) Activate(ctx context.Context, id, sport string) (*models.FormTemplate, error) {
	t, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	scope := sport
	if scope == "" {
		scope = t.Sport
	}
	if scope == "" {
		return nil, NewMissingScopeError()
	}
	if err := s.deactivateSiblings(ctx, scope, id); err != nil {
		return nil, err
	}
	t.Sport = scope
	t.IsActive = true
	t.IsArchived = false
	t.UpdatedAt = time.Now()
	if err := s.repo.Replace(ctx, t); err != nil {
		return nil, &PersistenceError{Op: "template.activate", Err: err}
	}
	return t, nil
}

// GetActive returns the single active, non-archived template for a sport, or
// nil when none exists.
func (s *TemplateService) GetActive(ctx context.Context, sport string) (*models.FormTemplate, error) {
	candidates, err := s.repo.FindBySport(ctx, sport, true)
	if err != nil {
		return nil, &PersistenceError{Op: "template.getActive", Err: err}
	}
	if len(candidates) == 0 {
		return nil, nil
	}
	return &candidates[0], nil
}

// IncrementUsage bumps the entry counter atomically; called by the entry
// store on each new submission.
func (s *TemplateService) IncrementUsage(ctx context.Context, id string) error {
	err := s.repo.IncrementUsage(ctx, id, 1)
	if err == repositories.ErrNotFound {
		return NewNotFoundError("template", id)
	}
	if err != nil {
		return &PersistenceError{Op: "template.incrementUsage", Err: err}
	}
	return nil
}

func (s *TemplateService) List(ctx context.Context) ([]models.FormTemplate, error) {
	out, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, &PersistenceError{Op: "template.list", Err: err}
	}
	return out, nil
}

func (s *TemplateService) GetStats(ctx context.Context) (*models.TemplateStats, error) {
	all, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, &PersistenceError{Op: "template.getStats", Err: err}
	}
	stats := &models.TemplateStats{TotalTemplates: len(all)}
	for _, t := range all {
		if t.IsArchived {
			stats.ArchivedTemplates++
		} else if t.IsActive {
			stats.ActiveTemplates++
		}
		if t.UsageCount > 0 {
			stats.TemplatesInUse++
		}
		stats.TotalEntries += t.UsageCount
	}
	return stats, nil
}

func (s *TemplateService) load(ctx context.Context, id string) (*models.FormTemplate, error) {
	t, err := s.repo.Get(ctx, id)
	if err == repositories.ErrNotFound {
		return nil, NewNotFoundError("template", id)
	}
	if err != nil {
		return nil, &PersistenceError{Op: "template.get", Err: err}
	}
	return t, nil
}

// deactivateSiblings clears the active flag on every other active template
// of the sport. Best effort, no cross-document atomicity: a concurrent
// activation can briefly leave two templates active, and callers re-read to
// resolve.
func (s *TemplateService) deactivateSiblings(ctx context.Context, sport, excludeID string) error {
	siblings, err := s.repo.FindBySport(ctx, sport, true)
	if err != nil {
		return &PersistenceError{Op: "template.deactivateSiblings", Err: err}
	}
	for i := range siblings {
		if siblings[i].TemplateID == excludeID {
			continue
		}
		siblings[i].IsActive = false
		siblings[i].UpdatedAt = time.Now()
		if err := s.repo.Replace(ctx, &siblings[i]); err != nil {
			return &PersistenceError{Op: "template.deactivateSiblings", Err: err}
		}
	}
	return nil
}

func applyTemplatePatch(t *models.FormTemplate, patch models.TemplateUpdate) {
	if patch.Name != nil {
		t.Name = *patch.Name
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Sport != nil {
		t.Sport = *patch.Sport
	}
	if patch.Sections != nil {
		t.Sections = patch.Sections
	}
	if patch.IsActive != nil {
		t.IsActive = *patch.IsActive
	}
}
