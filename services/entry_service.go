package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"charting/models"
	"charting/repositories"
)

// EntryService owns submissions. Completion state is always derived here at
// write time; a caller-supplied value is ignored.
type EntryService struct {
	repo      repositories.EntryRepository
	templates *TemplateService
}

func NewEntryService(repo repositories.EntryRepository, templates *TemplateService) *EntryService {
	return &EntryService{repo: repo, templates: templates}
}

func (s *EntryService) Create(ctx context.Context, e *models.ChartingEntry) (*models.ChartingEntry, error) {
	tpl, err := s.templates.Get(ctx, e.FormTemplateID)
	if err != nil {
		return nil, err
	}
	if tpl.IsArchived {
		return nil, NewTemplateArchivedError(tpl.TemplateID)
	}

	now := time.Now()
	e.EntryID = uuid.NewString()
	if e.SubmittedAt.IsZero() {
		e.SubmittedAt = now
	}
	e.IsComplete, e.CompletionPercentage = ComputeCompletion(tpl, e.Responses)
	e.CreatedAt = now
	e.UpdatedAt = now

	if err := s.repo.Insert(ctx, e); err != nil {
		return nil, &PersistenceError{Op: "entry.create", Err: err}
	}
	if err := s.templates.IncrementUsage(ctx, tpl.TemplateID); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *EntryService) Get(ctx context.Context, id string) (*models.ChartingEntry, error) {
	return s.load(ctx, id)
}

// Update applies a partial patch. Patched responses trigger a completion
// recompute against the entry's template.
func (s *EntryService) Update(ctx context.Context, id string, patch models.EntryUpdate) (*models.ChartingEntry, error) {
	e, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.SessionID != nil {
		e.SessionID = *patch.SessionID
	}
	if patch.SubmittedAt != nil {
		e.SubmittedAt = *patch.SubmittedAt
	}
	if patch.Responses != nil {
		tpl, err := s.templates.Get(ctx, e.FormTemplateID)
		if err != nil {
			return nil, err
		}
		e.Responses = patch.Responses
		e.IsComplete, e.CompletionPercentage = ComputeCompletion(tpl, e.Responses)
	}

	e.UpdatedAt = time.Now()
	if err := s.repo.Replace(ctx, e); err != nil {
		return nil, &PersistenceError{Op: "entry.update", Err: err}
	}
	return e, nil
}

func (s *EntryService) Delete(ctx context.Context, id string) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return &PersistenceError{Op: "entry.delete", Err: err}
	}
	return nil
}

func (s *EntryService) GetBySession(ctx context.Context, sessionID string) ([]models.ChartingEntry, error) {
	return s.find(ctx, repositories.EntryFilter{SessionID: sessionID}, 0)
}

func (s *EntryService) GetBySubject(ctx context.Context, subjectID, templateID string) ([]models.ChartingEntry, error) {
	return s.find(ctx, repositories.EntryFilter{SubjectID: subjectID, FormTemplateID: templateID}, 0)
}

func (s *EntryService) GetAll(ctx context.Context, templateID, subjectID string, limit int) ([]models.ChartingEntry, error) {
	return s.find(ctx, repositories.EntryFilter{SubjectID: subjectID, FormTemplateID: templateID}, limit)
}

// ValidateResponses checks required-field presence only, without persisting
// anything; for repeatable sections only the first repetition is inspected.
func (s *EntryService) ValidateResponses(ctx context.Context, templateID string, responses models.FormResponses) (*models.ValidationResult, error) {
	tpl, err := s.templates.Get(ctx, templateID)
	if err != nil {
		return nil, err
	}

	res := models.ValidationResult{Errors: []models.ValidationIssue{}, Warnings: []string{}}
	for _, sec := range tpl.Sections {
		var instance map[string]any
		if responses != nil {
			instance = firstInstance(responses[sec.ID])
		}
		for _, f := range sec.Fields {
			if !f.Validation.Required {
				continue
			}
			var raw any
			if instance != nil {
				raw = instance[f.ID]
			}
			if !HasValue(raw) {
				res.Errors = append(res.Errors, models.ValidationIssue{
					SectionID: sec.ID,
					FieldID:   f.ID,
					Message:   fmt.Sprintf("%s is required", f.Label),
				})
			}
		}
	}
	res.IsValid = len(res.Errors) == 0
	return &res, nil
}

func (s *EntryService) load(ctx context.Context, id string) (*models.ChartingEntry, error) {
	e, err := s.repo.Get(ctx, id)
	if err == repositories.ErrNotFound {
		return nil, NewNotFoundError("entry", id)
	}
	if err != nil {
		return nil, &PersistenceError{Op: "entry.get", Err: err}
	}
	return e, nil
}

// find queries by equality filters, then sorts newest first in memory. The
// store only ever sees single-field filters, so no composite index is
// needed; the descending-by-submission-time contract is enforced here.
func (s *EntryService) find(ctx context.Context, f repositories.EntryFilter, limit int) ([]models.ChartingEntry, error) {
	entries, err := s.repo.Find(ctx, f)
	if err != nil {
		return nil, &PersistenceError{Op: "entry.find", Err: err}
	}
	sortEntriesBySubmissionDesc(entries)
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func sortEntriesBySubmissionDesc(entries []models.ChartingEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].SubmittedAt.Equal(entries[j].SubmittedAt) {
			return entries[i].CreatedAt.After(entries[j].CreatedAt)
		}
		return entries[i].SubmittedAt.After(entries[j].SubmittedAt)
	})
}
