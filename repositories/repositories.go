package repositories

import (
	"context"
	"errors"

	"charting/models"
)

// ErrNotFound is returned when a looked-up record does not exist. Services
// translate it into their own not-found error; anything else coming out of a
// repository is treated as a persistence fault.
var ErrNotFound = errors.New("record not found")

type TemplateRepository interface {
	Insert(ctx context.Context, t *models.FormTemplate) error
	Get(ctx context.Context, templateID string) (*models.FormTemplate, error)
	Replace(ctx context.Context, t *models.FormTemplate) error
	Delete(ctx context.Context, templateID string) error
	// FindBySport returns templates tagged with the sport; activeOnly narrows
	// to active, non-archived ones.
	FindBySport(ctx context.Context, sport string, activeOnly bool) ([]models.FormTemplate, error)
	FindAll(ctx context.Context) ([]models.FormTemplate, error)
	// IncrementUsage applies an atomic counter bump; safe under concurrency.
	IncrementUsage(ctx context.Context, templateID string, delta int) error
}

// EntryFilter narrows entry queries by equality only. Ordering is applied by
// the service layer so the contract holds across stores without composite
// indexes.
type EntryFilter struct {
	SubjectID      string
	SessionID      string
	FormTemplateID string
}

type EntryRepository interface {
	Insert(ctx context.Context, e *models.ChartingEntry) error
	Get(ctx context.Context, entryID string) (*models.ChartingEntry, error)
	Replace(ctx context.Context, e *models.ChartingEntry) error
	Delete(ctx context.Context, entryID string) error
	Find(ctx context.Context, f EntryFilter) ([]models.ChartingEntry, error)
}

type AnalyticsRepository interface {
	// Upsert overwrites any prior snapshot for the same (subject, template).
	Upsert(ctx context.Context, snap *models.StudentAnalytics) error
	Get(ctx context.Context, subjectID, templateID string) (*models.StudentAnalytics, error)
}

type UserRepository interface {
	Insert(ctx context.Context, u *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByUserID(ctx context.Context, userID string) (*models.User, error)
	CountByEmail(ctx context.Context, email string) (int64, error)
	UpdateTokens(ctx context.Context, userID, token, refreshToken string) error
}
