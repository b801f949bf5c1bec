package services

import (
	"fmt"

	"charting/models"
)

// Machine-readable error codes surfaced to API clients.
const (
	CodeValidation       = "VALIDATION_ERROR"
	CodeNotFound         = "NOT_FOUND"
	CodeTemplateInUse    = "TEMPLATE_IN_USE"
	CodeTemplateArchived = "TEMPLATE_ARCHIVED"
	CodeMissingScope     = "MISSING_SCOPE"
	CodePersistence      = "PERSISTENCE_ERROR"
)

// DomainError is a business-rule violation with a stable code. Infrastructure
// faults never use this type; they are wrapped as PersistenceError instead.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *DomainError) Error() string { return e.Message }

func NewNotFoundError(kind, id string) *DomainError {
	return &DomainError{Code: CodeNotFound, Message: fmt.Sprintf("%s %q not found", kind, id)}
}

func NewTemplateInUseError(id string) *DomainError {
	return &DomainError{
		Code:    CodeTemplateInUse,
		Message: fmt.Sprintf("template %q has recorded entries and can only be archived", id),
	}
}

func NewTemplateArchivedError(id string) *DomainError {
	return &DomainError{
		Code:    CodeTemplateArchived,
		Message: fmt.Sprintf("template %q is archived and does not accept new entries", id),
	}
}

func NewMissingScopeError() *DomainError {
	return &DomainError{Code: CodeMissingScope, Message: "no sport scope resolvable for activation"}
}

// ValidationError carries the complete list of violations so callers can
// render all of them at once.
type ValidationError struct {
	Result models.ValidationResult
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d issue(s)", len(e.Result.Errors))
}

// PersistenceError wraps a store fault; opaque to business logic.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
