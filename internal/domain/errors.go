package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
type HTTPError interface {
	error
	StatusCode() int
}

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// ErrStoreUnavailable marks a failure of the backing store (connection,
	// timeout, driver fault). It is never a "not found".
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrInconsistentHierarchy is returned when a docs path matches more than
	// one document, which sibling slug uniqueness should make impossible.
	ErrInconsistentHierarchy = errors.New("inconsistent folder hierarchy")
)

// NotFoundError indicates a resource was not found
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}
func (e *NotFoundError) StatusCode() int      { return http.StatusNotFound }
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ValidationError indicates invalid input
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string        { return e.Message }
func (e *ValidationError) StatusCode() int      { return http.StatusBadRequest }
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// ConflictError represents a resource conflict with details about the existing resource
type ConflictError struct {
	Message      string // Human-readable error message
	ResourceType string // folder or document
	ResourceID   string // ID of the existing/conflicting resource
}

func (e *ConflictError) Error() string        { return e.Message }
func (e *ConflictError) StatusCode() int      { return http.StatusConflict }
func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

// StoreUnavailableError wraps a backing store failure with the operation that
// hit it. errors.Is(err, ErrStoreUnavailable) holds for every instance.
type StoreUnavailableError struct {
	Op  string
	Err error
}

// NewStoreUnavailable wraps err unless it already carries the store kind.
func NewStoreUnavailable(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrStoreUnavailable) {
		return err
	}
	return &StoreUnavailableError{Op: op, Err: err}
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}
func (e *StoreUnavailableError) Unwrap() error        { return e.Err }
func (e *StoreUnavailableError) StatusCode() int      { return http.StatusServiceUnavailable }
func (e *StoreUnavailableError) Is(target error) bool { return target == ErrStoreUnavailable }
