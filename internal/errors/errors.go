package errors

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
)

// Sentinels for the failure classes of the invoicing core
var (
	ErrValidation  = new(ErrCodeValidation, "validation error")
	ErrAllocation  = new(ErrCodeAllocation, "invoice number allocation error")
	ErrPersistence = new(ErrCodePersistence, "persistence error")
	ErrNotFound    = new(ErrCodeNotFound, "resource not found")
	ErrSystem      = new(ErrCodeSystemError, "system error")

	// maps errors to http status codes
	statusCodeMap = map[error]int{
		ErrValidation:  http.StatusBadRequest,
		ErrNotFound:    http.StatusNotFound,
		ErrAllocation:  http.StatusInternalServerError,
		ErrPersistence: http.StatusInternalServerError,
		ErrSystem:      http.StatusInternalServerError,
	}
)

const (
	ErrCodeValidation  = "validation_error"
	ErrCodeAllocation  = "allocation_error"
	ErrCodePersistence = "persistence_error"
	ErrCodeNotFound    = "not_found"
	ErrCodeSystemError = "system_error"
)

// InternalError represents a domain error
type InternalError struct {
	Code    string // Machine-readable error code
	Message string // Human-readable error message
	Err     error  // Underlying error
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return e.DisplayError()
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Err.Error())
}

func (e *InternalError) DisplayError() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// Is implements error matching for wrapped errors
func (e *InternalError) Is(target error) bool {
	if target == nil {
		return false
	}

	t, ok := target.(*InternalError)
	if !ok {
		return errors.Is(e.Err, target)
	}

	return e.Code == t.Code
}

func new(code string, message string) *InternalError {
	return &InternalError{
		Code:    code,
		Message: message,
	}
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

func Is(err, reference error) bool {
	return errors.Is(err, reference)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsAllocation checks if an error came from the invoice number sequence
func IsAllocation(err error) bool {
	return errors.Is(err, ErrAllocation)
}

// IsPersistence checks if an error is a storage write/read failure
func IsPersistence(err error) bool {
	return errors.Is(err, ErrPersistence)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// HTTPStatusFromErr maps a marked error to its response status
func HTTPStatusFromErr(err error) int {
	for e, status := range statusCodeMap {
		if errors.Is(err, e) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// DisplayMessage returns the first non-empty hint, or fallback when none was set
func DisplayMessage(err error, fallback string) string {
	for _, hint := range errors.GetAllHints(err) {
		if hint = strings.TrimSpace(hint); hint != "" {
			return hint
		}
	}
	return fallback
}

// Cause returns the message of the innermost error, for diagnostics
func Cause(err error) string {
	if err == nil {
		return ""
	}
	return errors.UnwrapAll(err).Error()
}
