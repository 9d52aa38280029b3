package models

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse represents a standardized API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// ErrorKind classifies an AppError so callers can branch on it without
// string matching. The HTTP layer maps kinds to status codes.
type ErrorKind string

const (
	// KindNotFound covers absent entities and zero-row mutations.
	KindNotFound ErrorKind = "NOT_FOUND"
	// KindConflict covers uniqueness violations.
	KindConflict ErrorKind = "CONFLICT"
	// KindValidation covers malformed or missing input fields.
	KindValidation ErrorKind = "VALIDATION_ERROR"
	// KindForbidden covers callers that exist but lack the required role.
	KindForbidden ErrorKind = "FORBIDDEN"
	// KindPartialFailure covers multi-step writes that partially applied.
	KindPartialFailure ErrorKind = "PARTIAL_FAILURE"
	// KindInternal covers unanticipated lower-layer failures.
	KindInternal ErrorKind = "INTERNAL_ERROR"
)

// AppError is the error type crossing the core boundary: a kind plus a
// human-readable message, optionally wrapping the underlying cause.
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// KindOf returns the classification of err, or KindInternal when err is not
// an AppError. The core never downgrades a specific kind to a generic one.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Predefined error constructors
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

// NewNotFoundMessageError builds a NotFound error with a free-form message,
// for cases not keyed by a single ID (e.g. a missing follower edge).
func NewNotFoundMessageError(message string) *AppError {
	return &AppError{
		Kind:    KindNotFound,
		Message: message,
	}
}

func NewConflictError(message string) *AppError {
	return &AppError{
		Kind:    KindConflict,
		Message: message,
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Kind:    KindValidation,
		Message: message,
	}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{
		Kind:    KindForbidden,
		Message: message,
	}
}

func NewPartialFailureError(message string, err error) *AppError {
	return &AppError{
		Kind:    KindPartialFailure,
		Message: message,
		Err:     err,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Kind:    KindInternal,
		Message: "Internal server error",
		Err:     err,
	}
}

// StatusForKind maps an error kind to its HTTP status code.
func StatusForKind(kind ErrorKind) int {
	switch kind {
	case KindNotFound:
		return fiber.StatusNotFound
	case KindConflict, KindValidation:
		return fiber.StatusBadRequest
	case KindForbidden:
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}

// RespondWithError writes a standardized error response. The status code is
// derived from the error kind; non-AppError values map to 500.
func RespondWithError(c *fiber.Ctx, err error) error {
	var response ErrorResponse

	var appErr *AppError
	if errors.As(err, &appErr) {
		response = ErrorResponse{
			Error: appErr.Message,
			Code:  string(appErr.Kind),
		}
		if appErr.Err != nil {
			response.Details = appErr.Err.Error()
		}
	} else {
		response = ErrorResponse{
			Error: err.Error(),
			Code:  string(KindInternal),
		}
	}

	return c.Status(StatusForKind(KindOf(err))).JSON(response)
}
