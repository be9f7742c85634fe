package apperror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrConflict         = errors.New("conflict")
	ErrInternal         = errors.New("internal server error")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrAlreadyExists    = errors.New("already exists")
	ErrPrecursorMissing = errors.New("precursor missing")
	ErrTooManyRequests  = errors.New("too many requests")
	ErrTargetNotEmpty   = errors.New("target not empty")
	ErrInvalidTarget    = errors.New("invalid target")
)

type AppError struct {
	BaseError error
	Message   string
	Details   string
	Err       error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (Details: %s, Cause: %v)", e.BaseError.Error(), e.Message, e.Details, e.Err)
	}
	return fmt.Sprintf("%s: %s (Details: %s)", e.BaseError.Error(), e.Message, e.Details)
}

func (e *AppError) Unwrap() error {
	return e.BaseError
}

func NewAppError(base error, msg, details string, err error) *AppError {
	return &AppError{BaseError: base, Message: msg, Details: details, Err: err}
}

func NewNotFound(resource, identifier string) *AppError {
	msg := fmt.Sprintf("%s not found", resource)
	details := fmt.Sprintf("%s with identifier '%s' was not found", resource, identifier)
	return NewAppError(ErrNotFound, msg, details, nil)
}

func NewInvalidInput(details string, err error) *AppError {
	return NewAppError(ErrInvalidInput, "Invalid input provided", details, err)
}

func NewConflict(resource, field, value string) *AppError {
	msg := fmt.Sprintf("%s conflict", resource)
	details := fmt.Sprintf("%s with %s '%s' already exists", resource, field, value)
	return NewAppError(ErrConflict, msg, details, nil)
}

func NewInternal(details string, err error) *AppError {
	return NewAppError(ErrInternal, "An internal server error occurred", details, err)
}

func NewUnauthorized(details string, err error) *AppError {
	return NewAppError(ErrUnauthorized, "Unauthorized", details, err)
}

// NewAlreadyExists reports a second attempt to create a singleton resource.
func NewAlreadyExists(resource string) *AppError {
	msg := fmt.Sprintf("%s already exists", capitalize(resource))
	return NewAppError(ErrAlreadyExists, msg, fmt.Sprintf("only one %s may exist", resource), nil)
}

// NewPrecursorMissing reports a child resource created before its parent.
func NewPrecursorMissing(parent string) *AppError {
	msg := fmt.Sprintf("Create %s first", parent)
	return NewAppError(ErrPrecursorMissing, msg, fmt.Sprintf("no %s exists yet", parent), nil)
}

func NewTooManyRequests(details string) *AppError {
	return NewAppError(ErrTooManyRequests, "Too Many Requests", details, nil)
}

func NewTargetNotEmpty(details string) *AppError {
	return NewAppError(ErrTargetNotEmpty, "Target database is not empty", details, nil)
}

func NewInvalidTarget(details string) *AppError {
	return NewAppError(ErrInvalidTarget, "Invalid migration target", details, nil)
}

func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrAlreadyExists),
		errors.Is(err, ErrPrecursorMissing):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrTooManyRequests):
		return http.StatusTooManyRequests
	}
	return http.StatusInternalServerError
}

func (e *AppError) ToJSON() gin.H {
	return gin.H{
		"error":   e.BaseError.Error(),
		"message": e.Message,
		"detail":  e.Details,
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	if c := s[0]; c >= 'a' && c <= 'z' {
		return string(c-'a'+'A') + s[1:]
	}
	return s
}
