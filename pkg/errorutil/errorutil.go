package errorutil

import (
	"errors"
	"fmt"
	"net/http"
)

// DomainError standardizes application errors. It is the only error type
// that crosses the HTTP boundary; underlying causes stay in Err for logging
// and are never serialized to clients.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewBadRequest(code, message string) error {
	return NewDomainError(code, message, http.StatusBadRequest, nil)
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

func NewNotFound(message string) error {
	return NewDomainError("NOT_FOUND", message, http.StatusNotFound, nil)
}

func NewUnauthorized(message string) error {
	return NewDomainError("UNAUTHORIZED", message, http.StatusUnauthorized, nil)
}

func NewConflict(code, message string) error {
	return NewDomainError(code, message, http.StatusConflict, nil)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "Error interno del servidor.",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// Wrap attaches an underlying cause to a DomainError template without
// mutating the original.
func Wrap(base *DomainError, err error) *DomainError {
	return &DomainError{
		Code:       base.Code,
		Message:    base.Message,
		HTTPStatus: base.HTTPStatus,
		Details:    base.Details,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError. Errors that already
// carry a DomainError pass through unchanged so failures are never wrapped
// twice; anything unclassified becomes an internal error with the original
// cause retained.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	internal := NewInternalError(err)
	de, _ := internal.(*DomainError)
	return de
}
