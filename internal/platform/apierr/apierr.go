package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeCollaboratorUnavailable = "collaborator_unavailable"
	CodeUnknownTaxonomyKey      = "unknown_taxonomy_key"
	CodeInvalidRequest          = "invalid_request"
	CodeNotFound                = "not_found"
	CodeInternal                = "internal"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// Unavailable reports a failed call to an outbound collaborator.
func Unavailable(collaborator string, err error) *Error {
	return New(http.StatusBadGateway, CodeCollaboratorUnavailable, fmt.Errorf("%s: %w", collaborator, err))
}

// UnknownTaxonomyKey reports a category or shop type outside the fixed taxonomy.
func UnknownTaxonomyKey(key string) *Error {
	return New(http.StatusBadRequest, CodeUnknownTaxonomyKey, fmt.Errorf("unknown category %q", key))
}

func Invalid(format string, args ...any) *Error {
	return New(http.StatusBadRequest, CodeInvalidRequest, fmt.Errorf(format, args...))
}

func NotFound(what string) *Error {
	return New(http.StatusNotFound, CodeNotFound, fmt.Errorf("%s not found", what))
}

// StatusOf returns the HTTP status and code carried by err, defaulting to 500/internal.
func StatusOf(err error) (int, string) {
	var ae *Error
	if errors.As(err, &ae) && ae != nil {
		status := ae.Status
		if status == 0 {
			status = http.StatusInternalServerError
		}
		code := ae.Code
		if code == "" {
			code = CodeInternal
		}
		return status, code
	}
	return http.StatusInternalServerError, CodeInternal
}

// IsCode reports whether err carries the given code anywhere in its chain.
func IsCode(err error, code string) bool {
	var ae *Error
	return errors.As(err, &ae) && ae != nil && ae.Code == code
}
