package handler

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/dmitrymomot/storefront/pkg/validator"
)

var (
	ErrNilResponse       = errors.New("handler returned nil response")
	ErrSSENotInitialized = errors.New("SSE not initialized for this request")
)

// HTTPError is an error with an HTTP status and a stable message key.
type HTTPError struct {
	Code int
	Key  string
}

func NewHTTPError(code int, key string) HTTPError {
	return HTTPError{Code: code, Key: key}
}

func (e HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Code, e.Key)
}

// WithKey returns a copy with a different key.
func (e HTTPError) WithKey(key string) HTTPError {
	e.Key = key
	return e
}

var (
	ErrBadRequest          = NewHTTPError(http.StatusBadRequest, "http.error.bad_request")
	ErrNotFound            = NewHTTPError(http.StatusNotFound, "http.error.not_found")
	ErrConflict            = NewHTTPError(http.StatusConflict, "http.error.conflict")
	ErrUnprocessableEntity = NewHTTPError(http.StatusUnprocessableEntity, "http.error.unprocessable_entity")
	ErrInternalServerError = NewHTTPError(http.StatusInternalServerError, "http.error.internal_server_error")
	ErrServiceUnavailable  = NewHTTPError(http.StatusServiceUnavailable, "http.error.service_unavailable")
)

// ValidationError maps field names to messages.
type ValidationError map[string][]string

func NewValidationError() ValidationError {
	return ValidationError{}
}

func (e ValidationError) Add(field, message string) {
	e[field] = append(e[field], message)
}

func (e ValidationError) IsEmpty() bool {
	return len(e) == 0
}

func (e ValidationError) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	slices.Sort(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+strings.Join(e[f], ", "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AsValidationError extracts field errors from ValidationError or
// validator.ValidationErrors anywhere in err's chain.
func AsValidationError(err error) (ValidationError, bool) {
	var ve ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	if vs := validator.Extract(err); vs != nil {
		return ValidationError(vs.Map()), true
	}
	return nil, false
}
