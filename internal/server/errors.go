// Package server provides the HTTP REST API for resume-studio.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-studio/internal/llm"
	"github.com/jonathan/resume-studio/internal/workspace"
)

// ErrGatewayUnavailable is returned by run and audit when no generation
// gateway is configured.
var ErrGatewayUnavailable = errors.New("generation gateway is not configured")

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// newValidationError converts a validator error into an *ErrValidation
// describing the first failing field.
func newValidationError(err error) *ErrValidation {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		ve := validationErrors[0]
		return &ErrValidation{Field: ve.Field(), Message: ve.Tag()}
	}
	return &ErrValidation{Field: "request", Message: err.Error()}
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		inputErr      *workspace.InputError
		runErr        *workspace.RunError
	)

	switch {
	case err == nil:
		return http.StatusInternalServerError
	case errors.As(err, &validationErr), errors.As(err, &inputErr),
		errors.Is(err, workspace.ErrUnknownField):
		return http.StatusBadRequest
	case errors.Is(err, workspace.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, workspace.ErrBusy), errors.Is(err, workspace.ErrNothingToAudit):
		return http.StatusConflict
	case errors.Is(err, workspace.ErrTooManySessions), errors.Is(err, ErrGatewayUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, llm.ErrBlocked):
		return http.StatusUnprocessableEntity
	case errors.As(err, &runErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
