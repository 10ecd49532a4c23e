// Package apperrors maps failures onto HTTP responses.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/goliatone/go-studentservices/pkg/form"
	"github.com/goliatone/go-studentservices/pkg/request"
)

type ErrorType string

const (
	ValidationError ErrorType = "VALIDATION_ERROR"
	BadRequestError ErrorType = "BAD_REQUEST"
	NotFoundError   ErrorType = "NOT_FOUND"
	SubmitError     ErrorType = "SUBMIT_FAILED"
	ServerError     ErrorType = "SERVER_ERROR"
)

// AppError is a structured error carrying the HTTP status to answer with.
type AppError struct {
	Type       ErrorType         `json:"type"`
	Message    string            `json:"message"`
	Detail     string            `json:"detail,omitempty"`
	Fields     map[string]string `json:"errors,omitempty"`
	HTTPStatus int               `json:"-"`
	Raw        error             `json:"-"`
}

func (e *AppError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Raw
}

// New creates an AppError with the status implied by errType.
func New(errType ErrorType, message, detail string) *AppError {
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     detail,
		HTTPStatus: statusFor(errType),
	}
}

// Wrap attaches AppError context to err.
func Wrap(err error, errType ErrorType, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     err.Error(),
		HTTPStatus: statusFor(errType),
		Raw:        err,
	}
}

// Invalid reports per-field validation messages.
func Invalid(fields map[string]string) *AppError {
	return &AppError{
		Type:       ValidationError,
		Message:    "The request has invalid fields",
		Fields:     fields,
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}

func BadRequest(message string, err error) *AppError {
	if err == nil {
		return New(BadRequestError, message, "")
	}
	return Wrap(err, BadRequestError, message)
}

func NotFound(entity string) *AppError {
	return New(NotFoundError, fmt.Sprintf("%s not found", entity), "")
}

func Internal(err error) *AppError {
	return Wrap(err, ServerError, "Internal server error")
}

// From classifies err. Controller validation failures become 422 with field
// messages, unknown fields become 400 and handler failures 502.
func From(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var invalid *form.ValidationError
	if errors.As(err, &invalid) {
		appErr := Invalid(invalid.Fields)
		appErr.Raw = err
		return appErr
	}

	switch {
	case errors.Is(err, request.ErrUnknownField):
		return BadRequest("Unknown field", err)
	case errors.Is(err, form.ErrSubmitFailed):
		return Wrap(err, SubmitError, "The request could not be processed")
	}
	return Internal(err)
}

func statusFor(errType ErrorType) int {
	switch errType {
	case ValidationError:
		return http.StatusUnprocessableEntity
	case BadRequestError:
		return http.StatusBadRequest
	case NotFoundError:
		return http.StatusNotFound
	case SubmitError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
