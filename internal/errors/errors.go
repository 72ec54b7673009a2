package errors

import (
	"errors"
	"fmt"
	"net/http"

	"surveystat/domain/core"
)

// AppError is an error with a stable code for API and CLI callers.
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil && e.Cause.Error() != e.Message {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap adds context, keeping the code of a wrapped AppError.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:    GetCode(err),
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WithCode replaces the code of err.
func WithCode(code string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return &AppError{
			Code:    code,
			Message: appErr.Message,
			Cause:   appErr.Cause,
		}
	}
	return &AppError{
		Code:    code,
		Message: err.Error(),
		Cause:   err,
	}
}

// IsAppError checks if an error is or wraps an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetCode returns the code of the outermost AppError, falling back to the
// analysis taxonomy and then CodeInternalError.
func GetCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	if code, ok := analysisCode(err); ok {
		return code
	}
	return CodeInternalError
}

// Predefined error codes
const (
	CodeConfigInvalid   = "CONFIG_INVALID"
	CodeValidationError = "VALIDATION_ERROR"
	CodeNotFound        = "NOT_FOUND"
	CodeInternalError   = "INTERNAL_ERROR"
	CodeInvalidInput    = "INVALID_INPUT"
	CodeUnsupported     = "UNSUPPORTED_FORMAT"

	CodeInsufficientCategories  = "INSUFFICIENT_CATEGORIES"
	CodeInsufficientSampleSize  = "INSUFFICIENT_SAMPLE_SIZE"
	CodeDegenerateInput         = "DEGENERATE_INPUT"
	CodeUnavailableSignificance = "UNAVAILABLE_SIGNIFICANCE"
)

func analysisCode(err error) (string, bool) {
	switch {
	case errors.Is(err, core.ErrInsufficientCategories):
		return CodeInsufficientCategories, true
	case errors.Is(err, core.ErrInsufficientSampleSize):
		return CodeInsufficientSampleSize, true
	case errors.Is(err, core.ErrDegenerateInput):
		return CodeDegenerateInput, true
	case errors.Is(err, core.ErrUnavailableSignificance):
		return CodeUnavailableSignificance, true
	case errors.Is(err, core.ErrNotFound):
		return CodeNotFound, true
	}
	return "", false
}

// FromAnalysis converts an engine error into an AppError carrying its
// taxonomy code. Unrecognized errors become CodeInternalError.
func FromAnalysis(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	code, ok := analysisCode(err)
	if !ok {
		code = CodeInternalError
	}
	return &AppError{Code: code, Message: err.Error(), Cause: err}
}

// HTTPStatus maps a code to the response status of the HTTP API.
func HTTPStatus(code string) int {
	switch code {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeInvalidInput, CodeValidationError, CodeUnsupported:
		return http.StatusBadRequest
	case CodeInsufficientCategories, CodeInsufficientSampleSize, CodeDegenerateInput, CodeUnavailableSignificance:
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func ValidationError(message string) *AppError {
	return New(CodeValidationError, message)
}

func NotFound(resource string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource))
}

func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

func Unsupported(format string) *AppError {
	return New(CodeUnsupported, fmt.Sprintf("unsupported file format %q", format))
}
