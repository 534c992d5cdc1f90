// Package apperrors defines the error taxonomy shared by the article pipeline
// and its mapping onto HTTP status codes.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode identifies the class of a failure.
type ErrorCode string

const (
	CodeValidation    ErrorCode = "VALIDATION"
	CodeConfiguration ErrorCode = "CONFIGURATION"
	CodeIO            ErrorCode = "IO"
	CodeExtraction    ErrorCode = "EXTRACTION"
	CodeModel         ErrorCode = "MODEL"
	CodeRender        ErrorCode = "RENDER"
	CodeInternal      ErrorCode = "INTERNAL"
)

// Error is a classified application error. Err carries the underlying cause.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewValidationError reports a malformed request.
func NewValidationError(message string) *Error {
	return &Error{Code: CodeValidation, Message: message}
}

// NewConfigurationError reports a missing credential or setting.
func NewConfigurationError(message string) *Error {
	return &Error{Code: CodeConfiguration, Message: message}
}

// NewIOError reports an unreadable stub or template file.
func NewIOError(message string, err error) *Error {
	return &Error{Code: CodeIO, Message: message, Err: err}
}

// NewExtractionError reports model output without a recoverable JSON object.
// The fill loop treats it as a failed attempt.
func NewExtractionError(err error) *Error {
	return &Error{Code: CodeExtraction, Message: "extraction failed", Err: err}
}

// NewModelError reports that every generation attempt failed.
func NewModelError(err error) *Error {
	return &Error{Code: CodeModel, Message: "Model error", Err: err}
}

// NewRenderError reports a template engine failure.
func NewRenderError(err error) *Error {
	return &Error{Code: CodeRender, Message: "Render error", Err: err}
}

// CodeOf returns the code of the outermost *Error in err's chain, or
// CodeInternal when there is none.
func CodeOf(err error) ErrorCode {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

// HTTPStatus maps err onto the status code returned to API clients.
func HTTPStatus(err error) int {
	switch CodeOf(err) {
	case CodeValidation:
		return http.StatusBadRequest
	case CodeModel, CodeExtraction:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
