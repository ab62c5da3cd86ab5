package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Error codes returned to callers
const (
	// General errors
	ErrCodeInternalError  = "INTERNAL_ERROR"
	ErrCodeInvalidRequest = "INVALID_REQUEST"
	ErrCodeNotFound       = "NOT_FOUND"
	ErrCodeConflict       = "CONFLICT"
	ErrCodeForbidden      = "FORBIDDEN"
	ErrCodeUnauthorized   = "UNAUTHORIZED"
	ErrCodeMissingField   = "MISSING_FIELD"

	// Validation errors - Article
	ErrCodeInvalidSlug    = "INVALID_SLUG"
	ErrCodeDuplicateSlug  = "DUPLICATE_SLUG"
	ErrCodeInvalidTitle   = "INVALID_TITLE"
	ErrCodeInvalidContent = "INVALID_CONTENT"
	ErrCodeInvalidStatus  = "INVALID_STATUS"
	ErrCodeFieldTooLong   = "FIELD_TOO_LONG"

	// Validation errors - Category / Tag
	ErrCodeInvalidName       = "INVALID_NAME"
	ErrCodeDuplicateName     = "DUPLICATE_NAME"
	ErrCodeInvalidType       = "INVALID_TYPE"
	ErrCodeInvalidParent     = "INVALID_PARENT"
	ErrCodeCategoryHasChild  = "CATEGORY_HAS_CHILDREN"
	ErrCodeInvalidTransition = "INVALID_TRANSITION"
	ErrCodeSlugImmutable     = "SLUG_IMMUTABLE"
)

// AppError represents an application error
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Field      string `json:"field,omitempty"`
	StatusCode int    `json:"-"`
	Err        error  `json:"-"`
}

func (e *AppError) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Code, e.Message)
	if e.Field != "" {
		msg = fmt.Sprintf("%s (field: %s)", msg, e.Field)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new application error
func NewAppError(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// NewAppErrorWithField creates a new application error with a field
func NewAppErrorWithField(code, message, field string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		Field:      field,
		StatusCode: statusCode,
	}
}

// Error factory functions
func ErrInternal(message string, err error) *AppError {
	return &AppError{
		Code:       ErrCodeInternalError,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Err:        err,
	}
}

func ErrNotFound(resource string) *AppError {
	return NewAppError(ErrCodeNotFound, fmt.Sprintf("%s not found", resource), http.StatusNotFound)
}

func ErrInvalidRequest(message string) *AppError {
	return NewAppError(ErrCodeInvalidRequest, message, http.StatusBadRequest)
}

func ErrConflict(code, message string) *AppError {
	return NewAppError(code, message, http.StatusConflict)
}

func ErrForbidden(message string) *AppError {
	return NewAppError(ErrCodeForbidden, message, http.StatusForbidden)
}

func ErrUnauthorized(message string) *AppError {
	return NewAppError(ErrCodeUnauthorized, message, http.StatusUnauthorized)
}

func ErrValidation(code, field, message string) *AppError {
	return NewAppErrorWithField(code, message, field, http.StatusUnprocessableEntity)
}

// AsAppError maps any error onto an AppError. Unknown errors become internal errors.
func AsAppError(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return ErrInternal("internal error", err)
}

func hasStatus(err error, status int) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr) && appErr.StatusCode == status
}

// IsNotFound reports whether err is a not-found error
func IsNotFound(err error) bool { return hasStatus(err, http.StatusNotFound) }

// IsForbidden reports whether err is an authorization failure
func IsForbidden(err error) bool { return hasStatus(err, http.StatusForbidden) }

// IsConflict reports whether err is a state precondition failure
func IsConflict(err error) bool { return hasStatus(err, http.StatusConflict) }

// IsValidation reports whether err is a payload validation failure
func IsValidation(err error) bool { return hasStatus(err, http.StatusUnprocessableEntity) }

// IsInternal reports whether err is an unexpected internal fault
func IsInternal(err error) bool {
	return err != nil && AsAppError(err).StatusCode >= http.StatusInternalServerError
}
