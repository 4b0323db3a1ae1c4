package errors

import (
	"errors"
	"fmt"
	"net/http"
)

type AppError struct {
	Code    string
	Message string
	Status  int
	Err     error
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code string, message string, status int, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

func NotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s not found", resource),
		Status:  http.StatusNotFound,
		Err:     err,
	}
}

func BadRequest(message string, err error) *AppError {
	return &AppError{
		Code:    "BAD_REQUEST",
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     err,
	}
}

func Unauthorized(message string, err error) *AppError {
	return &AppError{
		Code:    "UNAUTHORIZED",
		Message: message,
		Status:  http.StatusUnauthorized,
		Err:     err,
	}
}

func Forbidden(message string, err error) *AppError {
	return &AppError{
		Code:    "FORBIDDEN",
		Message: message,
		Status:  http.StatusForbidden,
		Err:     err,
	}
}

func Internal(message string, err error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: message,
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

func TooManyRequests(message string) *AppError {
	return &AppError{
		Code:    "TOO_MANY_REQUESTS",
		Message: message,
		Status:  http.StatusTooManyRequests,
		Err:     nil,
	}
}

// InputInvalid is a local validation failure; it never reaches the store.
func InputInvalid(message string) *AppError {
	return &AppError{
		Code:    "INPUT_INVALID",
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     nil,
	}
}

// ItemNotFound carries the submitted identifier verbatim so callers can show
// exactly what failed to resolve.
func ItemNotFound(identifier string) *AppError {
	return &AppError{
		Code:    "ITEM_NOT_FOUND",
		Message: fmt.Sprintf("no item matches identifier %s", identifier),
		Status:  http.StatusNotFound,
		Err:     nil,
	}
}

// SelfScan is informational, not a true failure: the caller scanned an item
// they own and was redirected to their own item view instead of an owner view.
func SelfScan(itemID string) *AppError {
	return &AppError{
		Code:    "SELF_SCAN",
		Message: fmt.Sprintf("item %s belongs to you", itemID),
		Status:  http.StatusOK,
		Err:     nil,
	}
}

func OwnerProfileUnavailable(ownerID string) *AppError {
	return &AppError{
		Code:    "OWNER_PROFILE_UNAVAILABLE",
		Message: fmt.Sprintf("profile for owner %s could not be fetched", ownerID),
		Status:  http.StatusNotFound,
		Err:     nil,
	}
}

// StoreUnavailable wraps any underlying read/write failure. It must never be
// collapsed into a "not found" answer.
func StoreUnavailable(operation string, err error) *AppError {
	return &AppError{
		Code:    "STORE_UNAVAILABLE",
		Message: fmt.Sprintf("store operation failed: %s", operation),
		Status:  http.StatusServiceUnavailable,
		Err:     err,
	}
}

func ConfigurationMissing(detail string) *AppError {
	return &AppError{
		Code:    "CONFIGURATION_MISSING",
		Message: detail,
		Status:  http.StatusServiceUnavailable,
		Err:     nil,
	}
}

func Is(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// Code returns the application error code, or empty for foreign errors.
func Code(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}
