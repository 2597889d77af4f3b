// Package errors provides custom error types for the dealcanvas API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is reports whether target is an AppError with the same code, so wrapped
// copies produced by Wrap and WithMessage still match their sentinel.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication errors.
var (
	ErrUnauthorized  = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidAPIKey = &AppError{Code: "INVALID_API_KEY", Message: "Invalid or missing API key", StatusCode: http.StatusUnauthorized}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Workspace errors.
var (
	ErrWorkspaceNotFound = &AppError{Code: "WORKSPACE_NOT_FOUND", Message: "Workspace not found or expired", StatusCode: http.StatusNotFound}
)

// Template errors. These indicate a caller or template-definition bug and are
// always surfaced.
var (
	ErrUnknownTemplateKind  = &AppError{Code: "UNKNOWN_TEMPLATE_KIND", Message: "Unknown deal template kind", StatusCode: http.StatusBadRequest}
	ErrFieldCountMismatch   = &AppError{Code: "FIELD_COUNT_MISMATCH", Message: "Field value count does not match the template", StatusCode: http.StatusBadRequest}
	ErrInvalidFieldValue    = &AppError{Code: "INVALID_FIELD_VALUE", Message: "Value is not one of the field options", StatusCode: http.StatusBadRequest}
	ErrFieldIndexOutOfRange = &AppError{Code: "FIELD_INDEX_OUT_OF_RANGE", Message: "Field index is out of range", StatusCode: http.StatusBadRequest}
)

// Deal and cashflow errors.
var (
	ErrDealNotFound                = &AppError{Code: "DEAL_NOT_FOUND", Message: "Deal not found", StatusCode: http.StatusNotFound}
	ErrCashflowNotFound            = &AppError{Code: "CASHFLOW_NOT_FOUND", Message: "Cashflow not found", StatusCode: http.StatusNotFound}
	ErrRelocationTargetUnsupported = &AppError{Code: "RELOCATION_TARGET_UNSUPPORTED", Message: "Target deal does not accept cashflows", StatusCode: http.StatusBadRequest}
)

// Drag errors.
var (
	ErrDragInProgress = &AppError{Code: "DRAG_IN_PROGRESS", Message: "Another drag is already in progress", StatusCode: http.StatusConflict}
	ErrNoActiveDrag   = &AppError{Code: "NO_ACTIVE_DRAG", Message: "No drag is in progress", StatusCode: http.StatusConflict}
)
