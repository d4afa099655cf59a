// Package errors provides the structured error type returned by every service
// in the stock trading API. Handlers render an AppError as
// {"error": {"code", "message"}} plus an optional top-level "details" string.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	// Details is surfaced to clients; used for upstream error text.
	Details  string `json:"-"`
	Internal error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is matches another AppError by code, so errors.Is(err, ErrNotFound) works on copies.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Details:    sentinel.Details,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Details:    sentinel.Details,
		Internal:   sentinel.Internal,
	}
}

// WithDetails copies sentinel with a custom message and client-visible details.
// The details string is also kept as the internal cause for logging.
func WithDetails(sentinel *AppError, message string, cause error) *AppError {
	e := &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   cause,
	}
	if cause != nil {
		e.Details = cause.Error()
	}
	return e
}

// Credential errors.
var (
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid credentials", StatusCode: http.StatusUnauthorized}
)

// General errors.
var (
	ErrInvalidInput     = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound         = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrMethodNotAllowed = &AppError{Code: "METHOD_NOT_ALLOWED", Message: "Method not allowed", StatusCode: http.StatusMethodNotAllowed}
	ErrInternalServer   = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Instrument errors.
var (
	ErrInstrumentNotFound  = &AppError{Code: "INSTRUMENT_NOT_FOUND", Message: "Instrument not found", StatusCode: http.StatusNotFound}
	ErrDuplicateInstrument = &AppError{Code: "DUPLICATE_INSTRUMENT", Message: "Instrument already exists", StatusCode: http.StatusConflict}
)

// User errors.
var (
	ErrUserNotFound  = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateUser = &AppError{Code: "DUPLICATE_USER", Message: "Username or email already exists", StatusCode: http.StatusConflict}
)

// Watchlist errors.
var (
	ErrSymbolNotFound         = &AppError{Code: "SYMBOL_NOT_FOUND", Message: "Invalid symbol", StatusCode: http.StatusNotFound}
	ErrWatchlistEntryNotFound = &AppError{Code: "WATCHLIST_ENTRY_NOT_FOUND", Message: "Symbol not found in watchlist", StatusCode: http.StatusNotFound}
	ErrDuplicateWatchlist     = &AppError{Code: "DUPLICATE_WATCHLIST_ENTRY", Message: "Symbol already in watchlist", StatusCode: http.StatusConflict}
)

// Market data errors.
var (
	ErrQuoteNotFound       = &AppError{Code: "QUOTE_NOT_FOUND", Message: "No valid data for symbol", StatusCode: http.StatusNotFound}
	ErrCompanyNotFound     = &AppError{Code: "COMPANY_NOT_FOUND", Message: "Company not found", StatusCode: http.StatusNotFound}
	ErrCandlesNotFound     = &AppError{Code: "CANDLES_NOT_FOUND", Message: "No candle data available", StatusCode: http.StatusNotFound}
	ErrUpstreamUnavailable = &AppError{Code: "UPSTREAM_UNAVAILABLE", Message: "Market data service unavailable", StatusCode: http.StatusServiceUnavailable}
	ErrPredictionFailed    = &AppError{Code: "PREDICTION_FAILED", Message: "Prediction failed", StatusCode: http.StatusInternalServerError}
)
