package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound                  = errors.New("resource not found")
	ErrUnauthorized              = errors.New("unauthorized")
	ErrForbidden                 = errors.New("forbidden")
	ErrDuplicateAccount          = errors.New("account already exists")
	ErrInvalidPoolID             = errors.New("pool id must be between 1 and 32 characters")
	ErrInvalidRefID              = errors.New("ref id must be between 1 and 32 characters")
	ErrInvalidCommissionRate     = errors.New("commission rate must be at most 10000 basis points")
	ErrInvalidWallet             = errors.New("invalid wallet address")
	ErrInvalidAmount             = errors.New("amount must be greater than 0")
	ErrPoolInactive              = errors.New("pool is not active")
	ErrAffiliateInactive         = errors.New("affiliate is not active")
	ErrCommissionTooSmall        = errors.New("calculated commission is too small")
	ErrInsufficientFunds         = errors.New("insufficient funds")
	ErrInsufficientEscrowBalance = errors.New("insufficient balance in escrow")
	ErrOverflow                  = errors.New("arithmetic overflow")
)

// AppError represents application error with HTTP status
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, message, ErrNotFound)
}

func BadRequest(message string, err error) *AppError {
	return NewAppError(http.StatusBadRequest, message, err)
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, message, ErrUnauthorized)
}

func Forbidden(message string) *AppError {
	return NewAppError(http.StatusForbidden, message, ErrForbidden)
}

func Conflict(message string) *AppError {
	return NewAppError(http.StatusConflict, message, ErrDuplicateAccount)
}

func Unprocessable(message string, err error) *AppError {
	return NewAppError(http.StatusUnprocessableEntity, message, err)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, "internal server error", err)
}

// StatusFor maps a domain error to the HTTP status it should surface with.
// Every failure aborts the whole transition, so the mapping is total: unknown
// errors surface as 500.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrDuplicateAccount):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidPoolID),
		errors.Is(err, ErrInvalidRefID),
		errors.Is(err, ErrInvalidCommissionRate),
		errors.Is(err, ErrInvalidWallet),
		errors.Is(err, ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, ErrPoolInactive),
		errors.Is(err, ErrAffiliateInactive),
		errors.Is(err, ErrCommissionTooSmall),
		errors.Is(err, ErrInsufficientFunds),
		errors.Is(err, ErrInsufficientEscrowBalance),
		errors.Is(err, ErrOverflow):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
