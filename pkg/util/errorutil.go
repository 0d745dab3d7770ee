package util

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

// Error codes.
const (
	CodeMissingCredential  = "MISSING_CREDENTIAL"
	CodeInvalidCredential  = "INVALID_CREDENTIAL"
	CodeExpiredCredential  = "EXPIRED_CREDENTIAL"
	CodeInsufficientRole   = "INSUFFICIENT_ROLE"
	CodeIdentityNotFound   = "IDENTITY_NOT_FOUND"
	CodeCredentialMismatch = "CREDENTIAL_MISMATCH"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeValidation         = "VALIDATION_FAILED"
	CodeBadRequest         = "BAD_REQUEST"
	CodeNotFound           = "NOT_FOUND"
	CodeConflict           = "CONFLICT"
	CodeRateLimited        = "RATE_LIMITED"
	CodeTimeout            = "TIMEOUT"
	CodeInternal           = "INTERNAL_ERROR"
)

// FieldError describes a single rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    []FieldError
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status}
}

func NewMissingCredential() error {
	return NewDomainError(CodeMissingCredential, "No token provided.", http.StatusUnauthorized)
}

func NewInvalidCredential() error {
	return NewDomainError(CodeInvalidCredential, "Invalid token.", http.StatusUnauthorized)
}

func NewExpiredCredential() error {
	return NewDomainError(CodeExpiredCredential, "Token expired.", http.StatusUnauthorized)
}

func NewInsufficientRole() error {
	return NewDomainError(CodeInsufficientRole, "Access forbidden.", http.StatusForbidden)
}

func NewIdentityNotFound() error {
	return NewDomainError(CodeIdentityNotFound, "No user data.", http.StatusUnauthorized)
}

func NewCredentialMismatch() error {
	return NewDomainError(CodeCredentialMismatch, "Password incorrect.", http.StatusUnauthorized)
}

// NewAuthenticationFailed hides an unexpected sign-in failure behind a generic 401.
func NewAuthenticationFailed(err error) error {
	return &DomainError{
		Code:       CodeUnauthorized,
		Message:    "Authentication failed.",
		HTTPStatus: http.StatusUnauthorized,
		Err:        err,
	}
}

func NewValidationError(details []FieldError) error {
	return &DomainError{
		Code:       CodeValidation,
		Message:    "Validation failed.",
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    details,
	}
}

func NewBadRequest(message string) error {
	return NewDomainError(CodeBadRequest, message, http.StatusBadRequest)
}

func NewNotFound(message string) error {
	return NewDomainError(CodeNotFound, message, http.StatusNotFound)
}

func NewConflict(message string) error {
	return NewDomainError(CodeConflict, message, http.StatusConflict)
}

func NewRateLimited() error {
	return NewDomainError(CodeRateLimited, "Too many requests.", http.StatusTooManyRequests)
}

// NewTimeout reports a request whose deadline ran out before the store answered.
func NewTimeout(err error) error {
	return &DomainError{
		Code:       CodeTimeout,
		Message:    "Request timed out.",
		HTTPStatus: http.StatusServiceUnavailable,
		Err:        err,
	}
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       CodeInternal,
		Message:    "Internal Server Error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code := CodeBadRequest
		if fiberErr.Code == http.StatusNotFound {
			code = CodeNotFound
		}
		if fiberErr.Code >= 500 {
			return NewInternalError(err).(*DomainError)
		}
		return &DomainError{Code: code, Message: fiberErr.Message, HTTPStatus: fiberErr.Code, Err: err}
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return NewNotFound("Resource not found").(*DomainError)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return NewTimeout(err).(*DomainError)
	}
	if IsUniqueViolation(err) {
		return &DomainError{Code: CodeConflict, Message: "Resource already exists.", HTTPStatus: http.StatusConflict, Err: err}
	}
	return NewInternalError(err).(*DomainError)
}

// IsUniqueViolation reports whether err is a Postgres unique constraint violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func MapError(err error) error {
	return ToDomainError(err)
}
