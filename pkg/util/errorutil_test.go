package util

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestToDomainError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"domain passthrough", NewInsufficientRole(), http.StatusForbidden, CodeInsufficientRole, "Access forbidden."},
		{"wrapped domain", fmt.Errorf("wrap: %w", NewExpiredCredential()), http.StatusUnauthorized, CodeExpiredCredential, "Token expired."},
		{"fiber not found", fiber.NewError(http.StatusNotFound, "Cannot GET /x"), http.StatusNotFound, CodeNotFound, "Cannot GET /x"},
		{"fiber bad request", fiber.ErrBadRequest, http.StatusBadRequest, CodeBadRequest, "Bad Request"},
		{"fiber 5xx hidden", fiber.NewError(http.StatusServiceUnavailable, "boom"), http.StatusInternalServerError, CodeInternal, "Internal Server Error"},
		{"no rows", pgx.ErrNoRows, http.StatusNotFound, CodeNotFound, "Resource not found"},
		{"deadline", fmt.Errorf("list products: %w", context.DeadlineExceeded), http.StatusServiceUnavailable, CodeTimeout, "Request timed out."},
		{"unique violation", &pgconn.PgError{Code: "23505"}, http.StatusConflict, CodeConflict, "Resource already exists."},
		{"unknown", errors.New("db exploded"), http.StatusInternalServerError, CodeInternal, "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToDomainError(tt.err)
			assert.Equal(t, tt.status, got.HTTPStatus)
			assert.Equal(t, tt.code, got.Code)
			assert.Equal(t, tt.message, got.Message)
		})
	}

	assert.Nil(t, ToDomainError(nil))
}

func TestAuthenticationFailedKeepsCause(t *testing.T) {
	cause := errors.New("signing failed")
	err := NewAuthenticationFailed(cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Authentication failed.", ToDomainError(err).Message)
}
