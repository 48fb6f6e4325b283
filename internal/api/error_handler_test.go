package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenderdesk/business-api/internal/core/domain"
)

func runErrorHandler(t *testing.T, err error, log zerolog.Logger) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/tenders/42", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(log)(err, c)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestHTTPErrorHandler_DomainErrors(t *testing.T) {
	tests := []struct {
		err  error
		code int
		msg  string
	}{
		{fmt.Errorf("tenders: %w", domain.ErrNotFound), http.StatusNotFound, "record not found"},
		{domain.ErrConflict, http.StatusConflict, "record already exists"},
		{domain.ErrUserExists, http.StatusConflict, "user already exists"},
		{domain.ErrForbidden, http.StatusForbidden, "forbidden"},
		{domain.ErrTooManyAttempts, http.StatusTooManyRequests, "too many login attempts"},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{fmt.Errorf("%w: amount must be > 0", domain.ErrValidation), http.StatusUnprocessableEntity, "validation failed: amount must be > 0"},
		{domain.ErrExpiredToken, http.StatusUnauthorized, "token expired"},
		{fmt.Errorf("%w: signature", domain.ErrInvalidToken), http.StatusUnauthorized, "invalid token"},
		{echo.NewHTTPError(http.StatusBadRequest, "bad page"), http.StatusBadRequest, "bad page"},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			rec, body := runErrorHandler(t, tt.err, zerolog.Nop())
			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, tt.msg, body["error"])
		})
	}
}

func TestHTTPErrorHandler_NotFoundUsesFallbackBody(t *testing.T) {
	rec, body := runErrorHandler(t, echo.ErrNotFound, zerolog.Nop())

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "route not found", body["error"])
	assert.Equal(t, http.MethodGet, body["method"])
	assert.Equal(t, "/tenders/42", body["path"])
	assert.NotEmpty(t, body["timestamp"])
	assert.NotEmpty(t, body["hint"])
}

func TestHTTPErrorHandler_UnknownErrorIsHidden(t *testing.T) {
	var logs bytes.Buffer
	rec, body := runErrorHandler(t, errors.New("mongo: connection reset by peer"), zerolog.New(&logs))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal server error", body["error"])
	assert.NotContains(t, rec.Body.String(), "mongo")
	assert.Contains(t, logs.String(), `"level":"error"`)
	assert.Contains(t, logs.String(), "connection reset by peer")
}

func TestHTTPErrorHandler_CommittedResponseUntouched(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, c.String(http.StatusOK, "done"))

	NewHTTPErrorHandler(zerolog.Nop())(errors.New("late failure"), c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "done", rec.Body.String())
}
