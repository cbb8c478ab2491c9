package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"berbagi/internal/domain"
)

const testSecret = "test-secret"

func signToken(t *testing.T, method jwt.SigningMethod, key any, subject string, scopes []string, ttl time.Duration) string {
	t.Helper()
	claims := Claims{
		Scopes: scopes,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func newApp() *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Use(AuthRequired(testSecret))
	app.Get("/me", func(c *fiber.Ctx) error {
		userID, err := GetUserID(c)
		if err != nil {
			return err
		}
		return c.SendString(userID.String())
	})
	app.Post("/internal", RequireScope(ScopeTrustWrite), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app
}

func do(t *testing.T, app *fiber.App, method, path, token string) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestAuthRequired(t *testing.T) {
	app := newApp()
	userID := uuid.New()

	t.Run("Valid token", func(t *testing.T) {
		token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), userID.String(), nil, time.Hour)
		resp, body := do(t, app, http.MethodGet, "/me", token)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, userID.String(), body)
	})

	tests := []struct {
		name  string
		token string
	}{
		{"Missing header", ""},
		{"Wrong secret", signToken(t, jwt.SigningMethodHS256, []byte("other"), userID.String(), nil, time.Hour)},
		{"Expired", signToken(t, jwt.SigningMethodHS256, []byte(testSecret), userID.String(), nil, -time.Minute)},
		{"Other algorithm", signToken(t, jwt.SigningMethodHS512, []byte(testSecret), userID.String(), nil, time.Hour)},
		{"Subject is not a user id", signToken(t, jwt.SigningMethodHS256, []byte(testSecret), "someone", nil, time.Hour)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := do(t, app, http.MethodGet, "/me", tt.token)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

			var payload ErrorResponse
			require.NoError(t, json.Unmarshal([]byte(body), &payload))
			assert.Equal(t, "UNAUTHORIZED", payload.Code)
			assert.NotEmpty(t, payload.TraceID)
		})
	}
}

func TestRequireScope(t *testing.T) {
	app := newApp()
	userID := uuid.New().String()

	scoped := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), userID, []string{ScopeTrustWrite}, time.Hour)
	resp, _ := do(t, app, http.MethodPost, "/internal", scoped)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	plain := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), userID, nil, time.Hour)
	resp, _ = do(t, app, http.MethodPost, "/internal", plain)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{domain.ErrInvalidInput, http.StatusBadRequest, "BAD_REQUEST"},
		{domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{domain.ErrUnauthorized, http.StatusForbidden, "FORBIDDEN"},
		{domain.ErrInvalidStateTransition, http.StatusConflict, "INVALID_STATE_TRANSITION"},
		{domain.ErrCapacityExceeded, http.StatusConflict, "CAPACITY_EXCEEDED"},
		{fmt.Errorf("approve claim: %w", domain.ErrCapacityExceeded), http.StatusConflict, "CAPACITY_EXCEEDED"},
		{BadRequest("Invalid claim ID"), http.StatusBadRequest, "BAD_REQUEST"},
		{errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
			app.Get("/", func(c *fiber.Ctx) error { return tt.err })

			resp, body := do(t, app, http.MethodGet, "/", "")
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			var payload ErrorResponse
			require.NoError(t, json.Unmarshal([]byte(body), &payload))
			assert.Equal(t, tt.wantCode, payload.Code)
			if tt.wantStatus == http.StatusInternalServerError {
				assert.Equal(t, "Internal server error", payload.Message)
			}
		})
	}
}
