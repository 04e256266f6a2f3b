package middleware_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"pcstore/internal/apperr"
	"pcstore/internal/auth"
	"pcstore/internal/middleware"
	"pcstore/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Authenticate(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func setupApp(a middleware.Authenticator) *fiber.App {
	app := fiber.New()
	app.Use(middleware.Authenticate(a, zap.NewNop()))
	app.Get("/whoami", func(c *fiber.Ctx) error {
		user, ok := auth.UserFromContext(c.UserContext())
		if !ok {
			return c.SendString("anonymous")
		}
		return c.SendString(user.Username)
	})
	return app
}

func call(t *testing.T, app *fiber.App, header string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestAuthenticate_AnonymousPassesThrough(t *testing.T) {
	a := new(MockAuthenticator)
	status, body := call(t, setupApp(a), "")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "anonymous", body)
	a.AssertNotCalled(t, "Authenticate", mock.Anything, mock.Anything)
}

func TestAuthenticate_ValidToken(t *testing.T) {
	a := new(MockAuthenticator)
	a.On("Authenticate", mock.Anything, "good").Return(&models.User{ID: 3, Username: "ana"}, nil)
	app := setupApp(a)

	for _, prefix := range []string{"Bearer ", "JWT "} {
		status, body := call(t, app, prefix+"good")
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "ana", body)
	}
	a.AssertExpectations(t)
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	a := new(MockAuthenticator)
	a.On("Authenticate", mock.Anything, "bad").Return(nil, apperr.ErrInvalidToken)
	a.On("Authenticate", mock.Anything, "retired").Return(nil, fmt.Errorf("lookup: %w", apperr.ErrUnauthenticated))
	app := setupApp(a)

	for _, token := range []string{"bad", "retired"} {
		status, _ := call(t, app, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, status, token)
	}
}

func TestAuthenticate_LookupFailureIsServerError(t *testing.T) {
	a := new(MockAuthenticator)
	a.On("Authenticate", mock.Anything, "good").Return(nil, errors.New("db down"))

	status, body := call(t, setupApp(a), "Bearer good")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.NotContains(t, body, "db down")
}

func TestAuthenticate_MalformedHeader(t *testing.T) {
	a := new(MockAuthenticator)
	app := setupApp(a)

	for _, header := range []string{"Bearer", "Basic abc", "token-only"} {
		status, _ := call(t, app, header)
		assert.Equal(t, http.StatusUnauthorized, status, header)
	}
	a.AssertNotCalled(t, "Authenticate", mock.Anything, mock.Anything)
}
