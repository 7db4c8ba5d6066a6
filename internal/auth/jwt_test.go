package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduportfolio/eduportfolio-be/internal/models"
)

func testUser() models.User {
	return models.User{ID: "user-1", Username: "admin"}
}

func TestGenerateAndValidate(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	token, err := tm.Generate(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tm.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "admin", claims.Username)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	other := NewTokenManager("other-secret", time.Hour)

	token, err := tm.Generate(testUser())
	require.NoError(t, err)

	_, err = other.Validate(token)
	assert.Error(t, err)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	tm := NewTokenManager("test-secret", -time.Minute)

	token, err := tm.Generate(testUser())
	require.NoError(t, err)

	_, err = tm.Validate(token)
	assert.Error(t, err)
}

func TestMiddleware(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, "admin", claims.Username)
		w.WriteHeader(http.StatusOK)
	})
	handler := tm.Middleware()(next)

	t.Run("missing token yields 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/modules/1", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed token yields 403", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/modules/1", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("valid token passes through", func(t *testing.T) {
		token, err := tm.Generate(testUser())
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/modules/1", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
