package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/mocks"
	"github.com/phrazzld/taskboard-api/internal/service/auth"
)

// principalRecorder captures the principal the downstream handler observed.
func principalRecorder(got *domain.Principal) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got = shared.PrincipalFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticateOptionalNoHeader(t *testing.T) {
	mw := NewAuthMiddleware(&mocks.MockJWTService{})

	var got domain.Principal
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	mw.AuthenticateOptional(principalRecorder(&got)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, got.IsAuthenticated())
}

func TestAuthenticateOptionalValidToken(t *testing.T) {
	userID := uuid.New()
	mw := NewAuthMiddleware(&mocks.MockJWTService{FixedUserID: userID})

	var got domain.Principal
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	mw.AuthenticateOptional(principalRecorder(&got)).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, got.IsAuthenticated())
	assert.Equal(t, userID, got.UserID)
}

func TestAuthenticateOptionalMalformedHeader(t *testing.T) {
	mw := NewAuthMiddleware(&mocks.MockJWTService{})

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing scheme", header: "some-token"},
		{name: "wrong scheme", header: "Basic dXNlcjpwYXNz"},
		{name: "empty token", header: "Bearer "},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
			req.Header.Set("Authorization", tc.header)
			mw.AuthenticateOptional(okHandler()).ServeHTTP(rec, req)

			require.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), "Invalid authorization header format")
		})
	}
}

func TestAuthenticateOptionalInvalidToken(t *testing.T) {
	jwtService := &mocks.MockJWTService{
		ValidateTokenFn: func(_ context.Context, _ string) (*auth.Claims, error) {
			return nil, auth.ErrInvalidToken
		},
	}
	mw := NewAuthMiddleware(jwtService)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	mw.AuthenticateOptional(okHandler()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid or expired token")
}

func TestAuthenticateOptionalBearerCaseInsensitive(t *testing.T) {
	userID := uuid.New()
	mw := NewAuthMiddleware(&mocks.MockJWTService{FixedUserID: userID})

	var got domain.Principal
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	req.Header.Set("Authorization", "bearer some-token")
	mw.AuthenticateOptional(principalRecorder(&got)).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, got.IsAuthenticated())
}

func TestRequireAuthenticated(t *testing.T) {
	mw := NewAuthMiddleware(&mocks.MockJWTService{})

	t.Run("anonymous rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/auth/profile", nil)
		mw.RequireAuthenticated(okHandler()).ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Authentication required")
	})

	t.Run("authenticated passes", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/auth/profile", nil)
		ctx := context.WithValue(req.Context(), shared.UserIDContextKey, uuid.New())
		mw.RequireAuthenticated(okHandler()).ServeHTTP(rec, req.WithContext(ctx))

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestAuthenticateRequiresHeader(t *testing.T) {
	mw := NewAuthMiddleware(&mocks.MockJWTService{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/auth/profile", nil)
	mw.Authenticate(okHandler()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Authentication required")
}
