package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/mocks"
	"github.com/phrazzld/taskboard-api/internal/service"
	"github.com/phrazzld/taskboard-api/internal/service/auth"
	"github.com/phrazzld/taskboard-api/internal/store"
	"github.com/phrazzld/taskboard-api/internal/validation"
)

// stubUserService implements service.UserService with function fields.
type stubUserService struct {
	RegisterFn      func(ctx context.Context, payload validation.RegistrationPayload) (*domain.User, error)
	AuthenticateFn  func(ctx context.Context, username, password string) (*domain.User, error)
	GetProfileFn    func(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	UpdateProfileFn func(ctx context.Context, userID uuid.UUID, update service.ProfileUpdate) (*domain.User, error)
}

func (s *stubUserService) Register(ctx context.Context, payload validation.RegistrationPayload) (*domain.User, error) {
	return s.RegisterFn(ctx, payload)
}

func (s *stubUserService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	return s.AuthenticateFn(ctx, username, password)
}

func (s *stubUserService) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return s.GetProfileFn(ctx, userID)
}

func (s *stubUserService) UpdateProfile(ctx context.Context, userID uuid.UUID, update service.ProfileUpdate) (*domain.User, error) {
	return s.UpdateProfileFn(ctx, userID, update)
}

func sampleUser() *domain.User {
	user, _ := domain.NewUser("alice_42", "alice@example.com", "Alice", "Smith")
	user.HashedPassword = "hashed:x"
	return user
}

func TestAuthHandlerRegister(t *testing.T) {
	t.Run("success returns user and token pair", func(t *testing.T) {
		user := sampleUser()
		svc := &stubUserService{
			RegisterFn: func(ctx context.Context, payload validation.RegistrationPayload) (*domain.User, error) {
				assert.Equal(t, "alice_42", payload.Username)
				return user, nil
			},
		}
		handler := NewAuthHandler(svc, &mocks.MockJWTService{})

		body, _ := json.Marshal(map[string]string{
			"username":         "alice_42",
			"email":            "alice@example.com",
			"password":         "correct horse battery",
			"password_confirm": "correct horse battery",
		})
		rec := httptest.NewRecorder()
		handler.Register(rec, httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body)))

		require.Equal(t, http.StatusCreated, rec.Code)

		var resp AuthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, user.ID, resp.User.ID)
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
		assert.NotContains(t, rec.Body.String(), "hashed:")
	})

	t.Run("field errors render as 400 map", func(t *testing.T) {
		svc := &stubUserService{
			RegisterFn: func(ctx context.Context, payload validation.RegistrationPayload) (*domain.User, error) {
				return nil, validation.FieldErrors{
					"username": {"This username is already taken"},
					"password": {"This password is too common."},
				}
			},
		}
		handler := NewAuthHandler(svc, &mocks.MockJWTService{})

		body, _ := json.Marshal(map[string]string{"username": "alice_42"})
		rec := httptest.NewRecorder()
		handler.Register(rec, httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body)))

		require.Equal(t, http.StatusBadRequest, rec.Code)

		var resp FieldErrorResponseBody
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Len(t, resp.Errors, 2)
	})
}

func TestAuthHandlerLogin(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		user := sampleUser()
		svc := &stubUserService{
			AuthenticateFn: func(ctx context.Context, username, password string) (*domain.User, error) {
				return user, nil
			},
		}
		handler := NewAuthHandler(svc, &mocks.MockJWTService{})

		body, _ := json.Marshal(map[string]string{"username": "alice_42", "password": "pw"})
		rec := httptest.NewRecorder()
		handler.Login(rec, httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body)))

		require.Equal(t, http.StatusOK, rec.Code)

		var resp AuthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "alice_42", resp.User.Username)
	})

	t.Run("invalid credentials render 401 without detail", func(t *testing.T) {
		svc := &stubUserService{
			AuthenticateFn: func(ctx context.Context, username, password string) (*domain.User, error) {
				return nil, auth.ErrInvalidCredentials
			},
		}
		handler := NewAuthHandler(svc, &mocks.MockJWTService{})

		body, _ := json.Marshal(map[string]string{"username": "alice_42", "password": "wrong"})
		rec := httptest.NewRecorder()
		handler.Login(rec, httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body)))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid username or password")
	})

	t.Run("missing fields rejected before the service", func(t *testing.T) {
		svc := &stubUserService{
			AuthenticateFn: func(ctx context.Context, username, password string) (*domain.User, error) {
				t.Fatal("service must not be called")
				return nil, nil
			},
		}
		handler := NewAuthHandler(svc, &mocks.MockJWTService{})

		body, _ := json.Marshal(map[string]string{"username": "alice_42"})
		rec := httptest.NewRecorder()
		handler.Login(rec, httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAuthHandlerRefreshToken(t *testing.T) {
	t.Run("valid refresh token yields fresh pair", func(t *testing.T) {
		userID := uuid.New()
		handler := NewAuthHandler(&stubUserService{}, &mocks.MockJWTService{FixedUserID: userID})

		body, _ := json.Marshal(map[string]string{"refresh_token": "some-refresh-token"})
		rec := httptest.NewRecorder()
		handler.RefreshToken(rec, httptest.NewRequest(http.MethodPost, "/auth/refresh", bytes.NewReader(body)))

		require.Equal(t, http.StatusOK, rec.Code)

		var resp RefreshTokenResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
	})

	t.Run("invalid refresh token rejected", func(t *testing.T) {
		jwtSvc := &mocks.MockJWTService{
			ValidateRefreshTokenFn: func(ctx context.Context, tokenString string) (*auth.Claims, error) {
				return nil, auth.ErrInvalidToken
			},
		}
		handler := NewAuthHandler(&stubUserService{}, jwtSvc)

		body, _ := json.Marshal(map[string]string{"refresh_token": "expired"})
		rec := httptest.NewRecorder()
		handler.RefreshToken(rec, httptest.NewRequest(http.MethodPost, "/auth/refresh", bytes.NewReader(body)))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestProfileHandler(t *testing.T) {
	t.Run("get requires authentication", func(t *testing.T) {
		handler := NewProfileHandler(&stubUserService{})

		rec := httptest.NewRecorder()
		handler.Get(rec, httptest.NewRequest(http.MethodGet, "/auth/profile", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("get returns own profile", func(t *testing.T) {
		user := sampleUser()
		svc := &stubUserService{
			GetProfileFn: func(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
				assert.Equal(t, user.ID, userID)
				return user, nil
			},
		}
		handler := NewProfileHandler(svc)

		rec := httptest.NewRecorder()
		handler.Get(rec, authedRequest(http.MethodGet, "/auth/profile", nil, user.ID))

		require.Equal(t, http.StatusOK, rec.Code)

		var resp UserResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "alice_42", resp.Username)
	})

	t.Run("patch forwards only present fields", func(t *testing.T) {
		user := sampleUser()
		var seen service.ProfileUpdate
		svc := &stubUserService{
			UpdateProfileFn: func(ctx context.Context, userID uuid.UUID, update service.ProfileUpdate) (*domain.User, error) {
				seen = update
				return user, nil
			},
		}
		handler := NewProfileHandler(svc)

		body := []byte(`{"first_name":"Alicia"}`)
		rec := httptest.NewRecorder()
		handler.Update(rec, authedRequest(http.MethodPatch, "/auth/profile", body, user.ID))

		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, seen.FirstName)
		assert.Equal(t, "Alicia", *seen.FirstName)
		assert.Nil(t, seen.Email)
		assert.Nil(t, seen.LastName)
	})

	t.Run("unknown user renders 404", func(t *testing.T) {
		svc := &stubUserService{
			GetProfileFn: func(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
				return nil, store.ErrUserNotFound
			},
		}
		handler := NewProfileHandler(svc)

		rec := httptest.NewRecorder()
		handler.Get(rec, authedRequest(http.MethodGet, "/auth/profile", nil, uuid.New()))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
