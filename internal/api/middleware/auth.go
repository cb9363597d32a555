package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/service/auth"
)

// AuthMiddleware validates bearer tokens and stores the authenticated user
// ID in the request context.
type AuthMiddleware struct {
	jwtService auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware with the given JWT service.
func NewAuthMiddleware(jwtService auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

// AuthenticateOptional validates the Authorization header when one is
// present and stores the user ID in the context. Requests without a header
// proceed as anonymous. A header that is present but malformed or invalid is
// rejected with 401: a client that sends credentials must send valid ones.
func (m *AuthMiddleware) AuthenticateOptional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}
		ctx, ok := m.authenticate(w, r, header)
		if !ok {
			return
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuthenticated rejects requests whose context carries no
// authenticated principal. It is meant to run after AuthenticateOptional,
// which has already validated any presented token, so it does not parse the
// token again.
func (m *AuthMiddleware) RequireAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !shared.PrincipalFromContext(r.Context()).IsAuthenticated() {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Authenticate requires a valid bearer token. Requests without one are
// rejected with 401.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
			return
		}
		ctx, ok := m.authenticate(w, r, header)
		if !ok {
			return
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *AuthMiddleware) authenticate(w http.ResponseWriter, r *http.Request, header string) (context.Context, bool) {
	log := logger.FromContext(r.Context())

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		log.Debug("malformed authorization header")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid authorization header format")
		return nil, false
	}

	claims, err := m.jwtService.ValidateToken(r.Context(), parts[1])
	if err != nil {
		log.Debug("token validation failed", "error", err)
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid or expired token")
		return nil, false
	}

	ctx := context.WithValue(r.Context(), shared.UserIDContextKey, claims.UserID)
	return ctx, true
}
