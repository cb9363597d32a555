package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"

	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/config"
)

// NewRateLimiter builds the per-minute request throttle. Anonymous requests
// are counted per client IP; authenticated requests are counted per user ID
// and get the higher limit. It must run after AuthenticateOptional so the
// principal is already in the context.
func NewRateLimiter(cfg config.RateLimitConfig) func(http.Handler) http.Handler {
	anon := httprate.NewRateLimiter(cfg.AnonymousPerMinute, time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(limitExceeded),
	)
	authed := httprate.NewRateLimiter(cfg.AuthenticatedPerMinute, time.Minute,
		httprate.WithKeyFuncs(keyByPrincipal),
		httprate.WithLimitHandler(limitExceeded),
	)

	return func(next http.Handler) http.Handler {
		anonNext := anon.Handler(next)
		authedNext := authed.Handler(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if shared.PrincipalFromContext(r.Context()).IsAuthenticated() {
				authedNext.ServeHTTP(w, r)
				return
			}
			anonNext.ServeHTTP(w, r)
		})
	}
}

func keyByPrincipal(r *http.Request) (string, error) {
	return shared.PrincipalFromContext(r.Context()).String(), nil
}

func limitExceeded(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithError(w, r, http.StatusTooManyRequests, "Request limit exceeded, try again later")
}
