package middleware

import (
	"net/http"
	"regexp"

	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
)

// Coarse URL signature checks. These run before routing and inspect only the
// request path and raw query string, never the body; body content is handled
// by the validation pipeline. The patterns also match percent-encoded forms
// of the quote and the OR keyword.
var (
	sqlInjectionPattern = regexp.MustCompile(`(?i)((\%27)|('))((\%6F)|o|(\%4F))((\%72)|r|(\%52))`)
	xssPattern          = regexp.MustCompile(`(?i)<(script|iframe|embed|object|img|style|applet|body|html|form|input)`)
)

// SecurityPerimeter rejects requests whose URL carries SQL injection or HTML
// injection signatures with a generic 403 before any handler runs.
func SecurityPerimeter(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		target := r.URL.Path
		if r.URL.RawQuery != "" {
			target += "?" + r.URL.RawQuery
		}

		if sqlInjectionPattern.MatchString(target) || xssPattern.MatchString(target) {
			logger.FromContext(r.Context()).Warn("security perimeter violation",
				"client_ip", r.RemoteAddr,
				"method", r.Method,
				"path", r.URL.Path)
			shared.RespondWithError(w, r, http.StatusForbidden, "Forbidden")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// SecurityHeaders sets the response headers applied to every response,
// including error responses produced earlier in the chain.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-XSS-Protection", "1; mode=block")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		h.Set("Cache-Control", "no-store")
		h.Set("Pragma", "no-cache")

		next.ServeHTTP(w, r)
	})
}
