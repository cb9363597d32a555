// Package middleware provides the HTTP middleware chain: request tracing,
// authentication, the security perimeter, response security headers, and
// rate limiting.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
)

// TraceMiddleware adds a trace ID to the request context and injects a
// request-scoped logger carrying the trace ID and client IP. Handlers and
// stores retrieve it with logger.FromContext, so every security-relevant log
// line downstream is correlated without any global mutable logger state.
type TraceMiddleware struct {
	logger *slog.Logger
}

// NewTraceMiddleware creates a new TraceMiddleware based on the given root
// logger.
func NewTraceMiddleware(log *slog.Logger) *TraceMiddleware {
	if log == nil {
		log = slog.Default()
	}
	return &TraceMiddleware{logger: log}
}

// Handler applies the middleware. It should run early in the chain so all
// subsequent handlers see the trace ID and the scoped logger.
func (m *TraceMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.SetTraceID(r.Context())
		traceID := shared.GetTraceID(ctx)

		log := m.logger.With(
			slog.String("trace_id", traceID),
			slog.String("client_ip", r.RemoteAddr),
		)
		ctx = logger.WithLogger(ctx, log)

		log.Debug("request started",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
