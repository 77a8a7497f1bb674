package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	dErrors "propertyguard/pkg/domain-errors"
	"propertyguard/pkg/platform/httputil"
	"propertyguard/pkg/requestcontext"
)

// Recovery converts panics into 500 responses so a single bad request cannot
// take the server down. The stack is logged, never returned to the client.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					ctx := r.Context()
					logger.ErrorContext(ctx, "panic recovered",
						"request_id", requestcontext.RequestID(ctx),
						"method", r.Method,
						"path", r.URL.Path,
						"panic", rec,
						"stack", string(debug.Stack()),
					)
					httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "internal server error"))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
