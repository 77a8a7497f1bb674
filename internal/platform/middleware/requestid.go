package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"propertyguard/pkg/requestcontext"
)

// requestIDHeader carries the request ID to clients and upstream proxies.
const requestIDHeader = "X-Request-ID"

// RequestID assigns every request an ID for log and audit correlation.
// An inbound X-Request-ID is honored so IDs survive proxy hops.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		w.Header().Set(requestIDHeader, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
