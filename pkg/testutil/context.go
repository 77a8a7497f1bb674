package testutil

import (
	"net/http"
	"time"

	"propertyguard/pkg/requestcontext"
)

// WithRequestTime pins the request-scoped clock on a request. Handlers and
// services read time through requestcontext.Now, so tests that care about
// timestamps route requests through this instead of the requesttime
// middleware.
func WithRequestTime(req *http.Request, now time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), now))
}

// WithRequestID sets the correlation ID on a request, standing in for the
// RequestID middleware.
func WithRequestID(req *http.Request, requestID string) *http.Request {
	return req.WithContext(requestcontext.WithRequestID(req.Context(), requestID))
}
