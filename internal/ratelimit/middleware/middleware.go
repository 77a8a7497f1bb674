// Package middleware enforces API rate limits at the router. Limiter
// failures never block traffic: the check logs and the request proceeds.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"propertyguard/internal/ratelimit/models"
	"propertyguard/pkg/platform/httputil"
	metadata "propertyguard/pkg/platform/middleware/metadata"
)

// Limiter is the slice of the rate limit service the middleware drives.
type Limiter interface {
	Check(ctx context.Context, clientIP string, class models.EndpointClass) (*models.RateLimitResult, error)
}

type Middleware struct {
	limiter Limiter
	logger  *slog.Logger
}

func New(limiter Limiter, logger *slog.Logger) *Middleware {
	return &Middleware{limiter: limiter, logger: logger}
}

// RateLimit classifies each request and checks it against the client's
// window. Requests over budget get a 429 with Retry-After; every response
// carries the X-RateLimit headers.
func (m *Middleware) RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ip := metadata.GetClientIP(ctx)
		if ip == "" {
			ip = metadata.ClientIPFromRequest(r)
		}

		result, err := m.limiter.Check(ctx, ip, classify(r))
		if err != nil {
			m.logger.ErrorContext(ctx, "rate limit check failed", "error", err)
			next.ServeHTTP(w, r)
			return
		}

		addHeaders(w, result)
		if !result.Allowed {
			w.Header().Set("Retry-After", strconv.Itoa(result.RetryAfter))
			httputil.WriteJSON(w, http.StatusTooManyRequests, &models.RateLimitExceededResponse{
				Error:      "rate_limit_exceeded",
				Message:    "Too many requests from this address. Please try again later.",
				RetryAfter: result.RetryAfter,
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}

// classify maps a request onto its endpoint class.
func classify(r *http.Request) models.EndpointClass {
	if strings.HasSuffix(r.URL.Path, "/council-import") {
		return models.ClassImport
	}
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return models.ClassRead
	}
	return models.ClassWrite
}

func addHeaders(w http.ResponseWriter, result *models.RateLimitResult) {
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
}
