package middleware

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propertyguard/internal/ratelimit/models"
	"propertyguard/internal/ratelimit/service"
	"propertyguard/internal/ratelimit/store/bucket"
	"propertyguard/pkg/platform/middleware/metadata"
	"propertyguard/pkg/testutil"
)

// newLimitedRouter mounts a trivial API behind the real limiter over the
// in-memory bucket store.
func newLimitedRouter(t *testing.T) http.Handler {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	limiter := service.NewLimiter(bucket.NewInMemory(), service.WithLogger(logger))

	r := chi.NewRouter()
	r.Use(metadata.ClientMetadata)
	r.Use(New(limiter, logger).RateLimit)
	r.Get("/municipalities", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Post("/enhanced-properties/{propertyID}/council-import", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return r
}

func TestRateLimitHeaders(t *testing.T) {
	router := newLimitedRouter(t)

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/municipalities"))

	testutil.AssertStatusOK(t, rr)
	assert.Equal(t, "100", rr.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "99", rr.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, rr.Header().Get("X-RateLimit-Reset"))
}

func TestImportBudgetExhausts(t *testing.T) {
	router := newLimitedRouter(t)
	path := "/enhanced-properties/1db9a611-9d95-4dcf-a06f-786f087f7621/council-import"

	for i := 0; i < 10; i++ {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, path, map[string]string{"municipality": "City of Cape Town"}))
		require.Equal(t, http.StatusOK, rr.Code, "request %d should fit the import budget", i+1)
	}

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, path, map[string]string{"municipality": "City of Cape Town"}))
	testutil.AssertStatus(t, rr, http.StatusTooManyRequests)
	assert.NotEmpty(t, rr.Header().Get("Retry-After"))

	body := testutil.UnmarshalResponse[models.RateLimitExceededResponse](t, rr)
	assert.Equal(t, "rate_limit_exceeded", body.Error)
	assert.GreaterOrEqual(t, body.RetryAfter, 1)

	// The read budget is separate and still open.
	read := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/municipalities"))
	testutil.AssertStatusOK(t, read)
}

func TestClientsDoNotShareWindows(t *testing.T) {
	router := newLimitedRouter(t)
	path := "/enhanced-properties/1db9a611-9d95-4dcf-a06f-786f087f7621/council-import"

	for i := 0; i < 10; i++ {
		req := testutil.NewJSONRequest(t, http.MethodPost, path, map[string]string{})
		req.Header.Set("X-Forwarded-For", "203.0.113.7")
		rr := testutil.DoRequest(router, req)
		require.Equal(t, http.StatusOK, rr.Code)
	}

	// Same endpoint, different caller.
	req := testutil.NewJSONRequest(t, http.MethodPost, path, map[string]string{})
	req.Header.Set("X-Forwarded-For", "203.0.113.8")
	rr := testutil.DoRequest(router, req)
	testutil.AssertStatusOK(t, rr)
}

// brokenStore simulates the shared window backend being down.
type brokenStore struct{}

func (brokenStore) Allow(context.Context, string, int, time.Duration) (*models.RateLimitResult, error) {
	return nil, errors.New("window backend unavailable")
}

func TestLimiterFailureFailsOpen(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	limiter := service.NewLimiter(brokenStore{}, service.WithLogger(logger))

	r := chi.NewRouter()
	r.Use(New(limiter, logger).RateLimit)
	r.Get("/municipalities", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rr := testutil.DoRequest(r, testutil.NewRequest(t, http.MethodGet, "/municipalities"))
	testutil.AssertStatusOK(t, rr)
}
