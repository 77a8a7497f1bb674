// Package bucket counts requests in per-key sliding windows. The key is
// whatever scope the caller limits on; the limiter uses class:clientIP.
package bucket

import (
	"context"
	"sync"
	"time"

	"propertyguard/internal/ratelimit/models"
)

// InMemory keeps sliding windows in process memory. Single-replica only;
// deployments behind a load balancer configure the Redis store so every
// replica sees the same counts.
type InMemory struct {
	mu      sync.Mutex
	windows map[string]*window
}

type window struct {
	timestamps []time.Time
	span       time.Duration
}

func NewInMemory() *InMemory {
	return &InMemory{windows: make(map[string]*window)}
}

// Allow records one request against the key if the window has room. A
// sliding window rather than fixed buckets, so a burst straddling a bucket
// boundary cannot double the effective limit.
func (s *InMemory) Allow(_ context.Context, key string, limit int, span time.Duration) (*models.RateLimitResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	w := s.windows[key]
	if w == nil {
		w = &window{span: span}
		s.windows[key] = w
	}
	w.expire(now)

	if len(w.timestamps) >= limit {
		resetAt := w.timestamps[0].Add(span)
		return &models.RateLimitResult{
			Allowed:    false,
			Limit:      limit,
			Remaining:  0,
			ResetAt:    resetAt,
			RetryAfter: retryAfterSeconds(now, resetAt),
		}, nil
	}

	w.timestamps = append(w.timestamps, now)
	return &models.RateLimitResult{
		Allowed:   true,
		Limit:     limit,
		Remaining: limit - len(w.timestamps),
		ResetAt:   w.timestamps[0].Add(span),
	}, nil
}

// Reset clears the window for a key.
func (s *InMemory) Reset(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.windows, key)
	return nil
}

// expire drops timestamps that have left the window. Callers hold the lock.
func (w *window) expire(now time.Time) {
	cutoff := now.Add(-w.span)
	i := 0
	for ; i < len(w.timestamps); i++ {
		if w.timestamps[i].After(cutoff) {
			break
		}
	}
	w.timestamps = w.timestamps[i:]
}

// retryAfterSeconds rounds the wait up to whole seconds, minimum one, so a
// client honouring Retry-After never comes back early.
func retryAfterSeconds(now, resetAt time.Time) int {
	wait := resetAt.Sub(now)
	secs := int((wait + time.Second - 1) / time.Second)
	if secs < 1 {
		secs = 1
	}
	return secs
}
