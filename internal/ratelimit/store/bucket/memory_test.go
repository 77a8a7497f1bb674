package bucket

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

const (
	testLimit = 5
	testSpan  = time.Minute
)

type BucketStoreSuite struct {
	suite.Suite

	store *InMemory
	ctx   context.Context
}

func TestBucketStoreSuite(t *testing.T) {
	suite.Run(t, new(BucketStoreSuite))
}

func (s *BucketStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func (s *BucketStoreSuite) TestAllow() {
	s.Run("first request is allowed", func() {
		result, err := s.store.Allow(s.ctx, "read:10.0.0.1", testLimit, testSpan)
		s.Require().NoError(err)
		s.True(result.Allowed)
		s.Equal(testLimit, result.Limit)
		s.Equal(testLimit-1, result.Remaining)
	})

	s.Run("requests up to the limit are allowed", func() {
		for i := 0; i < testLimit; i++ {
			result, err := s.store.Allow(s.ctx, "read:10.0.0.2", testLimit, testSpan)
			s.Require().NoError(err)
			s.True(result.Allowed)
			s.Equal(testLimit-i-1, result.Remaining)
		}
	})

	s.Run("request over the limit is denied", func() {
		for i := 0; i < testLimit; i++ {
			_, err := s.store.Allow(s.ctx, "read:10.0.0.3", testLimit, testSpan)
			s.Require().NoError(err)
		}

		result, err := s.store.Allow(s.ctx, "read:10.0.0.3", testLimit, testSpan)
		s.Require().NoError(err)
		s.False(result.Allowed)
		s.Equal(testLimit, result.Limit)
		s.Equal(0, result.Remaining)
		s.GreaterOrEqual(result.RetryAfter, 1)
		s.False(result.ResetAt.IsZero())
	})

	s.Run("keys do not share windows", func() {
		for i := 0; i < testLimit; i++ {
			_, err := s.store.Allow(s.ctx, "write:10.0.0.4", testLimit, testSpan)
			s.Require().NoError(err)
		}

		result, err := s.store.Allow(s.ctx, "read:10.0.0.4", testLimit, testSpan)
		s.Require().NoError(err)
		s.True(result.Allowed)
	})

	s.Run("requests are allowed again once the window slides past", func() {
		for i := 0; i < testLimit; i++ {
			_, err := s.store.Allow(s.ctx, "read:10.0.0.5", testLimit, testSpan)
			s.Require().NoError(err)
		}

		// Backdate the recorded requests past the window edge.
		s.store.mu.Lock()
		w := s.store.windows["read:10.0.0.5"]
		for i := range w.timestamps {
			w.timestamps[i] = w.timestamps[i].Add(-testSpan - time.Second)
		}
		s.store.mu.Unlock()

		result, err := s.store.Allow(s.ctx, "read:10.0.0.5", testLimit, testSpan)
		s.Require().NoError(err)
		s.True(result.Allowed)
		s.Equal(testLimit-1, result.Remaining)
	})
}

func (s *BucketStoreSuite) TestReset() {
	for i := 0; i < testLimit; i++ {
		_, err := s.store.Allow(s.ctx, "import:10.0.0.6", testLimit, testSpan)
		s.Require().NoError(err)
	}

	s.Require().NoError(s.store.Reset(s.ctx, "import:10.0.0.6"))

	result, err := s.store.Allow(s.ctx, "import:10.0.0.6", testLimit, testSpan)
	s.Require().NoError(err)
	s.True(result.Allowed)
	s.Equal(testLimit-1, result.Remaining)
}
