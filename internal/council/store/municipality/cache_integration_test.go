//go:build integration

package municipality_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"propertyguard/internal/council/models"
	"propertyguard/internal/council/store/municipality"
	id "propertyguard/pkg/domain"
	"propertyguard/pkg/testutil/containers"
)

type countingLister struct {
	inner *municipality.InMemory
	calls atomic.Int32
}

func (c *countingLister) List(ctx context.Context) ([]*models.Municipality, error) {
	c.calls.Add(1)
	return c.inner.List(ctx)
}

type CacheSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	inner *countingLister
	cache *municipality.Cache
}

func TestCacheSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(CacheSuite))
}

func (s *CacheSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.redis = mgr.GetRedis(s.T())
}

func (s *CacheSuite) SetupTest() {
	ctx := context.Background()
	s.Require().NoError(s.redis.FlushAll(ctx))

	s.inner = &countingLister{inner: municipality.NewInMemory()}
	s.seed("City of Cape Town")
	s.cache = municipality.NewCache(s.inner, s.redis.Client, time.Minute)
}

func (s *CacheSuite) seed(name string) {
	now := time.Now().UTC().Truncate(time.Second)
	err := s.inner.inner.Create(context.Background(), &models.Municipality{
		ID:                id.MunicipalityID(uuid.New()),
		Name:              name,
		IntegrationStatus: models.IntegrationStatusManual,
		CreatedAt:         now,
		UpdatedAt:         now,
	})
	s.Require().NoError(err)
}

// TestReadThrough verifies the first read populates Redis and later reads
// skip the wrapped store.
func (s *CacheSuite) TestReadThrough() {
	ctx := context.Background()

	first, err := s.cache.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(first, 1)
	s.Equal(int32(1), s.inner.calls.Load())

	second, err := s.cache.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(second, 1)
	s.Equal(first[0].ID, second[0].ID)
	s.Equal(int32(1), s.inner.calls.Load(), "cached read must not hit the store")
}

// TestInvalidate verifies invalidation forces the next read through to the
// wrapped store.
func (s *CacheSuite) TestInvalidate() {
	ctx := context.Background()

	_, err := s.cache.List(ctx)
	s.Require().NoError(err)
	s.seed("City of Johannesburg")

	cached, err := s.cache.List(ctx)
	s.Require().NoError(err)
	s.Len(cached, 1, "directory changes stay invisible until invalidation")

	s.cache.Invalidate(ctx)

	fresh, err := s.cache.List(ctx)
	s.Require().NoError(err)
	s.Len(fresh, 2)
	s.Equal(int32(2), s.inner.calls.Load())
}

// TestCorruptPayloadFallsThrough verifies a bad cache entry degrades to a
// database read instead of an error.
func (s *CacheSuite) TestCorruptPayloadFallsThrough() {
	ctx := context.Background()

	s.Require().NoError(s.redis.Client.Set(ctx, "council:municipalities", "not json", time.Minute).Err())

	listed, err := s.cache.List(ctx)
	s.Require().NoError(err)
	s.Len(listed, 1)
	s.Equal(int32(1), s.inner.calls.Load())
}
