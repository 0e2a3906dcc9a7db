package grpc_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	grpcAdapter "github.com/andrescamacho/baron-go/internal/adapters/grpc"
	"github.com/andrescamacho/baron-go/internal/infrastructure/config"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func TestActionLimiter_BucketPerGame(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	limiter := grpcAdapter.NewActionLimiter(config.ActionRateConfig{PerSecond: 1, Burst: 2}, clock.Now)

	assert.True(t, limiter.Allow("g1"))
	assert.True(t, limiter.Allow("g1"))
	assert.False(t, limiter.Allow("g1"))
	assert.True(t, limiter.Allow("g2"))

	clock.now = clock.now.Add(time.Second)
	assert.True(t, limiter.Allow("g1"))
	assert.Equal(t, 2, limiter.Len())
}

func TestActionLimiter_DropsRefilledBuckets(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	// a bucket of 5 refills in 5 seconds
	limiter := grpcAdapter.NewActionLimiter(config.ActionRateConfig{PerSecond: 1, Burst: 5}, clock.Now)

	for i := 0; i < 100; i++ {
		limiter.Allow(fmt.Sprintf("unknown-%d", i))
	}
	assert.Equal(t, 100, limiter.Len())

	clock.now = clock.now.Add(3 * time.Second)
	limiter.Allow("active")
	assert.Equal(t, 101, limiter.Len(), "buckets still refilling are kept")

	clock.now = clock.now.Add(3 * time.Second)
	assert.True(t, limiter.Allow("active"))
	assert.Equal(t, 1, limiter.Len())
}

func TestActionLimiter_Forget(t *testing.T) {
	limiter := grpcAdapter.NewActionLimiter(config.ActionRateConfig{PerSecond: 0.001, Burst: 1}, time.Now)

	assert.True(t, limiter.Allow("g1"))
	assert.False(t, limiter.Allow("g1"))
	limiter.Forget("g1")

	assert.Zero(t, limiter.Len())
	assert.True(t, limiter.Allow("g1"))
}
