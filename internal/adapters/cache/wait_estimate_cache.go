package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"

	"github.com/walkline/queue-service/internal/config"
	"github.com/walkline/queue-service/internal/core/ports"
)

// DefaultTTL keeps cached estimates fresher than the shortest client
// polling interval.
const DefaultTTL = 3 * time.Second

// WaitEstimateCache stores composite wait estimates in Redis for the
// polling read path. Redis trouble trips the circuit breaker; the query
// facade treats any error here as a miss and reads directly.
type WaitEstimateCache struct {
	client *redis.Client
	cb     *gobreaker.CircuitBreaker
	ttl    time.Duration
}

var _ ports.WaitEstimateCache = (*WaitEstimateCache)(nil)

func NewWaitEstimateCache(client *redis.Client, ttl time.Duration) *WaitEstimateCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &WaitEstimateCache{
		client: client,
		cb:     config.NewCircuitBreaker("Redis-Cache"),
		ttl:    ttl,
	}
}

func (c *WaitEstimateCache) GetWaitEstimate(ctx context.Context, serviceID string) (*ports.WaitEstimate, error) {
	val, err := c.cb.Execute(func() (interface{}, error) {
		data, err := c.client.Get(ctx, cacheKey(serviceID)).Result()
		if err == redis.Nil {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		var est ports.WaitEstimate
		if err := json.Unmarshal([]byte(data), &est); err != nil {
			return nil, err
		}
		return &est, nil
	})
	if err != nil {
		return nil, err
	}
	if val == nil {
		return nil, nil
	}
	return val.(*ports.WaitEstimate), nil
}

func (c *WaitEstimateCache) SetWaitEstimate(ctx context.Context, est ports.WaitEstimate) error {
	data, err := json.Marshal(est)
	if err != nil {
		return err
	}
	_, err = c.cb.Execute(func() (interface{}, error) {
		return nil, c.client.Set(ctx, cacheKey(est.ServiceID), data, c.ttl).Err()
	})
	return err
}

func cacheKey(serviceID string) string {
	return "wait:" + serviceID
}
