package directory

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"huddle/internal/constants"
	"huddle/pkg/metrics"
)

// CacheProvider layers a Redis read-through cache over another provider.
// Cache failures degrade to the inner provider; they are never fatal.
type CacheProvider struct {
	client *redis.Client
	inner  Provider
	ttl    time.Duration
}

func NewCacheProvider(client *redis.Client, inner Provider, ttlSeconds int) *CacheProvider {
	ttl := time.Duration(ttlSeconds) * time.Second
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &CacheProvider{client: client, inner: inner, ttl: ttl}
}

func (p *CacheProvider) Lookup(ctx context.Context, userID string) (DisplayInfo, error) {
	key := constants.CacheKeyPrefixUser + userID

	val, err := p.client.Get(ctx, key).Result()
	if err == nil {
		var info DisplayInfo
		if jsonErr := json.Unmarshal([]byte(val), &info); jsonErr == nil {
			metrics.IncDirectoryLookup("cache", "hit")
			return info, nil
		}
	} else if err != redis.Nil {
		metrics.IncDirectoryLookup("cache", "error")
	}

	info, err := p.inner.Lookup(ctx, userID)
	if err != nil {
		return DisplayInfo{}, err
	}

	if encoded, jsonErr := json.Marshal(info); jsonErr == nil {
		if setErr := p.client.Set(ctx, key, encoded, p.ttl).Err(); setErr != nil {
			metrics.IncDirectoryLookup("cache", "write_error")
		}
	}

	return info, nil
}

var _ Provider = (*CacheProvider)(nil)
