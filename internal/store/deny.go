package store

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const denyPrefix = "deny:"

// DenyStore is the access-token denylist. Entries carry no payload; Redis
// TTL eviction guarantees an entry disappears no later than the token's own
// expiry, since callers derive the TTL from the token's remaining lifetime.
type DenyStore struct {
	rdb *redis.Client
}

func NewDenyStore(rdb *redis.Client) *DenyStore {
	return &DenyStore{rdb: rdb}
}

func (s *DenyStore) key(token string) string { return denyPrefix + token }

// Add denylists the token for ttl. Entries are never mutated afterwards.
func (s *DenyStore) Add(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return errors.New("deny ttl must be positive")
	}
	return s.rdb.Set(ctx, s.key(token), "1", ttl).Err()
}

func (s *DenyStore) Exists(ctx context.Context, token string) (bool, error) {
	n, err := s.rdb.Exists(ctx, s.key(token)).Result()
	return n > 0, err
}
