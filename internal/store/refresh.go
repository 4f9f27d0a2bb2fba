package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bb3/bodybuddy/internal/auth"
)

const refreshPrefix = "rt:"

// refreshRecord is the stored layout of a refresh token: owner and expiry in
// epoch milliseconds.
type refreshRecord struct {
	UserID    uint  `json:"user_id"`
	ExpiresAt int64 `json:"expires_at"`
}

// RefreshStore keeps refresh tokens in Redis, keyed by the token string,
// with a per-entry TTL equal to the token's remaining lifetime so stale
// records evict themselves.
type RefreshStore struct {
	rdb *redis.Client
}

func NewRefreshStore(rdb *redis.Client) *RefreshStore {
	return &RefreshStore{rdb: rdb}
}

func (s *RefreshStore) key(token string) string { return refreshPrefix + token }

func (s *RefreshStore) Put(ctx context.Context, token string, userID uint, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return errors.New("refresh token expiry is in the past")
	}
	payload, err := json.Marshal(refreshRecord{UserID: userID, ExpiresAt: expiresAt.UnixMilli()})
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, s.key(token), payload, ttl).Err()
}

// Get returns (nil, nil) when the token has no record.
func (s *RefreshStore) Get(ctx context.Context, token string) (*auth.RefreshRecord, error) {
	raw, err := s.rdb.Get(ctx, s.key(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var rec refreshRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, err
	}
	return &auth.RefreshRecord{UserID: rec.UserID, ExpiresAt: time.UnixMilli(rec.ExpiresAt)}, nil
}

// Delete is idempotent: deleting an absent token is a no-op.
func (s *RefreshStore) Delete(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, s.key(token)).Err()
}

func (s *RefreshStore) Exists(ctx context.Context, token string) (bool, error) {
	n, err := s.rdb.Exists(ctx, s.key(token)).Result()
	return n > 0, err
}
