package auth

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrInvalidRefresh marks a refresh token that fails decoding, whether
	// tampered, malformed, or past its encoded expiry.
	ErrInvalidRefresh = errors.New("invalid refresh token")
	// ErrRefreshNotFound marks a structurally valid refresh token with no
	// record in the store: already rotated, logged out, or evicted.
	ErrRefreshNotFound = errors.New("refresh token not found")
	// ErrUserNotFound marks a refresh record whose owner no longer exists.
	ErrUserNotFound = errors.New("user not found")
)

// RefreshRecord ties a stored refresh token to its owner.
type RefreshRecord struct {
	UserID    uint
	ExpiresAt time.Time
}

// RefreshStore persists refresh tokens keyed by the token string. Get on an
// absent token returns (nil, nil); Delete on an absent token is a no-op.
type RefreshStore interface {
	Put(ctx context.Context, token string, userID uint, expiresAt time.Time) error
	Get(ctx context.Context, token string) (*RefreshRecord, error)
	Delete(ctx context.Context, token string) error
}

// DenyStore is the access-token denylist. Entries self-expire after their
// TTL elapses.
type DenyStore interface {
	DenyList
	Add(ctx context.Context, token string, ttl time.Duration) error
}

// UserResolver recovers the subject and role for a refresh record's owner.
// Absence is reported as ErrUserNotFound.
type UserResolver interface {
	ResolveUser(ctx context.Context, id uint) (subject, role string, err error)
}

// TokenPair is a freshly minted access+refresh pair. The access token goes
// out in the Authorization response header, the refresh token in the body.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Sessions mints token pairs and implements refresh rotation and logout.
type Sessions struct {
	codec   *Codec
	refresh RefreshStore
	deny    DenyStore
	users   UserResolver
	now     func() time.Time
}

func NewSessions(codec *Codec, refresh RefreshStore, deny DenyStore, users UserResolver) *Sessions {
	return &Sessions{
		codec:   codec,
		refresh: refresh,
		deny:    deny,
		users:   users,
		now:     time.Now,
	}
}

// IssuePair mints an access+refresh pair and persists the refresh record.
func (s *Sessions) IssuePair(ctx context.Context, userID uint, subject, role string) (*TokenPair, error) {
	access, err := s.codec.EncodeAccess(subject, role)
	if err != nil {
		return nil, err
	}
	refresh, err := s.codec.EncodeRefresh()
	if err != nil {
		return nil, err
	}
	if err := s.refresh.Put(ctx, refresh, userID, s.now().Add(s.codec.RefreshTTL())); err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh exchanges a refresh token for a new pair and rotates it. The new
// pair is persisted before the old record is deleted: a crash in between
// leaves the old token usable exactly once more instead of locking the user
// out.
func (s *Sessions) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if _, err := s.codec.Decode(refreshToken); err != nil {
		return nil, ErrInvalidRefresh
	}
	record, err := s.refresh.Get(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrRefreshNotFound
	}
	subject, role, err := s.users.ResolveUser(ctx, record.UserID)
	if err != nil {
		return nil, err
	}
	pair, err := s.IssuePair(ctx, record.UserID, subject, role)
	if err != nil {
		return nil, err
	}
	if err := s.refresh.Delete(ctx, refreshToken); err != nil {
		return nil, err
	}
	return pair, nil
}

// Logout invalidates the refresh token and denylists the access token for
// its remaining lifetime. Deriving the TTL from the token's own expiry keeps
// the denylist bounded to at most one live entry per outstanding access
// token.
func (s *Sessions) Logout(ctx context.Context, refreshToken, accessToken string) error {
	if _, err := s.codec.Decode(refreshToken); err != nil {
		return ErrInvalidRefresh
	}
	record, err := s.refresh.Get(ctx, refreshToken)
	if err != nil {
		return err
	}
	if record == nil {
		return ErrRefreshNotFound
	}
	if err := s.refresh.Delete(ctx, refreshToken); err != nil {
		return err
	}
	remaining, err := s.codec.Remaining(accessToken)
	if err != nil {
		return err
	}
	// A token within a second of natural expiry is not worth denylisting.
	if remaining < time.Second {
		return nil
	}
	return s.deny.Add(ctx, accessToken, remaining.Truncate(time.Second))
}
