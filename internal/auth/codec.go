package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Decode failure classes. The Validator and the HTTP boundary map these to
// 401 responses; they never carry store errors.
var (
	ErrMalformed        = errors.New("malformed token")
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrExpired          = errors.New("token expired")
)

// Claims is the payload of an access token. Refresh tokens carry only the
// registered iat/exp fields; the subject is recovered from the refresh store,
// so refresh tokens stay opaque to the client.
type Claims struct {
	Role string `json:"auth,omitempty"`
	jwt.RegisteredClaims
}

// Codec encodes and decodes signed tokens with a single fixed algorithm
// (HS256). Any token claiming another algorithm is rejected outright.
type Codec struct {
	key        KeyMaterial
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewCodec(key KeyMaterial, accessTTL, refreshTTL time.Duration) *Codec {
	return &Codec{
		key:        key,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

func (c *Codec) AccessTTL() time.Duration  { return c.accessTTL }
func (c *Codec) RefreshTTL() time.Duration { return c.refreshTTL }

// EncodeAccess mints an access token carrying the subject and role.
func (c *Codec) EncodeAccess(subject, role string) (string, error) {
	now := c.now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.accessTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.key.Bytes())
}

// EncodeRefresh mints a refresh token with an empty claim set apart from
// iat/exp.
func (c *Codec) EncodeRefresh() (string, error) {
	now := c.now()
	claims := jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.refreshTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.key.Bytes())
}

// Decode verifies the signature and parses the claims. No clock-skew leeway:
// a token is expired the instant now reaches exp.
func (c *Codec) Decode(token string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, c.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return nil, decodeError(err)
	}
	return claims, nil
}

// Remaining reports the time until the token's expiry. The signature must
// still verify, but expiry is not enforced, so the result may be negative.
func (c *Codec) Remaining(token string) (time.Duration, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, c.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return 0, decodeError(err)
	}
	if claims.ExpiresAt == nil {
		return 0, ErrMalformed
	}
	return claims.ExpiresAt.Time.Sub(c.now()), nil
}

func (c *Codec) keyFunc(*jwt.Token) (interface{}, error) {
	return c.key.Bytes(), nil
}

func decodeError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrInvalidSignature
	default:
		return ErrMalformed
	}
}
