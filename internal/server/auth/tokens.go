package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/arshan09/AuthenticationApp/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims carries the identity fields of every token kind on top of the
// registered claims (exp, iat, jti).
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"userId"`
	Email    string `json:"email,omitempty"`
	DeviceID string `json:"deviceId,omitempty"`
}

// Identity is the subset of claims callers pass in when minting.
type Identity struct {
	UserID   string
	Email    string
	DeviceID string
}

func (c *Claims) Identity() Identity {
	return Identity{UserID: c.UserID, Email: c.Email, DeviceID: c.DeviceID}
}

// TTLs holds the validity window of each kind.
type TTLs struct {
	Access  time.Duration
	Refresh time.Duration
	Reset   time.Duration
}

// DefaultTTLs are 1h access, 5m refresh and 30m reset.
var DefaultTTLs = TTLs{
	Access:  time.Hour,
	Refresh: 5 * time.Minute,
	Reset:   30 * time.Minute,
}

// TokenService mints and verifies HS256 tokens.
type TokenService struct {
	keys *KeyRegistry
	ttls TTLs
	now  func() time.Time
}

func NewTokenService(keys *KeyRegistry, ttls TTLs) *TokenService {
	return &TokenService{keys: keys, ttls: ttls, now: time.Now}
}

// WithClock replaces the time source. Used by tests.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	s.now = now
	return s
}

func (s *TokenService) Now() time.Time {
	return s.now()
}

func (s *TokenService) TTL(kind Kind) time.Duration {
	switch kind {
	case Access:
		return s.ttls.Access
	case Refresh:
		return s.ttls.Refresh
	default:
		return s.ttls.Reset
	}
}

// Mint signs a token of the given kind valid for the kind's configured TTL.
func (s *TokenService) Mint(kind Kind, id Identity) (string, error) {
	return s.MintWithTTL(kind, id, s.TTL(kind))
}

// MintWithTTL signs a token of the given kind valid for ttl from now.
func (s *TokenService) MintWithTTL(kind Kind, id Identity, ttl time.Duration) (string, error) {
	key, err := s.keys.key(kind)
	if err != nil {
		return "", err
	}

	now := s.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:   id.UserID,
		Email:    id.Email,
		DeviceID: id.DeviceID,
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", kind, err)
	}
	return tokenString, nil
}

// Verify checks signature and expiry under the kind's key.
func (s *TokenService) Verify(kind Kind, tokenString string) (*Claims, error) {
	key, err := s.keys.key(kind)
	if err != nil {
		return nil, err
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, mapJWTError(err)
	}
	if !token.Valid {
		return nil, common.ErrInvalidToken
	}
	return claims, nil
}

// Decode returns the claims without checking signature or expiry.
func (s *TokenService) Decode(tokenString string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, common.ErrTokenMalformed
	}
	return claims, nil
}

func mapJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return common.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return common.ErrInvalidSignature
	case errors.Is(err, jwt.ErrTokenMalformed):
		return common.ErrTokenMalformed
	default:
		return fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
}
