package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/arshan09/AuthenticationApp/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *TokenService {
	t.Helper()
	keys, err := NewKeyRegistry([]byte("access-secret"), []byte("refresh-secret"), []byte("reset-secret"))
	require.NoError(t, err)
	return NewTokenService(keys, DefaultTTLs)
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func TestNewKeyRegistry_FailsOnMissingKey(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name                   string
		access, refresh, reset []byte
	}{
		{"no access", nil, []byte("r"), []byte("x")},
		{"no refresh", []byte("a"), nil, []byte("x")},
		{"no reset", []byte("a"), []byte("r"), []byte{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewKeyRegistry(tc.access, tc.refresh, tc.reset)
			require.ErrorIs(t, err, common.ErrMissingSigningKey)
		})
	}
}

func TestMintAndVerify_RoundTrip(t *testing.T) {
	t.Parallel()
	s := newTestService(t)

	id := Identity{UserID: "u-1", Email: "a@x.io", DeviceID: "dev-1"}
	tok, err := s.Mint(Access, id)
	require.NoError(t, err)

	claims, err := s.Verify(Access, tok)
	require.NoError(t, err)
	assert.Equal(t, id, claims.Identity())
	assert.NotEmpty(t, claims.ID)
	assert.Equal(t, time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestVerify_KindsUseIndependentKeys(t *testing.T) {
	t.Parallel()
	s := newTestService(t)

	refresh, err := s.Mint(Refresh, Identity{UserID: "u-1", DeviceID: "d"})
	require.NoError(t, err)

	_, err = s.Verify(Access, refresh)
	assert.ErrorIs(t, err, common.ErrInvalidSignature)

	_, err = s.Verify(Reset, refresh)
	assert.ErrorIs(t, err, common.ErrInvalidSignature)

	_, err = s.Verify(Refresh, refresh)
	assert.NoError(t, err)
}

func TestVerify_ExpiresAfterTTL(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	s := newTestService(t).WithClock(clock.Now)

	tests := []struct {
		kind Kind
		ttl  time.Duration
	}{
		{Access, time.Hour},
		{Refresh, 5 * time.Minute},
		{Reset, 30 * time.Minute},
	}
	for _, tt := range tests {
		tok, err := s.Mint(tt.kind, Identity{UserID: "u"})
		require.NoError(t, err)

		c := *clock
		s.WithClock(c.Now)
		c.Advance(tt.ttl - time.Second)
		_, err = s.Verify(tt.kind, tok)
		assert.NoError(t, err, "%s should still be valid", tt.kind)

		c.Advance(2 * time.Second)
		_, err = s.Verify(tt.kind, tok)
		assert.ErrorIs(t, err, common.ErrTokenExpired, "%s should be expired", tt.kind)

		s.WithClock(clock.Now)
	}
}

func TestMint_DistinctTokensForSameClaims(t *testing.T) {
	t.Parallel()
	s := newTestService(t).WithClock(func() time.Time { return time.Unix(1_700_000_000, 0) })

	id := Identity{UserID: "u", DeviceID: "d"}
	a, err := s.Mint(Refresh, id)
	require.NoError(t, err)
	b, err := s.Mint(Refresh, id)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()
	s := newTestService(t)

	_, err := s.Verify(Access, "not.a.jwt")
	assert.ErrorIs(t, err, common.ErrTokenMalformed)

	_, err = s.Decode("garbage")
	assert.ErrorIs(t, err, common.ErrTokenMalformed)
}

func TestDecode_IgnoresSignatureAndExpiry(t *testing.T) {
	t.Parallel()
	s := newTestService(t)

	tok, err := s.MintWithTTL(Refresh, Identity{UserID: "u", DeviceID: "phone"}, -time.Minute)
	require.NoError(t, err)

	_, err = s.Verify(Refresh, tok)
	require.True(t, errors.Is(err, common.ErrTokenExpired))

	claims, err := s.Decode(tok)
	require.NoError(t, err)
	assert.Equal(t, "phone", claims.DeviceID)
}
