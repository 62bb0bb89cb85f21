package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_OverlaysOnlySetVariables(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "a-secret")
	t.Setenv("REFRESH_TOKEN_SECRET", "r-secret")
	t.Setenv("RESET_TOKEN_SECRET", "x-secret")
	t.Setenv("EMAIL_USER", "AKIAEXAMPLE")
	t.Setenv("EMAIL_PASS", "pass")
	t.Setenv("REFRESH_TOKEN_TTL", "10m")
	t.Setenv("REQUIRE_ACCESS_TOKEN", "true")
	t.Setenv("USERS_MAX_PAGE_SIZE", "25")

	var c Config
	c.LoadDefaults()
	require.NoError(t, parseEnv(&c))

	assert.Equal(t, "a-secret", c.AccessTokenSecret)
	assert.Equal(t, "r-secret", c.RefreshTokenSecret)
	assert.Equal(t, "x-secret", c.ResetTokenSecret)
	assert.Equal(t, "AKIAEXAMPLE", c.EmailUser)
	assert.Equal(t, "pass", c.EmailPass)
	assert.Equal(t, 10*time.Minute, c.RefreshTokenValidityDuration)
	assert.True(t, c.RequireAccessToken)
	assert.Equal(t, 25, c.UsersMaxPageSize)

	// untouched defaults
	assert.Equal(t, time.Hour, c.AccessTokenValidityDuration)
	assert.Equal(t, "us-east-1", c.EmailRegion)
}

func TestParseEnv_InvalidValue(t *testing.T) {
	t.Setenv("PORT", "not-a-number")

	var c Config
	err := parseEnv(&c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env")
}
