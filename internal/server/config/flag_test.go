package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected  *Config
		name      string
		args      []string
		expectErr bool
	}{
		{
			name: "all flags",
			args: []string{
				"-p", "9090", "-g", "127.0.0.1:6000", "-d", "db", "-u", "https://client",
				"-t", "30", "-r", "2", "-x", "15", "-l", "debug",
			},
			expected: &Config{
				Port:                         9090,
				GRPCHealthAddr:               "127.0.0.1:6000",
				DatabaseDSN:                  "db",
				ClientURL:                    "https://client",
				AccessTokenValidityDuration:  30 * time.Minute,
				RefreshTokenValidityDuration: 2 * time.Minute,
				ResetTokenValidityDuration:   15 * time.Minute,
				LogLevel:                     "debug",
			},
		},
		{
			name: "foreign flags are ignored",
			args: []string{"-c", "conf.json", "-p", "8000", "--verbose"},
			expected: &Config{
				Port: 8000,
			},
		},
		{
			name:      "bad int",
			args:      []string{"-p", "eighty"},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &Config{}
			err := parseFlags(config, tt.args)
			if tt.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}

func TestParseFlags_KeepsSubMinuteDurationsWhenFlagAbsent(t *testing.T) {
	config := &Config{RefreshTokenValidityDuration: 30 * time.Second}
	require.NoError(t, parseFlags(config, nil))
	assert.Equal(t, 30*time.Second, config.RefreshTokenValidityDuration)
}
