package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	serverFlags := []string{"-p", "-d", "-l"}

	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{"separate value", []string{"-p", "8080", "-v"}, serverFlags, []string{"-p", "8080"}},
		{"equals form", []string{"-d=postgres://db/auth", "--verbose"}, serverFlags, []string{"-d=postgres://db/auth"}},
		{"order preserved", []string{"-l", "debug", "-x", "1", "-p=9000"}, serverFlags, []string{"-l", "debug", "-p=9000"}},
		{"foreign flags dropped", []string{"-test.v", "-test.run=TestX", "positional"}, serverFlags, []string{}},
		{"trailing flag without value", []string{"-p"}, serverFlags, []string{"-p"}},
		{"dash value not consumed", []string{"-p", "-l", "warn"}, serverFlags, []string{"-p", "-l", "warn"}},
		{"equals value may start with dash", []string{"-d=-weird"}, serverFlags, []string{"-d=-weird"}},
		{"repeated flag kept", []string{"-p", "1", "-p", "2"}, serverFlags, []string{"-p", "1", "-p", "2"}},
		{"nil args", nil, serverFlags, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestConfigFile(t *testing.T) {
	t.Setenv(ConfigFileEnv, "")

	t.Run("short -c with value", func(t *testing.T) {
		assert.Equal(t, "/etc/auth/short.json", ConfigFile([]string{"-c", "/etc/auth/short.json"}))
	})

	t.Run("long -config with value", func(t *testing.T) {
		assert.Equal(t, "/etc/auth/long.json", ConfigFile([]string{"-config", "/etc/auth/long.json"}))
	})

	t.Run("unknown flags are ignored", func(t *testing.T) {
		assert.Empty(t, ConfigFile([]string{"-a", ":3000", "-d", "postgres://"}))
	})

	t.Run("multiple flags, last wins", func(t *testing.T) {
		assert.Equal(t, "/2.json", ConfigFile([]string{"-c", "/1.json", "-config", "/2.json"}))
	})

	t.Run("env fallback", func(t *testing.T) {
		t.Setenv(ConfigFileEnv, "/from/env.json")
		assert.Equal(t, "/from/env.json", ConfigFile(nil))
		assert.Equal(t, "/flag.json", ConfigFile([]string{"-c", "/flag.json"}))
	})
}
