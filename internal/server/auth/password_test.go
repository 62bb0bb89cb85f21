package auth

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrongPassword(t *testing.T) {
	t.Parallel()

	tests := []struct {
		password string
		want     bool
	}{
		{"abc12345", true},
		{"Passw0rd", true},
		{"A1b2C3d4E5", true},
		{"abcdefgh", false},
		{"12345678", false},
		{"abc1234", false},
		{"abc 12345", false},
		{"abc_12345", false},
		{"pässw0rd1", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StrongPassword(tt.password), "password %q", tt.password)
	}
}

func TestGenerateOTP(t *testing.T) {
	t.Parallel()

	re := regexp.MustCompile(`^\d{4}$`)
	for range 200 {
		otp := GenerateOTP()
		assert.Regexp(t, re, otp)
	}
}
