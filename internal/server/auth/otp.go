package auth

import (
	"math/rand/v2"
	"strings"
)

const OTPLength = 4

// GenerateOTP returns OTPLength decimal digits, each drawn independently.
func GenerateOTP() string {
	var b strings.Builder
	b.Grow(OTPLength)
	for range OTPLength {
		b.WriteByte(byte('0' + rand.IntN(10)))
	}
	return b.String()
}
