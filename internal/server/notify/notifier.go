// Package notify delivers one-time passwords and password reset links to
// users by email.
package notify

import (
	"context"
	"fmt"
)

// Notifier sends account emails. Delivery failures are returned to the
// caller; nothing is retried.
type Notifier interface {
	SendOTP(ctx context.Context, to, otp string) error
	SendPasswordReset(ctx context.Context, to, link string) error
}

// Message is a rendered email.
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

func otpMessage(to, otp string) Message {
	return Message{
		To:      to,
		Subject: "OTP Verification",
		Text:    fmt.Sprintf("Your OTP is: %s", otp),
	}
}

func resetMessage(to, link string) Message {
	return Message{
		To:      to,
		Subject: "Password Reset",
		HTML:    fmt.Sprintf(`Click <a href="%s">here</a> to reset your password.`, link),
	}
}
