package notify

import (
	"context"

	"github.com/arshan09/AuthenticationApp/internal/logging"
)

// LogNotifier writes messages to the logger instead of sending them. It is
// selected when no email credentials are configured.
type LogNotifier struct {
	log logging.Logger
}

func NewLogNotifier(l logging.Logger) *LogNotifier {
	return &LogNotifier{log: l.With("module", "notify")}
}

func (n *LogNotifier) SendOTP(ctx context.Context, to, otp string) error {
	n.emit(ctx, otpMessage(to, otp))
	return nil
}

func (n *LogNotifier) SendPasswordReset(ctx context.Context, to, link string) error {
	n.emit(ctx, resetMessage(to, link))
	return nil
}

func (n *LogNotifier) emit(ctx context.Context, m Message) {
	n.log.Info(ctx, "email not sent, delivery disabled",
		"to", m.To, "subject", m.Subject, "text", m.Text, "html", m.HTML)
}
