package mail

import (
	"context"
	"log/slog"
)

// LogMailer writes codes to the log instead of sending email. Used in dev
// when no SMTP server is configured.
type LogMailer struct {
	Logger *slog.Logger
}

func (m *LogMailer) SendResetCode(ctx context.Context, email, code string) error {
	m.Logger.InfoContext(ctx, "password reset code issued",
		slog.String("email", email),
		slog.String("code", code),
	)
	return nil
}
