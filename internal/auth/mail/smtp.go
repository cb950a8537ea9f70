package mail

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strings"
)

// SMTPMailer delivers reset codes over plain SMTP with optional AUTH.
type SMTPMailer struct {
	Addr     string // host:port
	From     string
	Username string
	Password string
}

func NewSMTPMailer(addr, from, username, password string) *SMTPMailer {
	return &SMTPMailer{Addr: addr, From: from, Username: username, Password: password}
}

func (m *SMTPMailer) SendResetCode(ctx context.Context, email, code string) error {
	// No template rendering here, the message is a plain code.
	msg := strings.Join([]string{
		"From: " + m.From,
		"To: " + email,
		"Subject: Your password reset code",
		"",
		fmt.Sprintf("Your password reset code is %s. It expires in 10 minutes.", code),
		"",
	}, "\r\n")

	var auth smtp.Auth
	if m.Username != "" {
		host, _, err := net.SplitHostPort(m.Addr)
		if err != nil {
			return fmt.Errorf("mail: bad smtp addr %q: %w", m.Addr, err)
		}
		auth = smtp.PlainAuth("", m.Username, m.Password, host)
	}

	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(m.Addr, auth, m.From, []string{email}, []byte(msg))
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("mail: send reset code: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
