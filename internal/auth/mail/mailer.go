// Package mail is the email-delivery collaborator used by the
// password-reset flow. The reset state machine treats delivery as
// best-effort: a send failure never aborts a state transition.
package mail

import "context"

// Mailer sends one-time reset codes. Implementations must not block past
// the context deadline.
type Mailer interface {
	SendResetCode(ctx context.Context, email, code string) error
}
