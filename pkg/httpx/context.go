package httpx

import "context"

// Identity is what the revocation gate attaches to the request context on
// allow. Downstream handlers and collaborating subsystems consume only this.
type Identity struct {
	UserID  string
	IsAdmin bool
}

type ctxKey string

const ctxKeyIdentity ctxKey = "identity"

// ContextWithIdentity attaches the authenticated identity.
func ContextWithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKeyIdentity, id)
}

// IdentityFromContext returns the authenticated identity, if any.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKeyIdentity).(Identity)
	return id, ok
}

// UserIDFromContext is a convenience accessor for rate limiting and logging.
func UserIDFromContext(ctx context.Context) string {
	id, _ := IdentityFromContext(ctx)
	return id.UserID
}
