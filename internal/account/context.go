package account

import "context"

type ctxKey int

const (
	principalKey ctxKey = iota
	sessionKey
)

// NewContext attaches the authenticated caller to ctx.
func NewContext(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// FromContext returns the authenticated caller, if any.
func FromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey).(*Principal)
	return p, ok && p != nil
}

// WithSessionID attaches an anonymous visitor's session id to ctx.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionKey, sessionID)
}

// SessionID returns the caller's session: the authenticated one when present,
// otherwise the anonymous one, otherwise "".
func SessionID(ctx context.Context) string {
	if p, ok := FromContext(ctx); ok && p.SessionID != "" {
		return p.SessionID
	}
	sid, _ := ctx.Value(sessionKey).(string)
	return sid
}
