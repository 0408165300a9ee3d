// Package contextkeys holds typed keys for values carried in a context.Context.
package contextkeys

import "context"

type contextKey string

const sessionIDKey contextKey = "session_id"

// WithSessionID returns a copy of ctx carrying the shopping session ID.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDKey, sessionID)
}

// GetSessionID returns the session ID stored in ctx, if any.
func GetSessionID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionIDKey).(string)
	return id, ok && id != ""
}
