package shared

import (
	"context"

	"github.com/google/uuid"
)

type sessionContextKey struct{}

// ContextWithSession stores the session in context.
func ContextWithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, sess)
}

// SessionFromContext extracts the session from context.
func SessionFromContext(ctx context.Context) *Session {
	sess, _ := ctx.Value(sessionContextKey{}).(*Session)
	return sess
}

// LandlordFromContext resolves the acting landlord id for the current request.
// The second return is false for anonymous sessions or sessions whose subject
// is not a landlord, so handlers never fall back to an ambient default.
func LandlordFromContext(ctx context.Context) (uuid.UUID, bool) {
	sess := SessionFromContext(ctx)
	if sess == nil {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(sess.LandlordID())
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
