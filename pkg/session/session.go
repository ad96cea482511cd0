package session

import (
	"context"
	"errors"
)

type contextKey string

// IDKey is the context key under which the current session id is stored.
const IDKey contextKey = "sessionID"

var ErrNoSession = errors.New("no session in context")

// WithID returns a context carrying the browser session id.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, IDKey, id)
}

// CurrentID returns the session id propagated from the X-Session-Id
// header, or ErrNoSession when the request carried none.
func CurrentID(ctx context.Context) (string, error) {
	id, ok := ctx.Value(IDKey).(string)
	if !ok || id == "" {
		return "", ErrNoSession
	}
	return id, nil
}
