package server

import "context"

// contextKey keeps request-scoped values from colliding with keys set by
// other packages.
type contextKey string

const contextKeyRequestID contextKey = "requestID"

// RequestID returns the request id the middleware stored on the context.
// Outside a request it returns the empty string.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(contextKeyRequestID).(string)
	return id
}
