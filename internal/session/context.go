// Package session resolves the cart session of a request.
package session

import (
	"context"

	"google.golang.org/grpc/metadata"
)

type ctxKey string

const (
	Key    ctxKey = "session_id"
	Header        = "x-session-id"
)

func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, Key, id)
}

// GetID returns the session id put in ctx by WithID, falling back to the
// incoming metadata.
func GetID(ctx context.Context) string {
	if val, ok := ctx.Value(Key).(string); ok {
		return val
	}

	md, ok := metadata.FromIncomingContext(ctx)
	if ok {
		if val := md.Get(Header); len(val) > 0 {
			return val[0]
		}
	}
	return ""
}
