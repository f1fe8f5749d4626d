package clock

import (
	"context"
	"time"
)

type ctxKey struct{}

// With returns a context whose Now is supplied by the given function.
// Intended for tests that need deterministic timestamps.
func With(ctx context.Context, now func() time.Time) context.Context {
	return context.WithValue(ctx, ctxKey{}, now)
}

// Now returns the current time, or the injected time if the context carries one.
func Now(ctx context.Context) time.Time {
	if now, ok := ctx.Value(ctxKey{}).(func() time.Time); ok {
		return now()
	}
	return time.Now()
}
