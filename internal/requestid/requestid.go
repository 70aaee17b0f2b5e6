// Package requestid carries the per-request correlation id through a context.
package requestid

import "context"

type ctxKey struct{}

// With returns a copy of ctx carrying rid.
func With(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, ctxKey{}, rid)
}

// Get extracts the request ID from ctx, or "" when none is set.
func Get(ctx context.Context) string {
	if rid, ok := ctx.Value(ctxKey{}).(string); ok {
		return rid
	}
	return ""
}
