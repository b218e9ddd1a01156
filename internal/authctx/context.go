// Package authctx propagates the authenticated identity through request
// context. The access gate stores the validated claims here; downstream
// handlers retrieve them without knowing how the token was verified.
package authctx

import (
	"context"
	"errors"
)

// contextKey is an unexported type to prevent collisions with other packages.
type contextKey struct{}

// claimsKey is the single key used to store claims in context.
var claimsKey = contextKey{}

// ErrNoClaims is returned when claims are not found in the context.
var ErrNoClaims = errors.New("authctx: no claims in context")

// Set stores authentication claims in the context.
func Set(ctx context.Context, claims any) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// Get retrieves typed authentication claims from the context. Returns the
// claims and true if found and of the correct type, or zero value and
// false otherwise.
func Get[T any](ctx context.Context) (T, bool) {
	val := ctx.Value(claimsKey)
	if val == nil {
		var zero T
		return zero, false
	}
	claims, ok := val.(T)
	return claims, ok
}

// GetOrError retrieves typed claims from the context. Returns ErrNoClaims
// if claims are missing or of the wrong type.
func GetOrError[T any](ctx context.Context) (T, error) {
	claims, ok := Get[T](ctx)
	if !ok {
		var zero T
		return zero, ErrNoClaims
	}
	return claims, nil
}
