// Package utils provides general-purpose helpers used across the clinic
// application: context keys, password hashing, session JWTs, JSON over
// HTTP, the resty client wrapper and identifier generation.
package utils

import (
	"context"

	"github.com/MKhiriev/go-clinic/models"
)

// contextKey is a private type for context keys.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// TokenCtxKey is the key under which the authenticated session token is
// stored in a request context.
var TokenCtxKey = contextKey("token")

// WithToken returns a copy of ctx carrying token.
func WithToken(ctx context.Context, token models.Token) context.Context {
	return context.WithValue(ctx, TokenCtxKey, token)
}

// GetTokenFromContext retrieves the session token from the context.
// ok is false when no token is stored or it has an unexpected type.
func GetTokenFromContext(ctx context.Context) (models.Token, bool) {
	token, ok := ctx.Value(TokenCtxKey).(models.Token)
	return token, ok
}
