package httpx

import (
	"context"

	domainauth "github.com/stylehaus/ui-api/internal/domain/auth"
)

// claimsKey is an unexported context key type to avoid collisions across packages.
// Centralized in this file so all handlers/middleware use the same key.
type claimsKey struct{}

// SetClaimsInContext returns a child context carrying the given claims.
func SetClaimsInContext(ctx context.Context, claims domainauth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// ClaimsFromContext returns the verified claims from context and a boolean
// indicating presence. Claims are attached only after session verification,
// so presence implies a valid session at the time the request was gated.
func ClaimsFromContext(ctx context.Context) (domainauth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(domainauth.Claims)
	return claims, ok
}

// IsGuest reports whether the current request context is unauthenticated or
// carries the guest role.
func IsGuest(ctx context.Context) bool {
	claims, ok := ClaimsFromContext(ctx)
	if !ok {
		return true
	}
	return claims.IsGuest()
}
