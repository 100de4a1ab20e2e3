package service

import (
	"context"

	"github.com/promptgate/console/internal/models"
)

// IdentityProvider resolves the current caller's stable identity
// string. Event creation and listing abort when it fails.
type IdentityProvider interface {
	CurrentIdentity(ctx context.Context) (string, error)
}

type identityKey struct{}

// ContextWithIdentity stores the authenticated identity on a request
// context. The auth middleware calls this after token validation.
func ContextWithIdentity(ctx context.Context, identity string) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// ContextIdentityProvider reads the identity the auth middleware
// placed on the request context
type ContextIdentityProvider struct{}

func (ContextIdentityProvider) CurrentIdentity(ctx context.Context) (string, error) {
	identity, ok := ctx.Value(identityKey{}).(string)
	if !ok || identity == "" {
		return "", models.ErrNoIdentity
	}
	return identity, nil
}
