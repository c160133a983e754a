package auth

import (
	"context"
	"time"

	"lightbnb/internal/cache"
)

const revokedKeyPrefix = "revoked_token:"

// Revoker keeps the ids of logged-out tokens until they would have expired
// anyway.
type Revoker struct {
	cache *cache.Client
}

func NewRevoker(c *cache.Client) *Revoker {
	return &Revoker{cache: c}
}

func (r *Revoker) Revoke(ctx context.Context, c *Claims) error {
	if c == nil || c.ID == "" {
		return ErrBadToken
	}
	ttl := time.Minute
	if c.ExpiresAt != nil {
		ttl = time.Until(c.ExpiresAt.Time)
	}
	if ttl <= 0 {
		return nil
	}
	return r.cache.Set(ctx, revokedKeyPrefix+c.ID, []byte("1"), ttl)
}

func (r *Revoker) IsRevoked(ctx context.Context, tokenID string) bool {
	return r.cache.Exists(ctx, revokedKeyPrefix+tokenID)
}
