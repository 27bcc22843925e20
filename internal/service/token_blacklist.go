package service

import (
	"context"
	"fmt"
	"time"

	"github.com/intervue/auth-service/pkg/database"
)

// TokenBlacklistStore records revoked token IDs in Redis. Entries carry the
// token's remaining lifetime as TTL so the blacklist cleans itself up: once
// a token has expired its signature check fails anyway.
type TokenBlacklistStore struct {
	redis *database.Redis
}

// NewTokenBlacklistStore creates a Redis-backed revocation store.
func NewTokenBlacklistStore(redis *database.Redis) *TokenBlacklistStore {
	return &TokenBlacklistStore{redis: redis}
}

func blacklistKey(tokenID string) string {
	return fmt.Sprintf("blacklist:token:%s", tokenID)
}

// clampTTL keeps entries for tokens at the edge of expiry alive briefly so
// a revocation written in the token's final moment is still observable.
func clampTTL(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return time.Second
	}
	return ttl
}

// Revoke marks a token ID as revoked for the given TTL.
func (s *TokenBlacklistStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	err := s.redis.Client.Set(ctx, blacklistKey(tokenID), "1", clampTTL(ttl)).Err()
	if err != nil {
		return fmt.Errorf("failed to add token to blacklist: %w", err)
	}
	return nil
}

// RevokeOnce marks a token ID as revoked using SETNX, so concurrent calls
// for the same ID agree on a single winner.
func (s *TokenBlacklistStore) RevokeOnce(ctx context.Context, tokenID string, ttl time.Duration) (bool, error) {
	claimed, err := s.redis.Client.SetNX(ctx, blacklistKey(tokenID), "1", clampTTL(ttl)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to claim token revocation: %w", err)
	}
	return claimed, nil
}

// IsRevoked checks if a token ID is in the blacklist.
func (s *TokenBlacklistStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	exists, err := s.redis.Client.Exists(ctx, blacklistKey(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token blacklist: %w", err)
	}
	return exists > 0, nil
}
