package service

import (
	"context"
	"time"

	"github.com/intervue/auth-service/internal/domain"
	"github.com/intervue/auth-service/internal/dto"
)

// AuthService defines methods for authentication operations
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	OAuthLogin(ctx context.Context, provider, credential string) (*dto.AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	Logout(ctx context.Context, claims *domain.TokenClaims) error
	GetUser(ctx context.Context, userID string) (*dto.UserResponse, error)
	ValidateToken(ctx context.Context, token string) (*domain.TokenClaims, error)
}

// RevocationStore records revoked token IDs until their natural expiry.
type RevocationStore interface {
	// Revoke marks a token ID as revoked for the given TTL.
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	// RevokeOnce atomically marks a token ID as revoked, reporting whether
	// this call was the one that revoked it. A false return means the ID
	// was already revoked by an earlier call.
	RevokeOnce(ctx context.Context, tokenID string, ttl time.Duration) (bool, error)
	// IsRevoked reports whether a token ID has been revoked.
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
