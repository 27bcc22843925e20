package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/intervue/auth-service/internal/domain"
	"github.com/intervue/auth-service/internal/dto"
	"github.com/intervue/auth-service/internal/provider"
	"github.com/intervue/auth-service/internal/repository"
	"github.com/intervue/auth-service/internal/token"
	"github.com/intervue/auth-service/internal/utils"
	"go.uber.org/zap"
)

// authService implements AuthService interface
type authService struct {
	accounts    repository.AccountRepository
	tokens      *token.Manager
	revocations RevocationStore
	resolver    *identityResolver
	verifiers   map[string]provider.Verifier
	bcryptCost  int
}

// NewAuthService creates a new auth service
func NewAuthService(
	accounts repository.AccountRepository,
	tokens *token.Manager,
	revocations RevocationStore,
	verifiers map[string]provider.Verifier,
	bcryptCost int,
) AuthService {
	return &authService{
		accounts:    accounts,
		tokens:      tokens,
		revocations: revocations,
		resolver:    newIdentityResolver(accounts),
		verifiers:   verifiers,
		bcryptCost:  bcryptCost,
	}
}

// Register creates a local-password account and signs it in.
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := utils.SanitizeEmail(req.Email)

	if !utils.ValidateEmail(email) {
		return nil, domain.ErrInvalidEmail
	}
	if err := utils.ValidatePassword(req.Password); err != nil {
		return nil, err
	}

	_, err := s.accounts.GetByEmail(ctx, email)
	if err == nil {
		return nil, domain.ErrDuplicateEmail
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check account existence: %w", err)
	}

	passwordHash, err := utils.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &domain.Account{
		Email:        email,
		Name:         req.Name,
		PasswordHash: &passwordHash,
		Provider:     domain.ProviderLocal,
		Role:         domain.DefaultRole,
		IsActive:     true,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return s.authResponse(account)
}

// Login authenticates a local-password account. Lookup misses, OAuth-only
// accounts, and wrong passwords all collapse into ErrInvalidCredentials so
// responses don't reveal which emails are registered.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	account, err := s.accounts.GetByEmail(ctx, utils.SanitizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	if account.PasswordHash == nil || !utils.CheckPasswordHash(req.Password, *account.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	if !account.IsActive {
		return nil, domain.ErrAccountDeactivated
	}

	if err := s.accounts.UpdateLastLogin(ctx, account.ID); err != nil {
		// Best effort, the login itself already succeeded.
		zap.L().Warn("failed to update last login",
			zap.String("account_id", account.ID),
			zap.Error(err),
		)
	}

	return s.authResponse(account)
}

// OAuthLogin verifies a provider credential and signs in the resolved account.
func (s *authService) OAuthLogin(ctx context.Context, providerName, credential string) (*dto.AuthResponse, error) {
	verifier, ok := s.verifiers[providerName]
	if !ok {
		return nil, domain.ErrProviderNotConfigured
	}

	identity, err := verifier.Verify(ctx, credential)
	if err != nil {
		return nil, err
	}

	account, err := s.resolver.Resolve(ctx, identity)
	if err != nil {
		return nil, err
	}

	if !account.IsActive {
		return nil, domain.ErrAccountDeactivated
	}

	if err := s.accounts.UpdateLastLogin(ctx, account.ID); err != nil {
		zap.L().Warn("failed to update last login",
			zap.String("account_id", account.ID),
			zap.Error(err),
		)
	}

	return s.authResponse(account)
}

// Refresh rotates a refresh token: the presented token is revoked before a
// new pair is issued, so each refresh token is usable exactly once. When two
// requests race on the same token only the one that wins the revocation
// claim gets a new pair; the other observes reuse.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	claims, err := s.tokens.Parse(refreshToken, domain.TokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	claimed, err := s.revocations.RevokeOnce(ctx, claims.TokenID, claims.RemainingTTL())
	if err != nil {
		return nil, fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	if !claimed {
		return nil, domain.ErrTokenReused
	}

	account, err := s.accounts.GetByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrTokenInvalid
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	if !account.IsActive {
		return nil, domain.ErrAccountDeactivated
	}

	pair, err := s.tokens.Pair(account)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    dto.TokenTypeBearer,
	}, nil
}

// Logout revokes the presented access token for its remaining lifetime.
func (s *authService) Logout(ctx context.Context, claims *domain.TokenClaims) error {
	if err := s.revocations.Revoke(ctx, claims.TokenID, claims.RemainingTTL()); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// GetUser gets account information
func (s *authService) GetUser(ctx context.Context, userID string) (*dto.UserResponse, error) {
	account, err := s.accounts.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrTokenInvalid
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	response := userResponse(account)
	return &response, nil
}

// ValidateToken checks an access token's signature, type, and revocation state.
func (s *authService) ValidateToken(ctx context.Context, tokenString string) (*domain.TokenClaims, error) {
	claims, err := s.tokens.Parse(tokenString, domain.TokenTypeAccess)
	if err != nil {
		return nil, err
	}

	revoked, err := s.revocations.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		return nil, fmt.Errorf("failed to check token revocation: %w", err)
	}
	if revoked {
		return nil, domain.ErrTokenInvalid
	}

	return claims, nil
}

func (s *authService) authResponse(account *domain.Account) (*dto.AuthResponse, error) {
	pair, err := s.tokens.Pair(account)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	return &dto.AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    dto.TokenTypeBearer,
		User:         userResponse(account),
	}, nil
}

func userResponse(account *domain.Account) dto.UserResponse {
	return dto.UserResponse{
		ID:        account.ID,
		Email:     account.Email,
		Name:      account.Name,
		Role:      account.Role,
		Provider:  account.Provider,
		AvatarURL: account.AvatarURL,
		CreatedAt: account.CreatedAt.Format(time.RFC3339),
	}
}
