package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/intervue/auth-service/internal/domain"
	"github.com/intervue/auth-service/internal/repository"
	"github.com/intervue/auth-service/internal/utils"
)

// identityResolver maps a verified OAuth identity onto a local account.
// The rules are ordered and the first match wins:
//
//  1. an account already linked to this provider identity is reused,
//  2. an account with the same email gains the provider link, unless it
//     is already linked to a different provider identity,
//  3. otherwise a new account is created.
type identityResolver struct {
	accounts repository.AccountRepository
}

func newIdentityResolver(accounts repository.AccountRepository) *identityResolver {
	return &identityResolver{accounts: accounts}
}

// Resolve returns the local account for a verified identity, creating or
// linking one as needed. Profile fields (name, avatar) are refreshed from
// the provider on every login so the local copy tracks the upstream one.
func (r *identityResolver) Resolve(ctx context.Context, identity *domain.VerifiedIdentity) (*domain.Account, error) {
	email := utils.SanitizeEmail(identity.Email)

	account, err := r.accounts.GetByProvider(ctx, identity.Provider, identity.ProviderID)
	if err == nil {
		return r.refreshProfile(ctx, account, identity)
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up provider identity: %w", err)
	}

	account, err = r.accounts.GetByEmail(ctx, email)
	if err == nil {
		if account.HasProviderLink() {
			return nil, domain.ErrProviderConflict
		}
		if err := r.accounts.LinkProvider(ctx, account.ID, identity.Provider, identity.ProviderID, identity.AvatarURL); err != nil {
			if errors.Is(err, repository.ErrDuplicateProviderLink) {
				return nil, domain.ErrProviderConflict
			}
			return nil, fmt.Errorf("failed to link provider: %w", err)
		}
		return r.accounts.GetByID(ctx, account.ID)
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}

	account = &domain.Account{
		Email:      email,
		Name:       identity.Name,
		Provider:   identity.Provider,
		ProviderID: &identity.ProviderID,
		AvatarURL:  identity.AvatarURL,
		Role:       domain.DefaultRole,
		IsActive:   true,
	}
	if err := r.accounts.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	return account, nil
}

// refreshProfile writes the provider's current profile through on every
// sign-in, unconditionally, so the local copy never drifts from upstream.
func (r *identityResolver) refreshProfile(ctx context.Context, account *domain.Account, identity *domain.VerifiedIdentity) (*domain.Account, error) {
	if err := r.accounts.UpdateProfile(ctx, account.ID, identity.Name, identity.AvatarURL); err != nil {
		return nil, fmt.Errorf("failed to refresh profile: %w", err)
	}
	account.Name = identity.Name
	account.AvatarURL = identity.AvatarURL
	return account, nil
}
