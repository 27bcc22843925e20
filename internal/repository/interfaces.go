package repository

import (
	"context"

	"github.com/intervue/auth-service/internal/domain"
)

// AccountRepository defines methods for account persistence
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	GetByProvider(ctx context.Context, provider, providerID string) (*domain.Account, error)
	UpdateProfile(ctx context.Context, id, name string, avatarURL *string) error
	LinkProvider(ctx context.Context, id, provider, providerID string, avatarURL *string) error
	UpdateLastLogin(ctx context.Context, id string) error
	SetActive(ctx context.Context, id string, active bool) error
}
