package domain

import "time"

// Auth providers an account can be created with or linked to.
const (
	ProviderLocal  = "local"
	ProviderGoogle = "google"
	ProviderGitHub = "github"
)

// DefaultRole is assigned to every newly created account.
const DefaultRole = "user"

// Account represents a registered user regardless of sign-in method.
// PasswordHash is nil for OAuth-only accounts; ProviderID is nil for
// local-only accounts. The (Provider, ProviderID) pair is unique when
// ProviderID is set, and an account holds at most one such link.
type Account struct {
	ID           string     `json:"id" db:"id"`
	Email        string     `json:"email" db:"email"`
	Name         string     `json:"name" db:"name"`
	PasswordHash *string    `json:"-" db:"password_hash"`
	Provider     string     `json:"provider" db:"provider"`
	ProviderID   *string    `json:"provider_id" db:"provider_id"`
	AvatarURL    *string    `json:"avatar_url" db:"avatar_url"`
	Role         string     `json:"role" db:"role"`
	IsActive     bool       `json:"is_active" db:"is_active"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
	LastLoginAt  *time.Time `json:"last_login_at" db:"last_login_at"`
}

// HasProviderLink reports whether the account is already linked to an
// OAuth provider identity.
func (a *Account) HasProviderLink() bool {
	return a.Provider != ProviderLocal && a.ProviderID != nil
}
