package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/intervue/auth-service/internal/domain"
	"github.com/intervue/auth-service/pkg/database"
	"github.com/lib/pq"
)

const accountColumns = `id, email, name, password_hash, provider, provider_id, avatar_url, role, is_active, created_at, updated_at, last_login_at`

// accountRepository implements AccountRepository on PostgreSQL
type accountRepository struct {
	db *database.Postgres
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *database.Postgres) AccountRepository {
	return &accountRepository{db: db}
}

// Create inserts a new account. Emails are stored lowercased so the
// uniqueness constraint is case-insensitive.
func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO users (id, email, name, password_hash, provider, provider_id, avatar_url, role, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	if account.ID == "" {
		account.ID = uuid.New().String()
	}
	if account.Role == "" {
		account.Role = domain.DefaultRole
	}

	now := time.Now()
	if account.CreatedAt.IsZero() {
		account.CreatedAt = now
	}
	if account.UpdatedAt.IsZero() {
		account.UpdatedAt = now
	}

	_, err := r.db.DB.ExecContext(ctx, query,
		account.ID,
		account.Email,
		account.Name,
		account.PasswordHash,
		account.Provider,
		account.ProviderID,
		account.AvatarURL,
		account.Role,
		account.IsActive,
		account.CreatedAt,
		account.UpdatedAt,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" { // unique_violation
			if pqErr.Constraint == "users_provider_identity_idx" {
				return fmt.Errorf("provider identity already taken: %w", ErrDuplicateProviderLink)
			}
			return fmt.Errorf("account with email %s already exists: %w", account.Email, ErrDuplicateEmail)
		}
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

// GetByEmail retrieves an account by email, compared case-insensitively
func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = LOWER($1)`, accountColumns)

	account, err := r.scanAccount(r.db.DB.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("account with email %s not found: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get account by email: %w", err)
	}

	return account, nil
}

// GetByID retrieves an account by ID
func (r *accountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, accountColumns)

	account, err := r.scanAccount(r.db.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("account with id %s not found: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get account by id: %w", err)
	}

	return account, nil
}

// GetByProvider retrieves an account by its (provider, provider_id) link
func (r *accountRepository) GetByProvider(ctx context.Context, provider, providerID string) (*domain.Account, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE provider = $1 AND provider_id = $2`, accountColumns)

	account, err := r.scanAccount(r.db.DB.QueryRowContext(ctx, query, provider, providerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("account for %s identity not found: %w", provider, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get account by provider: %w", err)
	}

	return account, nil
}

// UpdateProfile refreshes the mutable profile fields from the latest sign-in
func (r *accountRepository) UpdateProfile(ctx context.Context, id, name string, avatarURL *string) error {
	query := `
		UPDATE users
		SET name = $2, avatar_url = $3, updated_at = $4
		WHERE id = $1
	`

	result, err := r.db.DB.ExecContext(ctx, query, id, name, avatarURL, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	return r.requireRowsAffected(result, id)
}

// LinkProvider binds an OAuth identity to an existing account. The avatar
// is only filled in when the account has none yet.
func (r *accountRepository) LinkProvider(ctx context.Context, id, provider, providerID string, avatarURL *string) error {
	query := `
		UPDATE users
		SET provider = $2, provider_id = $3, avatar_url = COALESCE(avatar_url, $4), updated_at = $5
		WHERE id = $1
	`

	result, err := r.db.DB.ExecContext(ctx, query, id, provider, providerID, avatarURL, time.Now())
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" { // unique_violation
			return fmt.Errorf("provider identity already taken: %w", ErrDuplicateProviderLink)
		}
		return fmt.Errorf("failed to link provider: %w", err)
	}

	return r.requireRowsAffected(result, id)
}

// UpdateLastLogin updates the last login timestamp for an account
func (r *accountRepository) UpdateLastLogin(ctx context.Context, id string) error {
	query := `
		UPDATE users
		SET last_login_at = $2
		WHERE id = $1
	`

	result, err := r.db.DB.ExecContext(ctx, query, id, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}

	return r.requireRowsAffected(result, id)
}

// SetActive toggles the account's active flag
func (r *accountRepository) SetActive(ctx context.Context, id string, active bool) error {
	query := `
		UPDATE users
		SET is_active = $2, updated_at = $3
		WHERE id = $1
	`

	result, err := r.db.DB.ExecContext(ctx, query, id, active, time.Now())
	if err != nil {
		return fmt.Errorf("failed to set active flag: %w", err)
	}

	return r.requireRowsAffected(result, id)
}

func (r *accountRepository) scanAccount(row *sql.Row) (*domain.Account, error) {
	account := &domain.Account{}
	var passwordHash, providerID, avatarURL sql.NullString
	var lastLoginAt sql.NullTime

	err := row.Scan(
		&account.ID,
		&account.Email,
		&account.Name,
		&passwordHash,
		&account.Provider,
		&providerID,
		&avatarURL,
		&account.Role,
		&account.IsActive,
		&account.CreatedAt,
		&account.UpdatedAt,
		&lastLoginAt,
	)
	if err != nil {
		return nil, err
	}

	if passwordHash.Valid {
		account.PasswordHash = &passwordHash.String
	}
	if providerID.Valid {
		account.ProviderID = &providerID.String
	}
	if avatarURL.Valid {
		account.AvatarURL = &avatarURL.String
	}
	if lastLoginAt.Valid {
		account.LastLoginAt = &lastLoginAt.Time
	}

	return account, nil
}

func (r *accountRepository) requireRowsAffected(result sql.Result, id string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("account with id %s not found: %w", id, ErrNotFound)
	}

	return nil
}
