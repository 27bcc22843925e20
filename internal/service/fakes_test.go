package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/intervue/auth-service/internal/domain"
	"github.com/intervue/auth-service/internal/repository"
)

// fakeAccountRepo is an in-memory AccountRepository with the same
// case-insensitive email semantics as the PostgreSQL implementation.
// profileWrites counts UpdateProfile calls.
type fakeAccountRepo struct {
	mu            sync.Mutex
	accounts      map[string]*domain.Account // keyed by ID
	profileWrites int
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[string]*domain.Account)}
}

func (f *fakeAccountRepo) Create(ctx context.Context, account *domain.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	email := strings.ToLower(account.Email)
	for _, existing := range f.accounts {
		if existing.Email == email {
			return repository.ErrDuplicateEmail
		}
		if account.ProviderID != nil && existing.ProviderID != nil &&
			existing.Provider == account.Provider && *existing.ProviderID == *account.ProviderID {
			return repository.ErrDuplicateProviderLink
		}
	}

	if account.ID == "" {
		account.ID = uuid.New().String()
	}
	account.Email = email
	now := time.Now()
	if account.CreatedAt.IsZero() {
		account.CreatedAt = now
	}
	account.UpdatedAt = now

	stored := *account
	f.accounts[account.ID] = &stored
	return nil
}

func (f *fakeAccountRepo) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	account, ok := f.accounts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *account
	return &copied, nil
}

func (f *fakeAccountRepo) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	email = strings.ToLower(email)
	for _, account := range f.accounts {
		if account.Email == email {
			copied := *account
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeAccountRepo) GetByProvider(ctx context.Context, provider, providerID string) (*domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, account := range f.accounts {
		if account.Provider == provider && account.ProviderID != nil && *account.ProviderID == providerID {
			copied := *account
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeAccountRepo) UpdateProfile(ctx context.Context, id, name string, avatarURL *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.profileWrites++
	account, ok := f.accounts[id]
	if !ok {
		return repository.ErrNotFound
	}
	account.Name = name
	account.AvatarURL = avatarURL
	account.UpdatedAt = time.Now()
	return nil
}

func (f *fakeAccountRepo) LinkProvider(ctx context.Context, id, provider, providerID string, avatarURL *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	account, ok := f.accounts[id]
	if !ok {
		return repository.ErrNotFound
	}
	for _, existing := range f.accounts {
		if existing.ID != id && existing.Provider == provider &&
			existing.ProviderID != nil && *existing.ProviderID == providerID {
			return repository.ErrDuplicateProviderLink
		}
	}
	account.Provider = provider
	account.ProviderID = &providerID
	if account.AvatarURL == nil {
		account.AvatarURL = avatarURL
	}
	account.UpdatedAt = time.Now()
	return nil
}

func (f *fakeAccountRepo) UpdateLastLogin(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	account, ok := f.accounts[id]
	if !ok {
		return repository.ErrNotFound
	}
	now := time.Now()
	account.LastLoginAt = &now
	return nil
}

func (f *fakeAccountRepo) SetActive(ctx context.Context, id string, active bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	account, ok := f.accounts[id]
	if !ok {
		return repository.ErrNotFound
	}
	account.IsActive = active
	account.UpdatedAt = time.Now()
	return nil
}

// fakeRevocationStore mirrors the SETNX semantics of the Redis store and
// records the TTL each entry was written with.
type fakeRevocationStore struct {
	mu      sync.Mutex
	revoked map[string]bool
	ttls    map[string]time.Duration
}

func newFakeRevocationStore() *fakeRevocationStore {
	return &fakeRevocationStore{
		revoked: make(map[string]bool),
		ttls:    make(map[string]time.Duration),
	}
}

func (f *fakeRevocationStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.revoked[tokenID] = true
	f.ttls[tokenID] = ttl
	return nil
}

func (f *fakeRevocationStore) RevokeOnce(ctx context.Context, tokenID string, ttl time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.revoked[tokenID] {
		return false, nil
	}
	f.revoked[tokenID] = true
	f.ttls[tokenID] = ttl
	return true, nil
}

func (f *fakeRevocationStore) ttlFor(tokenID string) time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ttls[tokenID]
}

func (f *fakeRevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.revoked[tokenID], nil
}

// fakeVerifier returns a canned identity or error.
type fakeVerifier struct {
	identity *domain.VerifiedIdentity
	err      error
}

func (f *fakeVerifier) Verify(ctx context.Context, credential string) (*domain.VerifiedIdentity, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.identity, nil
}
