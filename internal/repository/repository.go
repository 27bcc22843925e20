package repository

import (
	"github.com/intervue/auth-service/pkg/database"
)

// Repositories holds all repository interfaces
type Repositories struct {
	Account AccountRepository
}

// NewRepositories creates all repositories
func NewRepositories(db *database.Postgres) *Repositories {
	return &Repositories{
		Account: NewAccountRepository(db),
	}
}
