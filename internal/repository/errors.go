package repository

import "errors"

// Common repository errors
var (
	// ErrNotFound is returned when a record is not found
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEmail is returned when an account with the email already exists
	ErrDuplicateEmail = errors.New("account with this email already exists")

	// ErrDuplicateProviderLink is returned when the (provider, provider_id)
	// pair is already bound to another account
	ErrDuplicateProviderLink = errors.New("provider identity already linked to an account")
)
