package domain

import "errors"

// Authentication failure taxonomy. Everything an authentication path can
// fail with is one of these; the HTTP layer maps them to fixed statuses.
var (
	// ErrInvalidCredentials covers both unknown email and wrong password.
	// Kept deliberately generic to resist account enumeration.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrAccountDeactivated is returned for any authentication attempt
	// against an account with is_active = false.
	ErrAccountDeactivated = errors.New("account is deactivated")

	// ErrProviderNotConfigured means the OAuth provider's credentials are
	// absent from configuration; checked before any network call.
	ErrProviderNotConfigured = errors.New("oauth provider is not configured")

	// ErrTokenInvalid covers malformed, expired, and badly signed tokens.
	ErrTokenInvalid = errors.New("token is invalid or expired")

	// ErrTokenReused signals a refresh token that was already rotated.
	ErrTokenReused = errors.New("refresh token has already been used")

	// OAuth verification subtypes.
	ErrAudienceMismatch   = errors.New("token audience mismatch")
	ErrIncompleteProfile  = errors.New("provider profile is incomplete")
	ErrCodeExchangeFailed = errors.New("authorization code exchange failed")
	ErrProviderError      = errors.New("oauth provider request failed")
	ErrNoVerifiedEmail    = errors.New("no verified email on provider account")

	// ErrDuplicateEmail is returned on registration with a taken email.
	ErrDuplicateEmail = errors.New("an account with this email already exists")

	// ErrPasswordPolicy is returned when a password fails the strength rules.
	ErrPasswordPolicy = errors.New("password does not meet policy requirements")

	// ErrInvalidEmail is returned on registration with a malformed email.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrProviderConflict is returned when an OAuth identity's email matches
	// an account that is already linked to a different provider.
	ErrProviderConflict = errors.New("email belongs to an account linked to another provider")
)
