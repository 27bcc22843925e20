package domain

import "time"

// Token types carried in the "type" claim.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// TokenClaims represents the validated claims of a signed token.
// TokenID is the jti used for individual revocation.
type TokenClaims struct {
	Subject   string
	Email     string
	Role      string
	TokenID   string
	Type      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// RemainingTTL returns how long the token is still valid. Used as the
// revocation entry lifetime so the blacklist never outlives the token.
func (c TokenClaims) RemainingTTL() time.Duration {
	return time.Until(c.ExpiresAt)
}

// TokenPair holds a freshly issued access/refresh token pair.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}
