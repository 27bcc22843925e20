package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/intervue/auth-service/internal/domain"
)

// Manager mints and verifies the signed access/refresh token pair.
// The signing key is fixed at construction and never mutated.
type Manager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewManager creates a new token manager
func NewManager(secret string, accessTTL, refreshTTL time.Duration) *Manager {
	return &Manager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// Pair issues a fresh access/refresh pair bound to the account. Each token
// carries its own jti; issuance has no side effects beyond signing.
func (m *Manager) Pair(account *domain.Account) (*domain.TokenPair, error) {
	now := time.Now()

	accessToken, err := m.sign(jwt.MapClaims{
		"sub":   account.ID,
		"email": account.Email,
		"role":  account.Role,
		"jti":   uuid.New().String(),
		"type":  domain.TokenTypeAccess,
		"iat":   now.Unix(),
		"exp":   now.Add(m.accessTTL).Unix(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	// Refresh tokens carry minimal claims; they are only good for rotation.
	refreshToken, err := m.sign(jwt.MapClaims{
		"sub":  account.ID,
		"jti":  uuid.New().String(),
		"type": domain.TokenTypeRefresh,
		"iat":  now.Unix(),
		"exp":  now.Add(m.refreshTTL).Unix(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (m *Manager) sign(claims jwt.MapClaims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Parse validates signature, expiry, and token type, and returns the claims.
// Every failure collapses into ErrTokenInvalid so callers cannot leak the
// distinction between malformed, expired, and tampered tokens.
func (m *Manager) Parse(tokenString, expectedType string) (*domain.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, domain.ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}

	if tokenType, _ := claims["type"].(string); tokenType != expectedType {
		return nil, domain.ErrTokenInvalid
	}

	subject, _ := claims["sub"].(string)
	tokenID, _ := claims["jti"].(string)
	if subject == "" || tokenID == "" {
		return nil, domain.ErrTokenInvalid
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}
	iat, _ := claims["iat"].(float64)

	parsed := &domain.TokenClaims{
		Subject:   subject,
		TokenID:   tokenID,
		Type:      expectedType,
		IssuedAt:  time.Unix(int64(iat), 0),
		ExpiresAt: time.Unix(int64(exp), 0),
	}
	parsed.Email, _ = claims["email"].(string)
	parsed.Role, _ = claims["role"].(string)

	if time.Now().After(parsed.ExpiresAt) {
		return nil, domain.ErrTokenInvalid
	}

	return parsed, nil
}

// AccessTTL returns the configured access token lifetime.
func (m *Manager) AccessTTL() time.Duration {
	return m.accessTTL
}

// RefreshTTL returns the configured refresh token lifetime.
func (m *Manager) RefreshTTL() time.Duration {
	return m.refreshTTL
}
