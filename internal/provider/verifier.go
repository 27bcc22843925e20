// Package provider contains the OAuth credential verifiers. Each provider
// adapter validates a raw credential (ID token, authorization code) against
// the provider and normalizes the result into a domain.VerifiedIdentity.
package provider

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/intervue/auth-service/internal/domain"
)

// Provider calls share a bounded timeout; a stalled provider must not hold
// a request open indefinitely, and failed calls are never retried because
// authorization codes are single-use.
const requestTimeout = 10 * time.Second

// Verifier validates one provider's credential format.
type Verifier interface {
	Verify(ctx context.Context, credential string) (*domain.VerifiedIdentity, error)
}

func defaultHTTPClient() *http.Client {
	return &http.Client{Timeout: requestTimeout}
}

// emailLocalPart is the display-name fallback when the provider profile
// carries no usable name.
func emailLocalPart(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}
