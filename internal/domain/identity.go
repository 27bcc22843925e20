package domain

// VerifiedIdentity is the normalized result of a successful credential
// verification, independent of which strategy produced it.
type VerifiedIdentity struct {
	Provider   string
	ProviderID string
	Email      string
	Name       string
	AvatarURL  *string
}
