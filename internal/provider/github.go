package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/intervue/auth-service/internal/domain"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
)

const githubAPIBaseURL = "https://api.github.com"

// GitHubVerifier exchanges a GitHub OAuth authorization code for an access
// token and resolves the user's profile through the GitHub REST API.
type GitHubVerifier struct {
	oauth      oauth2.Config
	apiBaseURL string
	httpClient *http.Client
}

// NewGitHubVerifier creates a GitHub code-exchange verifier. Empty
// credentials mark the provider as not configured.
func NewGitHubVerifier(clientID, clientSecret string) *GitHubVerifier {
	return &GitHubVerifier{
		oauth: oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     github.Endpoint,
			Scopes:       []string{"user:email"},
		},
		apiBaseURL: githubAPIBaseURL,
		httpClient: defaultHTTPClient(),
	}
}

type githubUser struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

type githubEmail struct {
	Email    string `json:"email"`
	Primary  bool   `json:"primary"`
	Verified bool   `json:"verified"`
}

// Verify exchanges the authorization code and fetches the user's profile.
// GitHub profiles may hide the email, in which case the verified primary
// address is resolved through the emails endpoint.
func (v *GitHubVerifier) Verify(ctx context.Context, credential string) (*domain.VerifiedIdentity, error) {
	if v.oauth.ClientID == "" || v.oauth.ClientSecret == "" {
		return nil, domain.ErrProviderNotConfigured
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, v.httpClient)
	tok, err := v.oauth.Exchange(ctx, credential)
	if err != nil {
		return nil, domain.ErrCodeExchangeFailed
	}

	var user githubUser
	if err := v.apiGet(ctx, tok.AccessToken, "/user", &user); err != nil {
		return nil, err
	}
	if user.ID == 0 {
		return nil, domain.ErrIncompleteProfile
	}

	email := user.Email
	if email == "" {
		email, err = v.primaryEmail(ctx, tok.AccessToken)
		if err != nil {
			return nil, err
		}
	}

	name := user.Name
	if name == "" {
		name = user.Login
	}
	if name == "" {
		name = emailLocalPart(email)
	}

	identity := &domain.VerifiedIdentity{
		Provider:   domain.ProviderGitHub,
		ProviderID: strconv.FormatInt(user.ID, 10),
		Email:      email,
		Name:       name,
	}
	if user.AvatarURL != "" {
		identity.AvatarURL = &user.AvatarURL
	}

	return identity, nil
}

func (v *GitHubVerifier) primaryEmail(ctx context.Context, accessToken string) (string, error) {
	var emails []githubEmail
	if err := v.apiGet(ctx, accessToken, "/user/emails", &emails); err != nil {
		return "", err
	}

	for _, e := range emails {
		if e.Primary && e.Verified {
			return e.Email, nil
		}
	}
	return "", domain.ErrNoVerifiedEmail
}

func (v *GitHubVerifier) apiGet(ctx context.Context, accessToken, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.apiBaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build github request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return domain.ErrProviderError
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.ErrProviderError
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return domain.ErrProviderError
	}
	return nil
}
