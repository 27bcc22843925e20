package acceptance

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/intervue/auth-service/internal/dto"
)

// The test app runs without any provider credentials, so the OAuth
// endpoints must consistently answer 501 before touching the network.

func (s *Suite) TestOAuthGoogle_NotConfigured() {
	body, _ := json.Marshal(dto.GoogleOAuthRequest{IDToken: "some-id-token"})

	resp, err := http.Post(s.BaseURL+"/auth/oauth/google", "application/json", bytes.NewBuffer(body))
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusNotImplemented, resp.StatusCode)

	var errResp dto.ErrorResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&errResp))
	s.Contains(errResp.Detail, "not configured")
}

func (s *Suite) TestOAuthGitHub_NotConfigured() {
	body, _ := json.Marshal(dto.GitHubOAuthRequest{Code: "some-code"})

	resp, err := http.Post(s.BaseURL+"/auth/oauth/github", "application/json", bytes.NewBuffer(body))
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusNotImplemented, resp.StatusCode)
}

func (s *Suite) TestOAuthGoogle_MissingCredential() {
	resp, err := http.Post(s.BaseURL+"/auth/oauth/google", "application/json", bytes.NewBufferString(`{}`))
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusBadRequest, resp.StatusCode)
}
