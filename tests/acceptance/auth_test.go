package acceptance

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/intervue/auth-service/internal/domain"
	"github.com/intervue/auth-service/internal/dto"
)

func (s *Suite) register(email, password, name string) *dto.AuthResponse {
	s.T().Helper()

	body, _ := json.Marshal(dto.RegisterRequest{
		Email:    email,
		Password: password,
		Name:     name,
	})

	resp, err := http.Post(s.BaseURL+"/auth/register", "application/json", bytes.NewBuffer(body))
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Require().Equal(http.StatusCreated, resp.StatusCode, "Registration should succeed")

	var authResp dto.AuthResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&authResp))
	return &authResp
}

func (s *Suite) TestRegister_Success() {
	body, _ := json.Marshal(dto.RegisterRequest{
		Email:    "test@example.com",
		Password: "Str0ng!pass",
		Name:     "Test User",
	})

	resp, err := http.Post(
		s.BaseURL+"/auth/register",
		"application/json",
		bytes.NewBuffer(body),
	)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusCreated, resp.StatusCode)

	var authResp dto.AuthResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&authResp))

	s.NotEmpty(authResp.AccessToken)
	s.NotEmpty(authResp.RefreshToken)
	s.Equal("bearer", authResp.TokenType)
	s.Equal("test@example.com", authResp.User.Email)
	s.Equal("Test User", authResp.User.Name)
	s.Equal(domain.ProviderLocal, authResp.User.Provider)
	s.Equal(domain.DefaultRole, authResp.User.Role)
	s.NotEmpty(authResp.User.ID)
}

func (s *Suite) TestRegister_DuplicateEmail() {
	s.register("duplicate@example.com", "Str0ng!pass", "First")

	body, _ := json.Marshal(dto.RegisterRequest{
		Email:    "Duplicate@Example.com",
		Password: "Str0ng!pass",
		Name:     "Second",
	})
	resp, err := http.Post(s.BaseURL+"/auth/register", "application/json", bytes.NewBuffer(body))
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusBadRequest, resp.StatusCode)

	var errResp dto.ErrorResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&errResp))
	s.NotEmpty(errResp.Detail)
}

func (s *Suite) TestRegister_InvalidEmail() {
	body, _ := json.Marshal(dto.RegisterRequest{
		Email:    "invalid-email",
		Password: "Str0ng!pass",
		Name:     "Test User",
	})

	resp, err := http.Post(s.BaseURL+"/auth/register", "application/json", bytes.NewBuffer(body))
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *Suite) TestRegister_WeakPassword() {
	body, _ := json.Marshal(dto.RegisterRequest{
		Email:    "weak@example.com",
		Password: "alllowercase1",
		Name:     "Test User",
	})

	resp, err := http.Post(s.BaseURL+"/auth/register", "application/json", bytes.NewBuffer(body))
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusBadRequest, resp.StatusCode)

	var errResp dto.ErrorResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&errResp))
	s.Contains(errResp.Detail, "uppercase")
}

func (s *Suite) TestLogin_Success() {
	s.register("login@example.com", "Str0ng!pass", "Login User")

	body, _ := json.Marshal(dto.LoginRequest{
		Email:    "login@example.com",
		Password: "Str0ng!pass",
	})

	resp, err := http.Post(s.BaseURL+"/auth/login", "application/json", bytes.NewBuffer(body))
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	var authResp dto.AuthResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&authResp))

	s.NotEmpty(authResp.AccessToken)
	s.Equal("bearer", authResp.TokenType)
	s.Equal("login@example.com", authResp.User.Email)
}

func (s *Suite) TestLogin_WrongPassword() {
	s.register("wrongpass@example.com", "C0rrect!pass", "Wrong Pass")

	body, _ := json.Marshal(dto.LoginRequest{
		Email:    "wrongpass@example.com",
		Password: "Wr0ng!pass",
	})

	resp, err := http.Post(s.BaseURL+"/auth/login", "application/json", bytes.NewBuffer(body))
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestLogin_UnknownEmail() {
	body, _ := json.Marshal(dto.LoginRequest{
		Email:    "nonexistent@example.com",
		Password: "Str0ng!pass",
	})

	resp, err := http.Post(s.BaseURL+"/auth/login", "application/json", bytes.NewBuffer(body))
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)

	var errResp dto.ErrorResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&errResp))
	s.Equal("invalid email or password", errResp.Detail)
}

func (s *Suite) TestRefresh_RotatesAndRejectsReuse() {
	registered := s.register("refresh@example.com", "Str0ng!pass", "Refresh User")

	body, _ := json.Marshal(dto.RefreshRequest{RefreshToken: registered.RefreshToken})
	resp, err := http.Post(s.BaseURL+"/auth/refresh", "application/json", bytes.NewBuffer(body))
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	var rotated dto.TokenResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&rotated))
	s.NotEmpty(rotated.AccessToken)
	s.NotEqual(registered.RefreshToken, rotated.RefreshToken)
	s.Equal("bearer", rotated.TokenType)

	// The spent token must be rejected on second use.
	body, _ = json.Marshal(dto.RefreshRequest{RefreshToken: registered.RefreshToken})
	reuse, err := http.Post(s.BaseURL+"/auth/refresh", "application/json", bytes.NewBuffer(body))
	s.Require().NoError(err)
	defer reuse.Body.Close()

	s.Equal(http.StatusUnauthorized, reuse.StatusCode)

	// The token from the rotation still works.
	body, _ = json.Marshal(dto.RefreshRequest{RefreshToken: rotated.RefreshToken})
	next, err := http.Post(s.BaseURL+"/auth/refresh", "application/json", bytes.NewBuffer(body))
	s.Require().NoError(err)
	defer next.Body.Close()

	s.Equal(http.StatusOK, next.StatusCode)
}

func (s *Suite) TestRefresh_RejectsAccessToken() {
	registered := s.register("refreshaccess@example.com", "Str0ng!pass", "Refresh User")

	body, _ := json.Marshal(dto.RefreshRequest{RefreshToken: registered.AccessToken})
	resp, err := http.Post(s.BaseURL+"/auth/refresh", "application/json", bytes.NewBuffer(body))
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestRefresh_GarbageToken() {
	body, _ := json.Marshal(dto.RefreshRequest{RefreshToken: "not-a-jwt"})
	resp, err := http.Post(s.BaseURL+"/auth/refresh", "application/json", bytes.NewBuffer(body))
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestGetMe_Success() {
	registered := s.register("getme@example.com", "Str0ng!pass", "Get Me")

	req, _ := http.NewRequest("GET", s.BaseURL+"/auth/me", nil)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", registered.AccessToken))

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	var userResp dto.UserResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&userResp))

	s.NotEmpty(userResp.ID)
	s.Equal("getme@example.com", userResp.Email)
	s.Equal("Get Me", userResp.Name)
	s.Equal(domain.ProviderLocal, userResp.Provider)
	s.NotEmpty(userResp.CreatedAt)
}

func (s *Suite) TestGetMe_NoToken() {
	req, _ := http.NewRequest("GET", s.BaseURL+"/auth/me", nil)

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestGetMe_InvalidToken() {
	req, _ := http.NewRequest("GET", s.BaseURL+"/auth/me", nil)
	req.Header.Set("Authorization", "Bearer invalid-token")

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestLogout_RevokesAccessToken() {
	registered := s.register("logout@example.com", "Str0ng!pass", "Logout User")

	req, _ := http.NewRequest("POST", s.BaseURL+"/auth/logout", nil)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", registered.AccessToken))

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	var msgResp dto.MessageResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&msgResp))
	s.Equal("Successfully logged out", msgResp.Detail)

	// The revoked access token no longer authenticates.
	meReq, _ := http.NewRequest("GET", s.BaseURL+"/auth/me", nil)
	meReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", registered.AccessToken))
	meResp, err := http.DefaultClient.Do(meReq)
	s.Require().NoError(err)
	defer meResp.Body.Close()

	s.Equal(http.StatusUnauthorized, meResp.StatusCode)
}

func (s *Suite) TestLogout_NoToken() {
	req, _ := http.NewRequest("POST", s.BaseURL+"/auth/logout", nil)

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestCompleteFlow() {
	registered := s.register("complete@example.com", "Str0ng!pass", "Complete Flow")

	meReq, _ := http.NewRequest("GET", s.BaseURL+"/auth/me", nil)
	meReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", registered.AccessToken))
	meResp, err := http.DefaultClient.Do(meReq)
	s.Require().NoError(err)
	defer meResp.Body.Close()
	s.Equal(http.StatusOK, meResp.StatusCode)

	body, _ := json.Marshal(dto.RefreshRequest{RefreshToken: registered.RefreshToken})
	refreshResp, err := http.Post(s.BaseURL+"/auth/refresh", "application/json", bytes.NewBuffer(body))
	s.Require().NoError(err)
	defer refreshResp.Body.Close()
	s.Equal(http.StatusOK, refreshResp.StatusCode)

	var rotated dto.TokenResponse
	s.Require().NoError(json.NewDecoder(refreshResp.Body).Decode(&rotated))

	logoutReq, _ := http.NewRequest("POST", s.BaseURL+"/auth/logout", nil)
	logoutReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", rotated.AccessToken))
	logoutResp, err := http.DefaultClient.Do(logoutReq)
	s.Require().NoError(err)
	defer logoutResp.Body.Close()
	s.Equal(http.StatusOK, logoutResp.StatusCode)

	meReq2, _ := http.NewRequest("GET", s.BaseURL+"/auth/me", nil)
	meReq2.Header.Set("Authorization", fmt.Sprintf("Bearer %s", rotated.AccessToken))
	meResp2, err := http.DefaultClient.Do(meReq2)
	s.Require().NoError(err)
	defer meResp2.Body.Close()
	s.Equal(http.StatusUnauthorized, meResp2.StatusCode)
}
