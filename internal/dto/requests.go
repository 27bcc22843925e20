package dto

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest carries the refresh token to be rotated
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// GoogleOAuthRequest carries the Google ID token from the sign-in SDK
type GoogleOAuthRequest struct {
	IDToken string `json:"id_token" binding:"required"`
}

// GitHubOAuthRequest carries the GitHub authorization code
type GitHubOAuthRequest struct {
	Code string `json:"code" binding:"required"`
}
