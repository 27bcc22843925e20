package dto

// TokenTypeBearer is the token_type reported with every issued pair.
const TokenTypeBearer = "bearer"

// AuthResponse represents a full authentication response (tokens + profile)
type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
	User         UserResponse `json:"user"`
}

// TokenResponse represents a rotated token pair without the user profile
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// UserResponse represents the public view of an account
type UserResponse struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Name      string  `json:"name"`
	Role      string  `json:"role"`
	Provider  string  `json:"provider"`
	AvatarURL *string `json:"avatar_url"`
	CreatedAt string  `json:"created_at"`
}

// MessageResponse represents a success response with a detail string
type MessageResponse struct {
	Detail string `json:"detail"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Detail string `json:"detail"`
}
