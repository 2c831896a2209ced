package dto

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt string       `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// GoogleExchangeCodeRequest carries the authorization code posted back by the
// frontend after the Google redirect.
type GoogleExchangeCodeRequest struct {
	Code string `json:"code" binding:"required"`
}
