package dto

// LoginRequest matches the legacy admin login: a single shared password.
type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Status    string `json:"status"`
	Role      string `json:"role"`
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
	ExpiresIn int    `json:"expires_in"`
}
