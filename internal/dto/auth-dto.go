package dto

// AuthResponse is the identity extracted from a verified bearer token. The
// identity provider is external; we only trust what the token carries.
type AuthResponse struct {
	UserID int     `json:"user_id"`
	Email  string  `json:"email"`
	Expiry float64 `json:"exp"`
	Iat    float64 `json:"iat"`
}
