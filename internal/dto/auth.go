package dto

// LoginRequest carries the admin password.
// @Description Request body for admin login
type LoginRequest struct {
	Password string `json:"password"`
}

// LoginResponse carries the admin access token.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}
