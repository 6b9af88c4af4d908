package dto

// RegisterRequest is the body of POST /api/auth/register
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest is the body of POST /api/auth/login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SessionResponse is returned by login and refresh. The refresh token
// itself only travels in the cookie.
type SessionResponse struct {
	UserID      uint64 `json:"userId"`
	AccessToken string `json:"accessToken"`
	ClientMsg   string `json:"clientMsg"`
	Error       string `json:"error"`
}
