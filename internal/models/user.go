package models

// User is an account keyed by email. PasswordHash never leaves the server
// and VerificationToken is cleared the moment it is consumed.
type User struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	IsVerified   bool   `json:"is_verified"`

	// nil after successful verification; presence + match is required
	// for a token to be accepted
	VerificationToken *string `json:"-"`
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}
