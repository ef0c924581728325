package models

import "time"

// Session binds a client-presented token to one authenticated username.
// Only the SHA-256 hash of the token is ever stored.
type Session struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	TokenHash string    `json:"-"` // Never expose in JSON
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
