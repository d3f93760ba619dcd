package models

import (
	"time"
)

// Session maps an opaque token to a user. Only the SHA-256 hash of the token
// is stored; the plaintext token exists on the client alone.
type Session struct {
	TokenHash string    `gorm:"primaryKey;size:64" json:"-"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
