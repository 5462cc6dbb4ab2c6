package models

import (
	"time"
)

// Role constants
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           string `gorm:"primaryKey"`
	Name         string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string // Google-only users have empty password
	Role         string `gorm:"not null;default:'user'"` // "admin" or "user"
	AvatarURL    string // from Google profile or empty

	// Account lifecycle
	IsVerified   bool `gorm:"not null;default:false"`
	IsGoogleUser bool `gorm:"not null;default:false"`
	GoogleID     string `gorm:"index"` // Google subject id, empty for local accounts

	// Active password reset token, if any. The signed token value is also
	// stored here so that reissuing invalidates the previous one.
	PasswordResetToken   string
	PasswordResetExpires *time.Time

	Watchlist []WatchlistEntry `gorm:"constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAdmin returns true if the user has admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// HasPassword reports whether the account carries a local credential.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}
