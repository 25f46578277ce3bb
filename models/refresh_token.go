package models

import (
	"time"
)

// RefreshToken stores a hashed refresh token. A row is usable only while
// RevokedAt is null and ExpiresAt is in the future. Rows are never physically
// deleted so expired and revoked tokens remain for audit.
type RefreshToken struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	UserID    uint       `json:"userId" gorm:"not null;index"`
	User      *User      `json:"-" gorm:"foreignKey:UserID"`
	TokenHash string     `json:"-" gorm:"not null;size:255"`
	ExpiresAt time.Time  `json:"expiresAt" gorm:"not null"`
	RevokedAt *time.Time `json:"revokedAt"`
	UserAgent *string    `json:"userAgent" gorm:"size:255"`
	IP        *string    `json:"ip" gorm:"size:45"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Usable reports whether the token can still be presented.
func (rt *RefreshToken) Usable(now time.Time) bool {
	return rt.RevokedAt == nil && rt.ExpiresAt.After(now)
}
