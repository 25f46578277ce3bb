package models

import (
	"time"
)

type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
)

// AppRoles is the fixed set of assignable roles, seeded at startup.
var AppRoles = []string{"admin", "viewer", "client"}

func IsValidRole(name string) bool {
	for _, role := range AppRoles {
		if role == name {
			return true
		}
	}
	return false
}

type User struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	StoreID      *uint      `json:"storeId"`
	Store        *Store     `json:"store,omitempty" gorm:"foreignKey:StoreID"`
	Name         string     `json:"name" gorm:"not null;size:120"`
	Email        string     `json:"email" gorm:"uniqueIndex;not null;size:160"`
	PasswordHash string     `json:"-" gorm:"not null;size:255"`
	Status       UserStatus `json:"status" gorm:"type:varchar(10);default:'active'"`
	LastLoginAt  *time.Time `json:"lastLoginAt"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`

	// Relationships
	Roles         []Role         `json:"roles" gorm:"many2many:user_roles"`
	RefreshTokens []RefreshToken `json:"-" gorm:"foreignKey:UserID"`
}

// RoleNames returns the names of the loaded role associations.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, role := range u.Roles {
		names = append(names, role.Name)
	}
	return names
}

type Role struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null;size:50"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserRole is the join row between users and roles, composite key.
type UserRole struct {
	UserID uint `json:"userId" gorm:"primaryKey"`
	RoleID uint `json:"roleId" gorm:"primaryKey"`

	User User `json:"-" gorm:"foreignKey:UserID"`
	Role Role `json:"-" gorm:"foreignKey:RoleID"`
}
