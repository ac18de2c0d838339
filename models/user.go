package models

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	RolePodcaster UserRole = "Podcaster" // may create and manage podcasts/episodes
	RoleListener  UserRole = "Listener"  // default role for new accounts
	RoleAdmin     UserRole = "Admin"
)

// RoleFromString maps a submitted role to a known one. Anything unknown
// (including the empty string) falls back to Listener.
func RoleFromString(s string) UserRole {
	switch UserRole(s) {
	case RolePodcaster, RoleListener, RoleAdmin:
		return UserRole(s)
	default:
		return RoleListener
	}
}

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username  string    `gorm:"size:100;not null" json:"username"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"type:text;not null" json:"-"`
	Role      UserRole  `gorm:"type:varchar(20);not null;default:'Listener'" json:"role"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
