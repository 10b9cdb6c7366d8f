package model

import "time"

// Role defines what user is allowed to see
type Role string

const (
	// RoleUser is regular sales person
	RoleUser Role = "user"
	// RoleAdmin manages other users
	RoleAdmin Role = "admin"
)

// User is user model entity
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// IsAdmin reports whether user has admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
