package models

import (
	"strings"
	"time"
)

// User represents an application user. PasswordHash never leaves the server.
type User struct {
	ID               int       `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	PasswordHash     string    `json:"-"`
	Role             string    `json:"role"`
	TwoFactorEnabled bool      `json:"two_factor_enabled"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// UserInput is used for creating/updating users.
type UserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (u *UserInput) Validate(requirePassword bool) string {
	if u.Name == "" {
		return "name is required"
	}
	if u.Email == "" || !strings.Contains(u.Email, "@") {
		return "a valid email is required"
	}
	if requirePassword && len(u.Password) < 8 {
		return "password must be at least 8 characters"
	}
	switch u.Role {
	case "", "USER", "ADMIN":
	default:
		return "role must be one of: USER, ADMIN"
	}
	if u.Role == "" {
		u.Role = "USER"
	}
	return ""
}

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
