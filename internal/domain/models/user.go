package models

import "bustracker/internal/domain"

// User mirrors a users row. PasswordHash holds either a bcrypt hash or a legacy plain value.
type User struct {
	ID           domain.ID   `json:"id"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	Role         domain.Role `json:"role"`
}

// LoginResult is what a successful credential check hands back to the dashboard.
type LoginResult struct {
	ID    domain.ID   `json:"id"`
	Role  domain.Role `json:"role"`
	Token string      `json:"token,omitempty"`
}
