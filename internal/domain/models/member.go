package models

import "bustracker/internal/domain"

// MemberCommand is an admin request against a student or driver (user row + detail row).
type MemberCommand struct {
	Action      domain.Action
	ID          domain.ID
	Email       *string
	Password    *string
	Name        *string
	ContactInfo *string
	BusID       *domain.ID
}

// HasCredentials reports whether the command carries a non-empty email or password.
func (c MemberCommand) HasCredentials() bool {
	return (c.Email != nil && *c.Email != "") || (c.Password != nil && *c.Password != "")
}
