package services

import (
	"database/sql/driver"

	"bustracker/internal/auth"
)

// bcryptArg matches a stored password argument that is a bcrypt hash of plain.
type bcryptArg struct {
	plain string
}

func (a bcryptArg) Match(v driver.Value) bool {
	s, ok := v.(string)
	if !ok || !auth.IsHashed(s) {
		return false
	}
	return auth.CheckPassword(s, a.plain)
}
