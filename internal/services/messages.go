package services

import (
	"fmt"

	"bustracker/internal/domain"
)

// Response texts the dashboard matches on; keep them stable.
const (
	msgDatabaseError  = "Database query error."
	msgNoFields       = "No fields to update."
	msgUserIDRequired = "User ID is required."
)

func msgIDRequired(action domain.Action) string {
	return fmt.Sprintf("ID is required for %s action.", action)
}

func msgNotFound(entity string, id domain.ID) string {
	return fmt.Sprintf("%s with ID %d not found.", entity, id)
}

// asDomain leaves typed domain errors alone and wraps anything else as an internal error with msg.
func asDomain(err error, msg string) error {
	if err == nil {
		return nil
	}
	if domain.IsValidation(err) || domain.IsNotFound(err) || domain.IsConflict(err) ||
		domain.IsUnauthorized(err) || domain.IsInvalidAction(err) || domain.IsInternal(err) {
		return err
	}
	return domain.InternalError{Msg: msg, Err: err}
}
