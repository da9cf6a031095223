package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bustracker/internal/auth"
	intconfig "bustracker/internal/config"
	intdb "bustracker/internal/db"
	"bustracker/internal/domain"
	"bustracker/internal/domain/models"
	"bustracker/internal/repositories"
	"bustracker/internal/utils"
)

// MemberService manages a user row together with its student or staff detail row.
// Every action runs in one transaction, so a failed step never leaves an orphan user.
type MemberService struct {
	DB            *sql.DB
	Entity        repositories.EntityDescriptor
	HashPasswords bool
	RequestID     string
}

func (s MemberService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

// Manage dispatches on cmd.Action and returns the success message.
func (s MemberService) Manage(ctx context.Context, cmd models.MemberCommand) (string, error) {
	if cmd.ID <= 0 && cmd.Action != domain.ActionAdd {
		return "", domain.ValidationError{Msg: msgIDRequired(cmd.Action)}
	}

	switch cmd.Action {
	case domain.ActionAdd:
		return s.add(ctx, cmd)
	case domain.ActionUpdate:
		return s.update(ctx, cmd)
	case domain.ActionDelete:
		return s.delete(ctx, cmd)
	default:
		return "", domain.ActionError{Action: string(cmd.Action)}
	}
}

func (s MemberService) add(ctx context.Context, cmd models.MemberCommand) (string, error) {
	entity := s.Entity.Entity
	if cmd.Email == nil || *cmd.Email == "" || cmd.Password == nil || *cmd.Password == "" {
		return "", domain.ValidationError{Msg: fmt.Sprintf("Email and password are required to add a %s.", entity)}
	}
	secret, err := s.storedPassword(*cmd.Password)
	if err != nil {
		return "", domain.InternalError{Msg: fmt.Sprintf("Failed to add new %s user.", entity), Err: err}
	}

	var detailID domain.ID
	err = intdb.WithTx(ctx, s.db(), func(tx *sql.Tx) error {
		users := repositories.UserRepository{DB: tx}
		members := repositories.MemberRepository{DB: tx, Entity: s.Entity}

		userID, err := users.Insert(ctx, *cmd.Email, secret, s.Entity.Role)
		if err != nil {
			if intdb.IsDuplicate(err) {
				return domain.ConflictError{Msg: "Email is already registered.", Err: err}
			}
			utils.LogError(s.RequestID, entity, "add", "insert user failed", err)
			return domain.InternalError{Msg: fmt.Sprintf("Failed to add new %s user.", entity), Err: err}
		}

		detailID, err = members.Insert(ctx, userID, s.detailColumns(cmd, true))
		if err != nil {
			utils.LogError(s.RequestID, entity, "add", "insert detail failed", err)
			return domain.InternalError{Msg: fmt.Sprintf("Failed to add new %s details.", entity), Err: err}
		}
		return nil
	})
	if err != nil {
		return "", asDomain(err, fmt.Sprintf("Failed to add new %s details.", entity))
	}

	utils.LogEvent(s.RequestID, entity, "add", fmt.Sprintf("%s=%d", s.Entity.IDColumn, detailID))
	return fmt.Sprintf("Successfully added new %s: %s.", entity, deref(cmd.Name)), nil
}

func (s MemberService) update(ctx context.Context, cmd models.MemberCommand) (string, error) {
	entity := s.Entity.Entity
	cols := s.detailColumns(cmd, false)
	if len(cols) == 0 && !cmd.HasCredentials() {
		return "", domain.ValidationError{Msg: msgNoFields}
	}
	failMsg := fmt.Sprintf("Failed to update %s details.", entity)

	var secret *string
	if cmd.Password != nil && *cmd.Password != "" {
		v, err := s.storedPassword(*cmd.Password)
		if err != nil {
			return "", domain.InternalError{Msg: failMsg, Err: err}
		}
		secret = &v
	}

	err := intdb.WithTx(ctx, s.db(), func(tx *sql.Tx) error {
		users := repositories.UserRepository{DB: tx}
		members := repositories.MemberRepository{DB: tx, Entity: s.Entity}

		if len(cols) > 0 {
			n, err := members.Update(ctx, cmd.ID, cols)
			if err != nil {
				utils.LogError(s.RequestID, entity, "update", "update detail failed", err)
				return domain.InternalError{Msg: failMsg, Err: err}
			}
			if n == 0 {
				return domain.NotFoundError{Resource: entity, Msg: msgNotFound(entity, cmd.ID)}
			}
		}

		userID, linked, err := members.FindUserID(ctx, cmd.ID)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundError{Resource: entity, Msg: msgNotFound(entity, cmd.ID)}
		}
		if err != nil {
			return domain.InternalError{Msg: failMsg, Err: err}
		}
		if !linked || !cmd.HasCredentials() {
			return nil
		}

		if err := users.UpdateCredentials(ctx, userID, cmd.Email, secret); err != nil {
			if intdb.IsDuplicate(err) {
				return domain.ConflictError{Msg: "Email is already registered.", Err: err}
			}
			utils.LogError(s.RequestID, entity, "update", "update user failed", err)
			return domain.InternalError{Msg: failMsg, Err: err}
		}
		return nil
	})
	if err != nil {
		return "", asDomain(err, failMsg)
	}

	utils.LogEvent(s.RequestID, entity, "update", fmt.Sprintf("%s=%d", s.Entity.IDColumn, cmd.ID))
	return fmt.Sprintf("Successfully updated %s with ID %d.", entity, cmd.ID), nil
}

func (s MemberService) delete(ctx context.Context, cmd models.MemberCommand) (string, error) {
	entity := s.Entity.Entity
	failMsg := fmt.Sprintf("Failed to delete %s.", entity)

	err := intdb.WithTx(ctx, s.db(), func(tx *sql.Tx) error {
		users := repositories.UserRepository{DB: tx}
		members := repositories.MemberRepository{DB: tx, Entity: s.Entity}

		userID, linked, err := members.FindUserID(ctx, cmd.ID)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundError{Resource: entity, Msg: msgNotFound(entity, cmd.ID)}
		}
		if err != nil {
			return domain.InternalError{Msg: failMsg, Err: err}
		}

		n, err := members.Delete(ctx, cmd.ID)
		if err != nil {
			utils.LogError(s.RequestID, entity, "delete", "delete detail failed", err)
			return domain.InternalError{Msg: failMsg, Err: err}
		}
		if n == 0 {
			return domain.NotFoundError{Resource: entity, Msg: msgNotFound(entity, cmd.ID)}
		}

		if linked {
			if err := users.Delete(ctx, userID); err != nil {
				utils.LogError(s.RequestID, entity, "delete", "delete user failed", err)
				return domain.InternalError{Msg: failMsg, Err: err}
			}
		}
		return nil
	})
	if err != nil {
		return "", asDomain(err, failMsg)
	}

	utils.LogEvent(s.RequestID, entity, "delete", fmt.Sprintf("%s=%d", s.Entity.IDColumn, cmd.ID))
	return fmt.Sprintf("Successfully deleted %s with ID %d.", entity, cmd.ID), nil
}

// detailColumns maps the typed command onto whitelisted detail columns.
// On insert, name and contact_info are always written (NULL when absent).
func (s MemberService) detailColumns(cmd models.MemberCommand, insert bool) []repositories.Column {
	cols := []repositories.Column{}
	if insert || cmd.Name != nil {
		cols = append(cols, repositories.Column{Name: "name", Value: optString(cmd.Name)})
	}
	if insert || cmd.ContactInfo != nil {
		cols = append(cols, repositories.Column{Name: "contact_info", Value: optString(cmd.ContactInfo)})
	}
	if cmd.BusID != nil && s.Entity.Allows("bus_id") {
		cols = append(cols, repositories.Column{Name: "bus_id", Value: optID(cmd.BusID)})
	}
	return cols
}

func (s MemberService) storedPassword(plain string) (string, error) {
	if !s.HashPasswords {
		return plain, nil
	}
	return auth.HashPassword(plain)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func optID(id *domain.ID) any {
	if id == nil || *id <= 0 {
		return nil
	}
	return int64(*id)
}

func optInt(n *int) any {
	if n == nil {
		return nil
	}
	return int64(*n)
}
