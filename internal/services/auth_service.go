package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"bustracker/internal/auth"
	"bustracker/internal/domain"
	"bustracker/internal/domain/models"
	"bustracker/internal/repositories"
	"bustracker/internal/utils"
)

const msgInvalidCredentials = "Invalid credentials"

// AuthService verifies credentials against the users table.
type AuthService struct {
	Users     repositories.UserRepository
	Secret    []byte
	TokenTTL  time.Duration
	RequestID string
	Now       func() time.Time
}

func (s AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Login returns the stored role and id for matching credentials.
func (s AuthService) Login(ctx context.Context, email, password string) (models.LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return models.LoginResult{}, domain.UnauthorizedError{Msg: msgInvalidCredentials}
	}

	u, err := s.Users.FindByEmail(ctx, email)
	if errors.Is(err, sql.ErrNoRows) {
		utils.LogEvent(s.RequestID, "auth", "login", "unknown email "+utils.MaskEmail(email))
		return models.LoginResult{}, domain.UnauthorizedError{Msg: msgInvalidCredentials}
	}
	if err != nil {
		utils.LogError(s.RequestID, "auth", "login", "user lookup failed", err)
		return models.LoginResult{}, domain.InternalError{Msg: msgDatabaseError, Err: err}
	}

	if !auth.CheckPassword(u.PasswordHash, password) {
		utils.LogEvent(s.RequestID, "auth", "login", "password mismatch "+utils.MaskEmail(email))
		return models.LoginResult{}, domain.UnauthorizedError{Msg: msgInvalidCredentials}
	}

	out := models.LoginResult{ID: u.ID, Role: u.Role}
	if len(s.Secret) > 0 {
		ttl := s.TokenTTL
		if ttl <= 0 {
			ttl = 24 * time.Hour
		}
		token, err := auth.NewAccessToken(s.Secret, ttl, s.now(), u.ID, u.Role)
		if err != nil {
			return models.LoginResult{}, domain.InternalError{Msg: "Failed to issue token.", Err: err}
		}
		out.Token = token
	}

	utils.LogEvent(s.RequestID, "auth", "login", fmt.Sprintf("user_id=%d role=%s", u.ID, u.Role))
	return out, nil
}
