package repositories

import (
	"context"
	"fmt"
	"strings"

	intconfig "bustracker/internal/config"
	intdb "bustracker/internal/db"
	"bustracker/internal/domain"
	"bustracker/internal/domain/models"
)

type UserRepository struct {
	DB intdb.Querier
}

func (r UserRepository) db() intdb.Querier {
	if r.DB != nil {
		return r.DB
	}
	if intconfig.DB == nil {
		return nil
	}
	return intconfig.DB
}

// FindByEmail returns sql.ErrNoRows when no user has that email.
func (r UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	db := r.db()
	if db == nil {
		return models.User{}, fmt.Errorf("database not connected")
	}

	var (
		u    models.User
		role string
	)
	err := db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, role
		FROM users
		WHERE email = ?
		ORDER BY id ASC
		LIMIT 1`, email).Scan(&u.ID, &u.Email, &u.PasswordHash, &role)
	if err != nil {
		return models.User{}, err
	}
	u.Role = domain.Role(role)
	return u, nil
}

func (r UserRepository) Insert(ctx context.Context, email, passwordHash string, role domain.Role) (domain.ID, error) {
	db := r.db()
	if db == nil {
		return 0, fmt.Errorf("database not connected")
	}
	res, err := db.ExecContext(ctx,
		`INSERT INTO users (email, password_hash, role) VALUES (?, ?, ?)`,
		email, passwordHash, string(role))
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return domain.ID(id), nil
}

// UpdateCredentials changes email and/or password_hash; nil or empty values are left untouched.
func (r UserRepository) UpdateCredentials(ctx context.Context, id domain.ID, email, passwordHash *string) error {
	sets := []string{}
	args := []any{}
	if email != nil && *email != "" {
		sets = append(sets, "email = ?")
		args = append(args, *email)
	}
	if passwordHash != nil && *passwordHash != "" {
		sets = append(sets, "password_hash = ?")
		args = append(args, *passwordHash)
	}
	if len(sets) == 0 {
		return nil
	}

	db := r.db()
	if db == nil {
		return fmt.Errorf("database not connected")
	}
	args = append(args, int64(id))
	_, err := db.ExecContext(ctx, `UPDATE users SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	return err
}

func (r UserRepository) Delete(ctx context.Context, id domain.ID) error {
	db := r.db()
	if db == nil {
		return fmt.Errorf("database not connected")
	}
	_, err := db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, int64(id))
	return err
}

func (r UserRepository) Count(ctx context.Context) (int, error) {
	db := r.db()
	if db == nil {
		return 0, fmt.Errorf("database not connected")
	}
	var n int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}
