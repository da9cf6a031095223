package repositories

import (
	"context"
	"database/sql"
	"fmt"

	intconfig "bustracker/internal/config"
	intdb "bustracker/internal/db"
	"bustracker/internal/domain"
)

// MemberRepository manages the detail row (students or staff) of a user.
type MemberRepository struct {
	DB     intdb.Querier
	Entity EntityDescriptor
}

func (r MemberRepository) db() intdb.Querier {
	if r.DB != nil {
		return r.DB
	}
	if intconfig.DB == nil {
		return nil
	}
	return intconfig.DB
}

// Insert writes the detail row for userID. Fixed columns of the descriptor are appended.
func (r MemberRepository) Insert(ctx context.Context, userID domain.ID, cols []Column) (domain.ID, error) {
	if err := r.Entity.checkColumns(cols); err != nil {
		return 0, err
	}
	all := make([]Column, 0, len(cols)+len(r.Entity.Fixed)+1)
	all = append(all, Column{Name: "user_id", Value: int64(userID)})
	all = append(all, cols...)
	all = append(all, r.Entity.Fixed...)

	query, args, err := r.Entity.insertStmt(all)
	if err != nil {
		return 0, err
	}
	db := r.db()
	if db == nil {
		return 0, fmt.Errorf("database not connected")
	}
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return domain.ID(id), nil
}

// Update returns the number of matched rows.
func (r MemberRepository) Update(ctx context.Context, id domain.ID, cols []Column) (int64, error) {
	query, args, err := r.Entity.updateStmt(id, cols)
	if err != nil {
		return 0, err
	}
	db := r.db()
	if db == nil {
		return 0, fmt.Errorf("database not connected")
	}
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// FindUserID returns the linked users.id. A missing row yields sql.ErrNoRows;
// a row without a linked user yields ok=false.
func (r MemberRepository) FindUserID(ctx context.Context, id domain.ID) (userID domain.ID, ok bool, err error) {
	db := r.db()
	if db == nil {
		return 0, false, fmt.Errorf("database not connected")
	}
	var uid sql.NullInt64
	query := fmt.Sprintf("SELECT user_id FROM %s WHERE %s = ?", r.Entity.Table, r.Entity.IDColumn)
	if err := db.QueryRowContext(ctx, query, int64(id)).Scan(&uid); err != nil {
		return 0, false, err
	}
	if !uid.Valid {
		return 0, false, nil
	}
	return domain.ID(uid.Int64), true, nil
}

func (r MemberRepository) Delete(ctx context.Context, id domain.ID) (int64, error) {
	db := r.db()
	if db == nil {
		return 0, fmt.Errorf("database not connected")
	}
	res, err := db.ExecContext(ctx, r.Entity.deleteStmt(), int64(id))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
