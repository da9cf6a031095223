package repositories

import (
	"context"
	"fmt"

	intconfig "bustracker/internal/config"
	intdb "bustracker/internal/db"
	"bustracker/internal/domain"
)

// FleetRepository runs single-table statements against buses or routes.
type FleetRepository struct {
	DB    intdb.Querier
	Table TableDescriptor
}

func (r FleetRepository) db() intdb.Querier {
	if r.DB != nil {
		return r.DB
	}
	if intconfig.DB == nil {
		return nil
	}
	return intconfig.DB
}

func (r FleetRepository) Insert(ctx context.Context, cols []Column) (domain.ID, error) {
	if err := r.Table.checkColumns(cols); err != nil {
		return 0, err
	}
	query, args, err := r.Table.insertStmt(cols)
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
func (r FleetRepository) Update(ctx context.Context, id domain.ID, cols []Column) (int64, error) {
	query, args, err := r.Table.updateStmt(id, cols)
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

func (r FleetRepository) Delete(ctx context.Context, id domain.ID) (int64, error) {
	db := r.db()
	if db == nil {
		return 0, fmt.Errorf("database not connected")
	}
	res, err := db.ExecContext(ctx, r.Table.deleteStmt(), int64(id))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
