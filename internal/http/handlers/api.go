package handlers

import (
	"database/sql"

	intconfig "bustracker/internal/config"
	intdb "bustracker/internal/db"
	"bustracker/internal/location"
)

// API carries the process-wide dependencies the handlers share.
type API struct {
	Env       intconfig.Env
	DB        *sql.DB
	Locations *location.Simulator
}

// querier returns a.DB as an interface, or nil so repositories fall back to config.DB.
func (a *API) querier() intdb.Querier {
	if a.DB == nil {
		return nil
	}
	return a.DB
}

func (a *API) sqlDB() *sql.DB {
	if a.DB != nil {
		return a.DB
	}
	return intconfig.DB
}
