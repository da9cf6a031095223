package services

import (
	"context"
	"fmt"

	intdb "bustracker/internal/db"
	"bustracker/internal/domain"
	"bustracker/internal/domain/models"
	"bustracker/internal/repositories"
	"bustracker/internal/utils"
)

// FleetService manages buses and routes, each a single table with no linked user row.
type FleetService struct {
	DB        intdb.Querier
	RequestID string
}

func (s FleetService) ManageBus(ctx context.Context, cmd models.BusCommand) (string, error) {
	insert := []repositories.Column{
		{Name: "bus_number", Value: optString(cmd.BusNumber)},
		{Name: "capacity", Value: optInt(cmd.Capacity)},
		{Name: "driver_id", Value: optID(cmd.DriverID)},
		{Name: "route_id", Value: optID(cmd.RouteID)},
	}

	updates := []repositories.Column{}
	if cmd.BusNumber != nil {
		updates = append(updates, repositories.Column{Name: "bus_number", Value: *cmd.BusNumber})
	}
	if cmd.Capacity != nil {
		updates = append(updates, repositories.Column{Name: "capacity", Value: int64(*cmd.Capacity)})
	}
	if cmd.DriverID != nil {
		updates = append(updates, repositories.Column{Name: "driver_id", Value: optID(cmd.DriverID)})
	}
	if cmd.RouteID != nil {
		updates = append(updates, repositories.Column{Name: "route_id", Value: optID(cmd.RouteID)})
	}

	return s.manage(ctx, repositories.BusTable, cmd.Action, cmd.ID, insert, updates)
}

func (s FleetService) ManageRoute(ctx context.Context, cmd models.RouteCommand) (string, error) {
	insert := []repositories.Column{
		{Name: "route_name", Value: optString(cmd.RouteName)},
		{Name: "route_details", Value: optString(cmd.RouteDetails)},
	}

	updates := []repositories.Column{}
	if cmd.RouteName != nil {
		updates = append(updates, repositories.Column{Name: "route_name", Value: *cmd.RouteName})
	}
	if cmd.RouteDetails != nil {
		updates = append(updates, repositories.Column{Name: "route_details", Value: *cmd.RouteDetails})
	}

	return s.manage(ctx, repositories.RouteTable, cmd.Action, cmd.ID, insert, updates)
}

func (s FleetService) manage(ctx context.Context, table repositories.TableDescriptor, action domain.Action, id domain.ID, insert, updates []repositories.Column) (string, error) {
	switch action {
	case domain.ActionAdd, domain.ActionUpdate, domain.ActionDelete:
	default:
		return "", domain.ActionError{Action: string(action)}
	}
	if action != domain.ActionAdd && id <= 0 {
		return "", domain.ValidationError{Msg: msgIDRequired(action)}
	}
	if action == domain.ActionUpdate && len(updates) == 0 {
		return "", domain.ValidationError{Msg: msgNoFields}
	}

	repo := repositories.FleetRepository{DB: s.DB, Table: table}
	var (
		affected int64
		err      error
	)
	switch action {
	case domain.ActionAdd:
		var newID domain.ID
		newID, err = repo.Insert(ctx, insert)
		if err == nil {
			affected = 1
			id = newID
		}
	case domain.ActionUpdate:
		affected, err = repo.Update(ctx, id, updates)
	case domain.ActionDelete:
		affected, err = repo.Delete(ctx, id)
	}
	if err != nil {
		utils.LogError(s.RequestID, table.Table, string(action), fmt.Sprintf("%s=%d", table.IDColumn, id), err)
		if intdb.IsDuplicate(err) {
			return "", domain.ConflictError{Resource: table.Entity, Msg: fmt.Sprintf("%s conflicts with an existing record.", table.Entity), Err: err}
		}
		return "", domain.InternalError{Msg: msgDatabaseError, Err: err}
	}
	if affected == 0 {
		return "", domain.NotFoundError{Resource: table.Entity, Msg: msgNotFound(table.Entity, id)}
	}

	utils.LogEvent(s.RequestID, table.Table, string(action), fmt.Sprintf("%s=%d", table.IDColumn, id))
	return fmt.Sprintf("%s %s successful.", table.Entity, action), nil
}
