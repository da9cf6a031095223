package models

import "bustracker/internal/domain"

type BusCommand struct {
	Action    domain.Action
	ID        domain.ID
	BusNumber *string
	Capacity  *int
	DriverID  *domain.ID
	RouteID   *domain.ID
}

type RouteCommand struct {
	Action       domain.Action
	ID           domain.ID
	RouteName    *string
	RouteDetails *string
}
