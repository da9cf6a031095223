package models

import "bustracker/internal/domain"

type BusDetails struct {
	BusNumber string `json:"busNumber"`
}

type DriverDetails struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type RouteDetails struct {
	RouteName string `json:"routeName"`
}

// StudentBusInfo is the student dashboard view.
type StudentBusInfo struct {
	BusDetails BusDetails    `json:"busDetails"`
	Driver     DriverDetails `json:"driver"`
	Route      RouteDetails  `json:"route"`
	Location   Location      `json:"location"`
}

// DriverBusInfo is the driver dashboard view.
type DriverBusInfo struct {
	BusDetails BusDetails   `json:"busDetails"`
	Route      RouteDetails `json:"route"`
}

// RouteSheet is the data printed on a driver's route sheet.
type RouteSheet struct {
	BusID        domain.ID
	BusNumber    string
	Capacity     int
	RouteName    string
	RouteDetails string
	DriverName   string
	Riders       []Rider
}

type Rider struct {
	StudentID   domain.ID
	Name        string
	ContactInfo string
}
