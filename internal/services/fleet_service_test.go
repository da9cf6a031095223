package services

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"bustracker/internal/domain"
	"bustracker/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
)

func newFleetMock(t *testing.T) (FleetService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return FleetService{DB: db}, mock
}

func intPtr(n int) *int { return &n }

func TestRouteAdd(t *testing.T) {
	svc, mock := newFleetMock(t)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO routes (route_name, route_details) VALUES (?, ?)")).
		WithArgs("Route 7", "North loop").
		WillReturnResult(sqlmock.NewResult(7, 1))

	msg, err := svc.ManageRoute(context.Background(), models.RouteCommand{
		Action:       domain.ActionAdd,
		RouteName:    strPtr("Route 7"),
		RouteDetails: strPtr("North loop"),
	})
	if err != nil {
		t.Fatalf("ManageRoute error: %v", err)
	}
	if msg != "Route add successful." {
		t.Fatalf("unexpected message %q", msg)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBusAddWritesNullForMissingColumns(t *testing.T) {
	svc, mock := newFleetMock(t)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO buses (bus_number, capacity, driver_id, route_id) VALUES (?, ?, ?, ?)")).
		WithArgs("TS-09-1234", int64(40), nil, int64(2)).
		WillReturnResult(sqlmock.NewResult(11, 1))

	msg, err := svc.ManageBus(context.Background(), models.BusCommand{
		Action:    domain.ActionAdd,
		BusNumber: strPtr("TS-09-1234"),
		Capacity:  intPtr(40),
		RouteID:   idPtr(2),
	})
	if err != nil {
		t.Fatalf("ManageBus error: %v", err)
	}
	if msg != "Bus add successful." {
		t.Fatalf("unexpected message %q", msg)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBusUpdateOnlyPresentFields(t *testing.T) {
	svc, mock := newFleetMock(t)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE buses SET capacity = ?, driver_id = ? WHERE bus_id = ?")).
		WithArgs(int64(52), int64(5), int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	msg, err := svc.ManageBus(context.Background(), models.BusCommand{
		Action:   domain.ActionUpdate,
		ID:       11,
		Capacity: intPtr(52),
		DriverID: idPtr(5),
	})
	if err != nil {
		t.Fatalf("ManageBus error: %v", err)
	}
	if msg != "Bus update successful." {
		t.Fatalf("unexpected message %q", msg)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBusUpdateWithoutFields(t *testing.T) {
	svc, mock := newFleetMock(t)

	_, err := svc.ManageBus(context.Background(), models.BusCommand{Action: domain.ActionUpdate, ID: 11})
	if !domain.IsValidation(err) || err.Error() != "No fields to update." {
		t.Fatalf("unexpected error %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("store touched: %v", err)
	}
}

func TestRouteDeleteNotFound(t *testing.T) {
	svc, mock := newFleetMock(t)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM routes WHERE route_id = ?")).
		WithArgs(int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := svc.ManageRoute(context.Background(), models.RouteCommand{Action: domain.ActionDelete, ID: 404})
	if !domain.IsNotFound(err) || err.Error() != "Route with ID 404 not found." {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestFleetInvalidActionAndMissingID(t *testing.T) {
	svc, mock := newFleetMock(t)

	if _, err := svc.ManageRoute(context.Background(), models.RouteCommand{Action: "archive", ID: 1}); !domain.IsInvalidAction(err) {
		t.Fatalf("expected invalid action, got %v", err)
	}
	_, err := svc.ManageBus(context.Background(), models.BusCommand{Action: domain.ActionDelete})
	if !domain.IsValidation(err) || err.Error() != "ID is required for delete action." {
		t.Fatalf("unexpected error %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("store touched: %v", err)
	}
}

func TestFleetDatabaseErrors(t *testing.T) {
	svc, mock := newFleetMock(t)
	mock.ExpectExec("UPDATE routes").WillReturnError(errors.New("gone away"))
	mock.ExpectExec("UPDATE buses").WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry '5' for key 'driver_id'"})

	_, err := svc.ManageRoute(context.Background(), models.RouteCommand{Action: domain.ActionUpdate, ID: 1, RouteName: strPtr("R")})
	if !domain.IsInternal(err) || err.Error() != "Database query error." {
		t.Fatalf("unexpected error %v", err)
	}

	_, err = svc.ManageBus(context.Background(), models.BusCommand{Action: domain.ActionUpdate, ID: 2, DriverID: idPtr(5)})
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}
