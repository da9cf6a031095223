package services

import (
	"context"
	"database/sql"
	"math/rand"
	"testing"

	intdb "bustracker/internal/db"
	"bustracker/internal/domain"
	"bustracker/internal/domain/models"
	"bustracker/internal/location"
	"bustracker/internal/repositories"

	_ "github.com/mattn/go-sqlite3"
)

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	if err := intdb.EnsureSchema(context.Background(), db, "sqlite3"); err != nil {
		t.Fatalf("EnsureSchema error: %v", err)
	}
	return db
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

func TestMemberLifecycleSQLite(t *testing.T) {
	db := openSQLite(t)
	ctx := context.Background()
	students := MemberService{DB: db, Entity: repositories.StudentEntity, HashPasswords: true}

	if _, err := students.Manage(ctx, models.MemberCommand{
		Action:   domain.ActionAdd,
		Email:    strPtr("asha@school.edu"),
		Password: strPtr("pw"),
		Name:     strPtr("Asha"),
	}); err != nil {
		t.Fatalf("add error: %v", err)
	}

	login := AuthService{Users: repositories.UserRepository{DB: db}}
	res, err := login.Login(ctx, "asha@school.edu", "pw")
	if err != nil {
		t.Fatalf("login error: %v", err)
	}
	if res.Role != domain.RoleStudent {
		t.Fatalf("unexpected role %q", res.Role)
	}

	_, err = students.Manage(ctx, models.MemberCommand{
		Action:   domain.ActionAdd,
		Email:    strPtr("asha@school.edu"),
		Password: strPtr("other"),
		Name:     strPtr("Copy"),
	})
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict on duplicate email, got %v", err)
	}
	if got := countRows(t, db, "students"); got != 1 {
		t.Fatalf("duplicate add left %d student rows", got)
	}

	var studentID domain.ID
	if err := db.QueryRow("SELECT student_id FROM students WHERE user_id = ?", int64(res.ID)).Scan(&studentID); err != nil {
		t.Fatalf("lookup student: %v", err)
	}

	if _, err := students.Manage(ctx, models.MemberCommand{Action: domain.ActionUpdate, ID: studentID, Password: strPtr("new-pw")}); err != nil {
		t.Fatalf("update error: %v", err)
	}
	if _, err := login.Login(ctx, "asha@school.edu", "new-pw"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}

	if _, err := students.Manage(ctx, models.MemberCommand{Action: domain.ActionDelete, ID: studentID}); err != nil {
		t.Fatalf("delete error: %v", err)
	}
	if got := countRows(t, db, "students"); got != 0 {
		t.Fatalf("students left: %d", got)
	}
	if got := countRows(t, db, "users"); got != 0 {
		t.Fatalf("users left: %d", got)
	}
}

func TestDashboardSQLite(t *testing.T) {
	db := openSQLite(t)
	ctx := context.Background()

	drivers := MemberService{DB: db, Entity: repositories.DriverEntity}
	if _, err := drivers.Manage(ctx, models.MemberCommand{
		Action:      domain.ActionAdd,
		Email:       strPtr("ravi@school.edu"),
		Password:    strPtr("pw"),
		Name:        strPtr("Ravi"),
		ContactInfo: strPtr("555-0202"),
	}); err != nil {
		t.Fatalf("add driver: %v", err)
	}
	var staffID, driverUserID domain.ID
	var kind string
	if err := db.QueryRow("SELECT staff_id, user_id, type FROM staff").Scan(&staffID, &driverUserID, &kind); err != nil {
		t.Fatalf("lookup staff: %v", err)
	}
	if kind != "driver" {
		t.Fatalf("staff type = %q", kind)
	}

	fleet := FleetService{DB: db}
	if _, err := fleet.ManageRoute(ctx, models.RouteCommand{Action: domain.ActionAdd, RouteName: strPtr("Route 7")}); err != nil {
		t.Fatalf("add route: %v", err)
	}
	routeID := domain.ID(1)
	if _, err := fleet.ManageBus(ctx, models.BusCommand{
		Action:    domain.ActionAdd,
		BusNumber: strPtr("TS-09-1234"),
		Capacity:  intPtr(40),
		DriverID:  &staffID,
		RouteID:   &routeID,
	}); err != nil {
		t.Fatalf("add bus: %v", err)
	}
	busID := domain.ID(1)

	students := MemberService{DB: db, Entity: repositories.StudentEntity}
	if _, err := students.Manage(ctx, models.MemberCommand{
		Action:   domain.ActionAdd,
		Email:    strPtr("asha@school.edu"),
		Password: strPtr("pw"),
		Name:     strPtr("Asha"),
		BusID:    &busID,
	}); err != nil {
		t.Fatalf("add student: %v", err)
	}

	sim, err := location.NewSimulator(location.DefaultTable, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("simulator: %v", err)
	}
	info := BusInfoService{Repo: repositories.BusInfoRepository{DB: db}, Locations: sim}

	student, err := info.StudentBusInfo(ctx, 1)
	if err != nil {
		t.Fatalf("student info: %v", err)
	}
	if student.BusDetails.BusNumber != "TS-09-1234" || student.Driver.Name != "Ravi" || student.Route.RouteName != "Route 7" {
		t.Fatalf("unexpected student info %+v", student)
	}

	driver, err := info.DriverBusInfo(ctx, driverUserID)
	if err != nil {
		t.Fatalf("driver info: %v", err)
	}
	if driver.BusDetails.BusNumber != "TS-09-1234" {
		t.Fatalf("unexpected driver info %+v", driver)
	}

	sheet, err := repositories.BusInfoRepository{DB: db}.RouteSheet(ctx, driverUserID)
	if err != nil {
		t.Fatalf("route sheet: %v", err)
	}
	if len(sheet.Riders) != 1 || sheet.Riders[0].Name != "Asha" {
		t.Fatalf("unexpected riders %+v", sheet.Riders)
	}

	// a second bus cannot take the same driver
	_, err = fleet.ManageBus(ctx, models.BusCommand{Action: domain.ActionAdd, BusNumber: strPtr("TS-09-9999"), DriverID: &staffID})
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}
