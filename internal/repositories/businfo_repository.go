package repositories

import (
	"context"
	"database/sql"
	"fmt"

	intconfig "bustracker/internal/config"
	intdb "bustracker/internal/db"
	"bustracker/internal/domain"
	"bustracker/internal/domain/models"
)

// BusInfoRepository serves the read-only dashboard joins.
type BusInfoRepository struct {
	DB intdb.Querier
}

func (r BusInfoRepository) db() intdb.Querier {
	if r.DB != nil {
		return r.DB
	}
	if intconfig.DB == nil {
		return nil
	}
	return intconfig.DB
}

// StudentBusInfo joins student -> bus -> driver -> route. Location is left zero.
// Returns sql.ErrNoRows when the student has no fully assigned bus.
func (r BusInfoRepository) StudentBusInfo(ctx context.Context, studentID domain.ID) (models.StudentBusInfo, error) {
	db := r.db()
	if db == nil {
		return models.StudentBusInfo{}, fmt.Errorf("database not connected")
	}

	var (
		out                      models.StudentBusInfo
		busNumber, driverName    sql.NullString
		driverContact, routeName sql.NullString
	)
	err := db.QueryRowContext(ctx, `
		SELECT
			b.bus_number,
			s.name AS driverName,
			s.contact_info AS driverContact,
			r.route_name
		FROM students st
		JOIN buses b ON st.bus_id = b.bus_id
		JOIN staff s ON b.driver_id = s.staff_id
		JOIN routes r ON b.route_id = r.route_id
		WHERE st.student_id = ?
		LIMIT 1`, int64(studentID)).Scan(&busNumber, &driverName, &driverContact, &routeName)
	if err != nil {
		return models.StudentBusInfo{}, err
	}

	out.BusDetails.BusNumber = busNumber.String
	out.Driver.Name = driverName.String
	out.Driver.Phone = driverContact.String
	out.Route.RouteName = routeName.String
	return out, nil
}

// DriverBusInfo joins staff (by users.id) -> bus -> route.
func (r BusInfoRepository) DriverBusInfo(ctx context.Context, userID domain.ID) (models.DriverBusInfo, error) {
	db := r.db()
	if db == nil {
		return models.DriverBusInfo{}, fmt.Errorf("database not connected")
	}

	var (
		out                  models.DriverBusInfo
		busNumber, routeName sql.NullString
	)
	err := db.QueryRowContext(ctx, `
		SELECT
			b.bus_number,
			r.route_name
		FROM staff s
		JOIN buses b ON s.staff_id = b.driver_id
		JOIN routes r ON b.route_id = r.route_id
		WHERE s.user_id = ?
		LIMIT 1`, int64(userID)).Scan(&busNumber, &routeName)
	if err != nil {
		return models.DriverBusInfo{}, err
	}

	out.BusDetails.BusNumber = busNumber.String
	out.Route.RouteName = routeName.String
	return out, nil
}

// RouteSheet loads the driver's bus, route and the students riding it.
func (r BusInfoRepository) RouteSheet(ctx context.Context, userID domain.ID) (models.RouteSheet, error) {
	db := r.db()
	if db == nil {
		return models.RouteSheet{}, fmt.Errorf("database not connected")
	}

	var (
		out                     models.RouteSheet
		busNumber, driverName   sql.NullString
		routeName, routeDetails sql.NullString
		capacity                sql.NullInt64
	)
	err := db.QueryRowContext(ctx, `
		SELECT
			b.bus_id,
			b.bus_number,
			b.capacity,
			s.name,
			r.route_name,
			r.route_details
		FROM staff s
		JOIN buses b ON s.staff_id = b.driver_id
		JOIN routes r ON b.route_id = r.route_id
		WHERE s.user_id = ?
		LIMIT 1`, int64(userID)).Scan(&out.BusID, &busNumber, &capacity, &driverName, &routeName, &routeDetails)
	if err != nil {
		return models.RouteSheet{}, err
	}
	out.BusNumber = busNumber.String
	out.Capacity = int(capacity.Int64)
	out.DriverName = driverName.String
	out.RouteName = routeName.String
	out.RouteDetails = routeDetails.String

	rows, err := db.QueryContext(ctx, `
		SELECT student_id, name, contact_info
		FROM students
		WHERE bus_id = ?
		ORDER BY name ASC, student_id ASC`, int64(out.BusID))
	if err != nil {
		return out, err
	}
	defer rows.Close()

	out.Riders = []models.Rider{}
	for rows.Next() {
		var (
			rider         models.Rider
			name, contact sql.NullString
		)
		if err := rows.Scan(&rider.StudentID, &name, &contact); err != nil {
			return out, err
		}
		rider.Name = name.String
		rider.ContactInfo = contact.String
		out.Riders = append(out.Riders, rider)
	}
	return out, rows.Err()
}
