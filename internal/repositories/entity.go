package repositories

import (
	"fmt"
	"strings"

	"bustracker/internal/domain"
)

// TableDescriptor names a managed table and the only columns statements may touch.
// Identifiers are interpolated into SQL, so descriptors are package-level values, never caller input.
type TableDescriptor struct {
	Entity   string
	Table    string
	IDColumn string
	Columns  []string
}

// EntityDescriptor is a role-detail table linked to users through user_id.
type EntityDescriptor struct {
	TableDescriptor
	Role domain.Role
	// Fixed columns are written on insert only.
	Fixed []Column
}

// Column is a whitelisted column/value pair.
type Column struct {
	Name  string
	Value any
}

var (
	StudentEntity = EntityDescriptor{
		TableDescriptor: TableDescriptor{
			Entity:   "student",
			Table:    "students",
			IDColumn: "student_id",
			Columns:  []string{"name", "contact_info", "bus_id"},
		},
		Role: domain.RoleStudent,
	}

	DriverEntity = EntityDescriptor{
		TableDescriptor: TableDescriptor{
			Entity:   "driver",
			Table:    "staff",
			IDColumn: "staff_id",
			Columns:  []string{"name", "contact_info"},
		},
		Role:  domain.RoleDriver,
		Fixed: []Column{{Name: "type", Value: "driver"}},
	}

	BusTable = TableDescriptor{
		Entity:   "Bus",
		Table:    "buses",
		IDColumn: "bus_id",
		Columns:  []string{"bus_number", "capacity", "driver_id", "route_id"},
	}

	RouteTable = TableDescriptor{
		Entity:   "Route",
		Table:    "routes",
		IDColumn: "route_id",
		Columns:  []string{"route_name", "route_details"},
	}
)

// Allows reports whether column is on the whitelist.
func (t TableDescriptor) Allows(column string) bool {
	for _, c := range t.Columns {
		if c == column {
			return true
		}
	}
	return false
}

func (t TableDescriptor) checkColumns(cols []Column) error {
	for _, c := range cols {
		if !t.Allows(c.Name) {
			return fmt.Errorf("column %q is not managed on %s", c.Name, t.Table)
		}
	}
	return nil
}

func (t TableDescriptor) insertStmt(cols []Column) (string, []any, error) {
	if len(cols) == 0 {
		return "", nil, fmt.Errorf("no columns to insert into %s", t.Table)
	}
	names := make([]string, 0, len(cols))
	marks := make([]string, 0, len(cols))
	args := make([]any, 0, len(cols))
	for _, c := range cols {
		names = append(names, c.Name)
		marks = append(marks, "?")
		args = append(args, c.Value)
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", t.Table, strings.Join(names, ", "), strings.Join(marks, ", "))
	return query, args, nil
}

func (t TableDescriptor) updateStmt(id domain.ID, cols []Column) (string, []any, error) {
	if len(cols) == 0 {
		return "", nil, fmt.Errorf("no columns to update on %s", t.Table)
	}
	if err := t.checkColumns(cols); err != nil {
		return "", nil, err
	}
	sets := make([]string, 0, len(cols))
	args := make([]any, 0, len(cols)+1)
	for _, c := range cols {
		sets = append(sets, c.Name+" = ?")
		args = append(args, c.Value)
	}
	args = append(args, int64(id))
	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = ?", t.Table, strings.Join(sets, ", "), t.IDColumn)
	return query, args, nil
}

func (t TableDescriptor) deleteStmt() string {
	return fmt.Sprintf("DELETE FROM %s WHERE %s = ?", t.Table, t.IDColumn)
}
