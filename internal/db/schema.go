package db

import (
	"context"
	"fmt"
	"log"
)

// tables lists the bootstrap order; buses references staff and routes, students references buses.
var tables = []string{"users", "routes", "staff", "buses", "students"}

var mysqlDDL = map[string]string{
	"users": `
CREATE TABLE IF NOT EXISTS users (
	id INT AUTO_INCREMENT PRIMARY KEY,
	email VARCHAR(255) NOT NULL UNIQUE,
	password_hash VARCHAR(255) NOT NULL,
	role ENUM('student','driver','admin') NOT NULL
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
	"routes": `
CREATE TABLE IF NOT EXISTS routes (
	route_id INT AUTO_INCREMENT PRIMARY KEY,
	route_name VARCHAR(255),
	route_details TEXT
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
	"staff": `
CREATE TABLE IF NOT EXISTS staff (
	staff_id INT AUTO_INCREMENT PRIMARY KEY,
	user_id INT,
	name VARCHAR(255),
	contact_info VARCHAR(255),
	type VARCHAR(50),
	KEY idx_staff_user (user_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
	"buses": `
CREATE TABLE IF NOT EXISTS buses (
	bus_id INT AUTO_INCREMENT PRIMARY KEY,
	bus_number VARCHAR(50),
	capacity INT,
	driver_id INT NULL UNIQUE,
	route_id INT NULL,
	KEY idx_bus_route (route_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
	"students": `
CREATE TABLE IF NOT EXISTS students (
	student_id INT AUTO_INCREMENT PRIMARY KEY,
	user_id INT,
	name VARCHAR(255),
	contact_info VARCHAR(255),
	bus_id INT NULL,
	KEY idx_student_user (user_id),
	KEY idx_student_bus (bus_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
}

var sqliteDDL = map[string]string{
	"users": `
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	role TEXT NOT NULL CHECK (role IN ('student','driver','admin'))
)`,
	"routes": `
CREATE TABLE IF NOT EXISTS routes (
	route_id INTEGER PRIMARY KEY AUTOINCREMENT,
	route_name TEXT,
	route_details TEXT
)`,
	"staff": `
CREATE TABLE IF NOT EXISTS staff (
	staff_id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER,
	name TEXT,
	contact_info TEXT,
	type TEXT
)`,
	"buses": `
CREATE TABLE IF NOT EXISTS buses (
	bus_id INTEGER PRIMARY KEY AUTOINCREMENT,
	bus_number TEXT,
	capacity INTEGER,
	driver_id INTEGER UNIQUE,
	route_id INTEGER
)`,
	"students": `
CREATE TABLE IF NOT EXISTS students (
	student_id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER,
	name TEXT,
	contact_info TEXT,
	bus_id INTEGER
)`,
}

// EnsureSchema creates any missing table. It never alters existing ones.
func EnsureSchema(ctx context.Context, q Querier, driver string) error {
	ddl := mysqlDDL
	switch driver {
	case "mysql":
	case "sqlite3":
		ddl = sqliteDDL
	default:
		return fmt.Errorf("unsupported driver %q", driver)
	}

	for _, table := range tables {
		if HasTable(ctx, q, driver, table) {
			continue
		}
		if _, err := q.ExecContext(ctx, ddl[table]); err != nil {
			return fmt.Errorf("create table %s: %w", table, err)
		}
		log.Printf("[DB] created table %s", table)
	}
	return nil
}
