package database

import (
	"context"
	"database/sql"
	"fmt"
)

// TableNames lists the five store tables in foreign-key dependency order:
// every table only references tables before it.
var TableNames = []string{"sites", "customers", "contractors", "architects", "projects"}

// schema is plain enough to run unchanged on SQLite, Postgres and MySQL.
// Money columns hold integer cents; dates are stored as YYYY-MM-DD text.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS sites (
		erf_number INTEGER NOT NULL PRIMARY KEY,
		address VARCHAR(255) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS customers (
		name VARCHAR(255) NOT NULL PRIMARY KEY,
		phone VARCHAR(64) NOT NULL,
		email VARCHAR(255) NOT NULL,
		address VARCHAR(255) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS contractors (
		name VARCHAR(255) NOT NULL PRIMARY KEY,
		phone VARCHAR(64) NOT NULL,
		email VARCHAR(255) NOT NULL,
		address VARCHAR(255) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS architects (
		name VARCHAR(255) NOT NULL PRIMARY KEY,
		phone VARCHAR(64) NOT NULL,
		email VARCHAR(255) NOT NULL,
		address VARCHAR(255) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS projects (
		number INTEGER NOT NULL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		build_type VARCHAR(255) NOT NULL,
		erf_number INTEGER NOT NULL,
		total_fee BIGINT NOT NULL,
		total_paid BIGINT NOT NULL,
		deadline VARCHAR(10) NOT NULL,
		customer_name VARCHAR(255) NOT NULL,
		contractor_name VARCHAR(255) NOT NULL,
		architect_name VARCHAR(255) NOT NULL,
		manager VARCHAR(255) NOT NULL,
		completion_date VARCHAR(10) NULL,
		FOREIGN KEY (erf_number) REFERENCES sites(erf_number),
		FOREIGN KEY (customer_name) REFERENCES customers(name),
		FOREIGN KEY (contractor_name) REFERENCES contractors(name),
		FOREIGN KEY (architect_name) REFERENCES architects(name)
	)`,
}

// EnsureSchema creates any missing table. It never alters existing ones.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create table %s: %w", TableNames[i], err)
		}
	}
	return nil
}
