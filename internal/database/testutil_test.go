package database

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/poisepms/poise/internal/models"
)

// setupTestDB opens an in-memory store with the production schema
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, _, err := Open(context.Background(), DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func setupTestEngine(t *testing.T, opts ...EngineOption) (*sql.DB, *Engine) {
	t.Helper()
	db := setupTestDB(t)
	return db, NewEngine(db, Dialect{Driver: DriverSQLite}, opts...)
}

func testProject(number int, customer, contractor, architect string) models.ProjectData {
	return models.ProjectData{
		Number:     number,
		Name:       "Riverside",
		BuildType:  "House",
		ERFNumber:  500 + number,
		Address:    "1 River Lane",
		TotalFee:   models.Money(1200050),
		TotalPaid:  models.Money(0),
		Deadline:   time.Date(2029, time.November, 5, 0, 0, 0, 0, time.UTC),
		Customer:   models.HydrateContact(models.RoleCustomer, customer, "021 000 0001", "c@example.com", "2 Oak Street"),
		Contractor: models.HydrateContact(models.RoleContractor, contractor, "021 000 0002", "b@example.com", "3 Oak Street"),
		Architect:  models.HydrateContact(models.RoleArchitect, architect, "021 000 0003", "a@example.com", "4 Oak Street"),
		Manager:    "Sam",
	}
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	if err := db.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		t.Fatalf("Failed to count %s: %v", table, err)
	}
	return n
}
