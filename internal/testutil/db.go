package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/poisepms/poise/internal/database"
	"github.com/poisepms/poise/internal/models"
)

// SetupTestDB creates an in-memory database with the production schema.
// It goes through database.Open so tests get the same pragmas and the
// single-connection pool that keeps ":memory:" on one handle.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, _, err := database.Open(context.Background(), database.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// SetupTestEngine creates an in-memory database and a write engine over it
func SetupTestEngine(t *testing.T, opts ...database.EngineOption) (*sql.DB, *database.Engine) {
	t.Helper()
	db := SetupTestDB(t)
	dialect, err := database.DialectFor(database.DriverSQLite)
	if err != nil {
		t.Fatalf("Failed to resolve dialect: %v", err)
	}
	return db, database.NewEngine(db, dialect, opts...)
}

// Date parses a YYYY-MM-DD date or fails the test
func Date(t *testing.T, raw string) time.Time {
	t.Helper()
	d, err := models.ParseDate(raw)
	if err != nil {
		t.Fatalf("Failed to parse date %q: %v", raw, err)
	}
	return d
}

// ProjectFixture returns valid project data whose site and contact keys are
// derived from number, so fixtures with different numbers never collide.
func ProjectFixture(number int) models.ProjectData {
	contact := func(role models.Role) models.Contact {
		return models.HydrateContact(role,
			fmt.Sprintf("%s %d", role, number),
			fmt.Sprintf("011 555 %04d", number),
			fmt.Sprintf("%s%d@example.com", strings.ToLower(role.String()), number),
			fmt.Sprintf("%d %s Street", number, role),
		)
	}
	return models.ProjectData{
		Number:     number,
		Name:       fmt.Sprintf("Project %d", number),
		BuildType:  "House",
		ERFNumber:  1000 + number,
		Address:    fmt.Sprintf("%d Site Road", number),
		TotalFee:   models.Money(500000),
		TotalPaid:  models.Money(100000),
		Deadline:   time.Date(2030, time.June, 30, 0, 0, 0, 0, time.UTC),
		Customer:   contact(models.RoleCustomer),
		Contractor: contact(models.RoleContractor),
		Architect:  contact(models.RoleArchitect),
		Manager:    "Pat Manager",
	}
}

// SeedProject writes a project's rows straight through the engine
func SeedProject(t *testing.T, engine *database.Engine, d models.ProjectData) {
	t.Helper()
	err := engine.Execute(context.Background(), database.WritePlan{
		Label:      "seed project",
		Statements: database.CreateProjectStatements(d),
	})
	if err != nil {
		t.Fatalf("Failed to seed project %d: %v", d.Number, err)
	}
}

// TableSnapshot renders every row of the five store tables, ordered by
// primary key, so two snapshots compare equal exactly when the store
// content is the same.
func TableSnapshot(t *testing.T, db *sql.DB) map[string][]string {
	t.Helper()
	snap := make(map[string][]string, len(database.TableNames))
	for _, table := range database.TableNames {
		rows, err := db.QueryContext(context.Background(), fmt.Sprintf("SELECT * FROM %s ORDER BY 1", table))
		if err != nil {
			t.Fatalf("Failed to read %s: %v", table, err)
		}
		cols, err := rows.Columns()
		if err != nil {
			t.Fatalf("Failed to read %s columns: %v", table, err)
		}
		lines := []string{}
		for rows.Next() {
			values := make([]any, len(cols))
			ptrs := make([]any, len(cols))
			for i := range values {
				ptrs[i] = &values[i]
			}
			if err := rows.Scan(ptrs...); err != nil {
				t.Fatalf("Failed to scan %s: %v", table, err)
			}
			fields := make([]string, len(values))
			for i, v := range values {
				if b, ok := v.([]byte); ok {
					v = string(b)
				}
				fields[i] = fmt.Sprint(v)
			}
			lines = append(lines, strings.Join(fields, "|"))
		}
		if err := rows.Err(); err != nil {
			t.Fatalf("Failed to iterate %s: %v", table, err)
		}
		_ = rows.Close()
		snap[table] = lines
	}
	return snap
}

// CountRows returns the number of rows in table
func CountRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	if err := db.QueryRowContext(context.Background(), fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&n); err != nil {
		t.Fatalf("Failed to count %s: %v", table, err)
	}
	return n
}
