package cli

import (
	"context"
	"database/sql"
	"testing"

	"github.com/poisepms/poise/internal/app"
	"github.com/poisepms/poise/internal/database"
	"github.com/poisepms/poise/internal/logging"
	"github.com/poisepms/poise/internal/models"
	"github.com/poisepms/poise/internal/testutil"
)

// SetupCLITest creates an in-memory DB and returns both the DB and a loaded
// App instance. This package is only for CLI tests and is isolated to avoid
// import cycles when service tests import testutil.
func SetupCLITest(t *testing.T, opts ...app.Option) (*sql.DB, *app.App) {
	t.Helper()
	db := testutil.SetupTestDB(t)

	opts = append([]app.Option{app.WithLogger(logging.Discard())}, opts...)
	appInstance := app.New(db, database.Dialect{Driver: database.DriverSQLite}, opts...)
	if err := appInstance.Load(context.Background()); err != nil {
		t.Fatalf("Failed to load catalog: %v", err)
	}

	return db, appInstance
}

// SeedProject writes the fixture project for number to the store and
// reloads the app's catalog so commands can see it.
func SeedProject(t *testing.T, a *app.App, number int) models.ProjectData {
	t.Helper()
	return SeedProjectData(t, a, testutil.ProjectFixture(number))
}

// SeedProjectData writes d to the store and reloads the app's catalog
func SeedProjectData(t *testing.T, a *app.App, d models.ProjectData) models.ProjectData {
	t.Helper()
	testutil.SeedProject(t, a.Engine, d)
	if err := a.Load(context.Background()); err != nil {
		t.Fatalf("Failed to reload catalog: %v", err)
	}
	return d
}
