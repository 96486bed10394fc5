package app

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poisepms/poise/internal/database"
	"github.com/poisepms/poise/internal/logging"
	"github.com/poisepms/poise/internal/metrics"
	projectservice "github.com/poisepms/poise/internal/services/project"
	poisetest "github.com/poisepms/poise/internal/testutil"
)

func contact(n string) projectservice.ContactRequest {
	return projectservice.ContactRequest{Name: n, Phone: "1", Email: n + "@example.com", Address: "1 Road"}
}

func TestNew(t *testing.T) {
	t.Parallel()
	db := poisetest.SetupTestDB(t)

	a := New(db, database.Dialect{Driver: database.DriverSQLite})
	require.NotNil(t, a)
	assert.NotNil(t, a.Engine)
	assert.NotNil(t, a.Metrics)
	assert.NotNil(t, a.ProjectService)
	assert.Equal(t, "R", a.Currency)
	require.NoError(t, a.Load(context.Background()))
	assert.Equal(t, 0, a.ProjectService.Catalog().Len())
}

func TestOptionsAreWired(t *testing.T) {
	t.Parallel()
	db := poisetest.SetupTestDB(t)

	var logs bytes.Buffer
	rec := metrics.NewRecorder()
	day := time.Date(2025, time.July, 4, 9, 0, 0, 0, time.UTC)

	a := New(db, database.Dialect{Driver: database.DriverSQLite},
		WithLogger(logging.New(&logs, slog.LevelDebug)),
		WithClock(func() time.Time { return day }),
		WithMetrics(rec),
		WithCurrency("$"),
		WithWriteTimeout(time.Second),
	)
	require.NoError(t, a.Load(context.Background()))

	p, err := a.ProjectService.CreateProject(context.Background(), projectservice.CreateProjectRequest{
		Number: 1, BuildType: "House", ERFNumber: 1, Address: "1 Road",
		TotalFee: "100", Deadline: "2030-01-01", Manager: "Sam",
		Customer: contact("Jane Doe"), Contractor: contact("Build"), Architect: contact("Plan"),
	})
	require.NoError(t, err)

	result, err := a.ProjectService.Finalize(context.Background(), p)
	require.NoError(t, err)
	done, _ := result.Project.CompletionDate()

	assert.Equal(t, "2025-07-04", done.Format("2006-01-02"))
	assert.Equal(t, "$", a.Currency)
	assert.Equal(t, day, a.Now())
	assert.Equal(t, float64(1), testutil.ToFloat64(rec.CommittedCounter("create project")))
	assert.Equal(t, float64(1), testutil.ToFloat64(rec.CommittedCounter("finalise project")))
	assert.Contains(t, logs.String(), "executing write plan")
	assert.Contains(t, logs.String(), "operator=")

	require.NoError(t, a.Close())
	assert.Contains(t, logs.String(), "session summary")
}
