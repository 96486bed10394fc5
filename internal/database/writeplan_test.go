package database

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poisepms/poise/internal/metrics"
	"github.com/poisepms/poise/internal/models"
)

func TestExecute_CommitsAndApplies(t *testing.T) {
	t.Parallel()
	rec := metrics.NewRecorder()
	db, engine := setupTestEngine(t, WithMetrics(rec))

	applied := false
	err := engine.Execute(context.Background(), WritePlan{
		Label:      "create project",
		Statements: CreateProjectStatements(testProject(1, "Ann Lee", "Build Co", "Draw Inc")),
		Apply:      func() { applied = true },
	})
	require.NoError(t, err)

	assert.True(t, applied)
	for _, table := range TableNames {
		assert.Equal(t, 1, countRows(t, db, table), table)
	}
	assert.Equal(t, float64(1), testutil.ToFloat64(rec.CommittedCounter("create project")))
}

func TestExecute_RollsBackEveryStatement(t *testing.T) {
	t.Parallel()

	// the project row collides with the existing one after four good inserts
	rec := metrics.NewRecorder()
	db, engine := setupTestEngine(t, WithMetrics(rec))
	require.NoError(t, engine.Execute(context.Background(), WritePlan{
		Label:      "create project",
		Statements: CreateProjectStatements(testProject(1, "Ann Lee", "Build Co", "Draw Inc")),
	}))

	clash := testProject(1, "Bob Ray", "Other Build", "Other Draw")
	clash.ERFNumber = 999

	applied := false
	err := engine.Execute(context.Background(), WritePlan{
		Label:      "create project",
		Statements: CreateProjectStatements(clash),
		Apply:      func() { applied = true },
	})
	require.Error(t, err)

	assert.False(t, applied)
	assert.ErrorIs(t, err, models.ErrWriteRejected)
	assert.False(t, errors.Is(err, models.ErrStoreUnavailable))

	var we *WriteError
	require.ErrorAs(t, err, &we)
	assert.Equal(t, StageStatement, we.Stage)
	assert.Equal(t, 5, we.Index)
	assert.Equal(t, "insert projects", we.Statement)
	assert.Equal(t, ReasonDuplicate, we.Reason)
	assert.NotEmpty(t, we.PlanID)

	for _, table := range TableNames {
		assert.Equal(t, 1, countRows(t, db, table), table)
	}
	assert.Equal(t, float64(1), testutil.ToFloat64(rec.RolledBackCounter("create project", string(ReasonDuplicate))))
}

func TestExecute_ForeignKeyOrderMatters(t *testing.T) {
	t.Parallel()
	db, engine := setupTestEngine(t)

	d := testProject(2, "Ann Lee", "Build Co", "Draw Inc")
	stmts := CreateProjectStatements(d)
	// project first, dependencies after
	reordered := append([]Statement{stmts[4]}, stmts[:4]...)

	err := engine.Execute(context.Background(), WritePlan{Label: "misordered", Statements: reordered})
	require.Error(t, err)

	var we *WriteError
	require.ErrorAs(t, err, &we)
	assert.Equal(t, 1, we.Index)
	assert.Equal(t, ReasonForeignKey, we.Reason)
	assert.Equal(t, 0, countRows(t, db, "projects"))
	assert.Equal(t, 0, countRows(t, db, "sites"))
}

func TestExecute_MustAffect(t *testing.T) {
	t.Parallel()
	_, engine := setupTestEngine(t)

	err := engine.Execute(context.Background(), WritePlan{
		Label:      "apply payment",
		Statements: []Statement{UpdateTotalPaid(404, models.Money(100))},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrWriteRejected)

	var we *WriteError
	require.ErrorAs(t, err, &we)
	assert.Equal(t, ReasonNoRows, we.Reason)
}

func TestExecute_EmptyPlanRejected(t *testing.T) {
	t.Parallel()
	_, engine := setupTestEngine(t)

	err := engine.Execute(context.Background(), WritePlan{Label: "nothing", Apply: func() { t.Fatal("must not apply") }})
	assert.ErrorIs(t, err, models.ErrWriteRejected)
	assert.ErrorIs(t, err, errEmptyPlan)
}

func TestExecute_CancelledContextIsUnavailable(t *testing.T) {
	t.Parallel()
	db, engine := setupTestEngine(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := engine.Execute(ctx, WritePlan{
		Label:      "create project",
		Statements: CreateProjectStatements(testProject(3, "Ann Lee", "Build Co", "Draw Inc")),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrStoreUnavailable)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, countRows(t, db, "sites"))
}

func TestExecute_ClosedStoreIsUnavailable(t *testing.T) {
	t.Parallel()
	db, engine := setupTestEngine(t)
	require.NoError(t, db.Close())

	err := engine.Execute(context.Background(), WritePlan{
		Label:      "update deadline",
		Statements: []Statement{UpdateDeadline(1, "2030-01-01")},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrStoreUnavailable)

	var we *WriteError
	require.ErrorAs(t, err, &we)
	assert.Equal(t, StageBegin, we.Stage)
}

func TestExecute_RetryAfterFixIsClean(t *testing.T) {
	t.Parallel()
	db, engine := setupTestEngine(t)

	// occupy the architect key so the first attempt fails at statement 4
	require.NoError(t, engine.Execute(context.Background(), WritePlan{
		Label:      "seed architect",
		Statements: []Statement{InsertContact(models.HydrateContact(models.RoleArchitect, "Draw Inc", "1", "2", "3"))},
	}))

	d := testProject(4, "Ann Lee", "Build Co", "Draw Inc")
	err := engine.Execute(context.Background(), WritePlan{Label: "create project", Statements: CreateProjectStatements(d)})
	require.ErrorIs(t, err, models.ErrWriteRejected)

	_, err = db.ExecContext(context.Background(), `DELETE FROM architects WHERE name = 'Draw Inc'`)
	require.NoError(t, err)

	require.NoError(t, engine.Execute(context.Background(), WritePlan{Label: "create project", Statements: CreateProjectStatements(d)}))
	for _, table := range TableNames {
		assert.Equal(t, 1, countRows(t, db, table), table)
	}
}

func TestReplaceContractorStatements_Order(t *testing.T) {
	t.Parallel()

	current := models.HydrateContact(models.RoleContractor, "Old Co", "1", "2", "3")
	next := models.HydrateContact(models.RoleContractor, "New Co", "4", "5", "6")

	stmts := ReplaceContractorStatements(9, current, next)
	require.Len(t, stmts, 3)
	assert.Equal(t, "insert contractors", stmts[0].Label)
	assert.Equal(t, "update contractor reference", stmts[1].Label)
	assert.Equal(t, "delete contractors", stmts[2].Label)
	assert.Equal(t, []any{"Old Co"}, stmts[2].Args)
}

func TestWriteError_Message(t *testing.T) {
	t.Parallel()

	we := &WriteError{Plan: "apply payment", Stage: StageStatement, Index: 1, Statement: "update total paid", Reason: ReasonNoRows, Err: errNoRowsAffected}
	assert.Contains(t, we.Error(), "write rejected")
	assert.Contains(t, we.Error(), "statement 1 (update total paid)")

	we = &WriteError{Plan: "apply payment", Stage: StageCommit, Reason: ReasonConnection, Err: errors.New("boom")}
	assert.Contains(t, we.Error(), "store unavailable")
	assert.Contains(t, we.Error(), "commit failed")
}
