package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poisepms/poise/internal/models"
)

func TestLoadProjects_Empty(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)

	projects, err := LoadProjects(context.Background(), db)
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestLoadProjects_RoundTrip(t *testing.T) {
	t.Parallel()
	db, engine := setupTestEngine(t)
	ctx := context.Background()

	open := testProject(20, "Ann Lee", "Build Co", "Draw Inc")
	done := testProject(10, "Bob Ray", "Other Build", "Other Draw")
	finished := done.Deadline.AddDate(0, 1, 0)
	done.CompletionDate = &finished
	done.Name = "Riverside (Finalised)"
	done.TotalPaid = models.Money(1300000)

	for _, d := range []models.ProjectData{open, done} {
		require.NoError(t, engine.Execute(ctx, WritePlan{Label: "create project", Statements: CreateProjectStatements(d)}))
	}

	projects, err := LoadProjects(ctx, db)
	require.NoError(t, err)
	require.Len(t, projects, 2)

	// ordered by project number
	assert.Equal(t, done, projects[0].Data())
	assert.Equal(t, open, projects[1].Data())
	assert.True(t, projects[0].IsFinalized())
	assert.False(t, projects[1].IsFinalized())
}

func TestLoadProjects_SharedRowsGetOwnContacts(t *testing.T) {
	t.Parallel()
	db, engine := setupTestEngine(t)
	ctx := context.Background()

	first := testProject(1, "Ann Lee", "Build Co", "Draw Inc")
	require.NoError(t, engine.Execute(ctx, WritePlan{Label: "create project", Statements: CreateProjectStatements(first)}))

	second := testProject(2, "Ann Lee", "Build Co", "Draw Inc")
	require.NoError(t, engine.Execute(ctx, WritePlan{
		Label:      "create sharing project",
		Statements: []Statement{InsertSite(second.ERFNumber, second.Address), InsertProject(second)},
	}))

	projects, err := LoadProjects(ctx, db)
	require.NoError(t, err)
	require.Len(t, projects, 2)

	require.NoError(t, projects[0].ReplaceContractor(models.HydrateContact(models.RoleContractor, "Swap", "1", "2", "3")))
	assert.Equal(t, "Build Co", projects[1].Contractor().Name())
}

func TestLoadProjects_MalformedDateIsUnavailable(t *testing.T) {
	t.Parallel()
	db, engine := setupTestEngine(t)
	ctx := context.Background()

	require.NoError(t, engine.Execute(ctx, WritePlan{
		Label:      "create project",
		Statements: CreateProjectStatements(testProject(1, "Ann Lee", "Build Co", "Draw Inc")),
	}))
	_, err := db.ExecContext(ctx, `UPDATE projects SET deadline = '05/11/2029'`)
	require.NoError(t, err)

	projects, err := LoadProjects(ctx, db)
	assert.Nil(t, projects)
	assert.ErrorIs(t, err, models.ErrStoreUnavailable)
	assert.ErrorIs(t, err, models.ErrInvalidDate)
}

func TestLoadProjects_ClosedStore(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	require.NoError(t, db.Close())

	_, err := LoadProjects(context.Background(), db)
	assert.ErrorIs(t, err, models.ErrStoreUnavailable)
}
