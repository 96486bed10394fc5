package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poisepms/poise/internal/models"
	"github.com/poisepms/poise/internal/testutil"
)

func project(t *testing.T, number int, name, deadline string, completed bool) *models.Project {
	t.Helper()
	d := testutil.ProjectFixture(number)
	d.Name = name
	d.Deadline = testutil.Date(t, deadline)
	if completed {
		done := testutil.Date(t, "2023-06-01")
		d.CompletionDate = &done
	}
	return models.NewProject(d)
}

func numbers(seq func(func(*models.Project) bool)) []int {
	var out []int
	for p := range seq {
		out = append(out, p.Number())
	}
	return out
}

func TestNew_RejectsDuplicateNumbers(t *testing.T) {
	t.Parallel()

	_, err := New([]*models.Project{
		project(t, 1, "A", "2030-01-01", false),
		project(t, 1, "B", "2030-01-01", false),
	})
	assert.ErrorIs(t, err, models.ErrDuplicateProjectNumber)
	assert.ErrorIs(t, err, models.ErrWriteRejected)
}

func TestAdd_KeepsInsertionOrder(t *testing.T) {
	t.Parallel()

	c, err := New(nil)
	require.NoError(t, err)
	for _, n := range []int{30, 10, 20} {
		require.NoError(t, c.Add(project(t, n, "P", "2030-01-01", false)))
	}

	assert.Equal(t, 3, c.Len())
	assert.Equal(t, []int{30, 10, 20}, numbers(c.All()))
	assert.True(t, c.Contains(10))
	assert.False(t, c.Contains(40))

	err = c.Add(project(t, 10, "again", "2030-01-01", false))
	assert.ErrorIs(t, err, models.ErrDuplicateProjectNumber)
	assert.Equal(t, 3, c.Len())
}

func TestFindByNumberOrName(t *testing.T) {
	t.Parallel()

	c, err := New([]*models.Project{
		project(t, 7, "42", "2030-01-01", false),
		project(t, 42, "Harbour View", "2030-01-01", false),
		project(t, 8, "harbour view", "2030-01-01", false),
	})
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		want    int
		wantErr error
	}{
		{"number wins over a project named like it", "42", 42, nil},
		{"number with spaces", " 7 ", 7, nil},
		{"unknown number does not fall back to names", "9", 0, models.ErrNotFound},
		{"case-insensitive name, first match", "HARBOUR VIEW", 42, nil},
		{"unknown name", "Nowhere", 0, models.ErrNotFound},
		{"empty token", "", 0, models.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p, err := c.FindByNumberOrName(tt.token)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, p)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Number())
		})
	}
}

func TestFindForEdit(t *testing.T) {
	t.Parallel()

	c, err := New([]*models.Project{
		project(t, 1, "Mill (Finalised)", "2020-01-01", true),
		project(t, 2, "Twin", "2030-01-01", true),
		project(t, 3, "twin", "2030-01-01", false),
		project(t, 4, "Solo", "2030-01-01", true),
	})
	require.NoError(t, err)

	p, err := c.FindForEdit("TWIN")
	require.NoError(t, err)
	assert.Equal(t, 3, p.Number())

	_, err = c.FindForEdit("1")
	assert.ErrorIs(t, err, models.ErrAlreadyFinalized)

	_, err = c.FindForEdit("solo")
	assert.ErrorIs(t, err, models.ErrAlreadyFinalized)

	_, err = c.FindForEdit("99")
	assert.ErrorIs(t, err, models.ErrNotFound)

	// the unrestricted lookup still sees finalised projects
	p, err = c.FindByNumberOrName("Solo")
	require.NoError(t, err)
	assert.Equal(t, 4, p.Number())
}

func TestIncompleteAndOverdue(t *testing.T) {
	t.Parallel()

	c, err := New([]*models.Project{
		project(t, 1, "Late", "2020-01-01", false),
		project(t, 2, "Future", "2099-01-01", false),
		project(t, 3, "Done", "2020-01-01", true),
		project(t, 4, "Due today", "2024-01-01", false),
	})
	require.NoError(t, err)

	asOf := time.Date(2024, time.January, 1, 23, 59, 0, 0, time.UTC)

	assert.Equal(t, []int{1, 2, 4}, numbers(c.Incomplete()))
	assert.Equal(t, []int{1}, numbers(c.Overdue(asOf)))
}

func TestSequencesAreRestartableAndLive(t *testing.T) {
	t.Parallel()

	c, err := New([]*models.Project{project(t, 1, "Late", "2020-01-01", false)})
	require.NoError(t, err)

	seq := c.Incomplete()
	assert.Equal(t, []int{1}, numbers(seq))
	assert.Equal(t, []int{1}, numbers(seq))

	require.NoError(t, c.Add(project(t, 2, "Later", "2021-01-01", false)))
	assert.Equal(t, []int{1, 2}, numbers(seq))

	// early break stops the walk
	visited := 0
	for range seq {
		visited++
		break
	}
	assert.Equal(t, 1, visited)
}

func TestEmptyCatalog(t *testing.T) {
	t.Parallel()

	c, err := New(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
	assert.Empty(t, numbers(c.All()))
	assert.Empty(t, numbers(c.Overdue(time.Now())))

	_, err = c.FindForEdit("anything")
	assert.ErrorIs(t, err, models.ErrNotFound)
}
