package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProject(t *testing.T) *Project {
	t.Helper()
	customer, err := NewContact(RoleCustomer, "Jane Doe", "1", "jane@example.com", "1 Road")
	require.NoError(t, err)
	contractor, err := NewContact(RoleContractor, "BuildIt", "2", "b@example.com", "2 Road")
	require.NoError(t, err)
	architect, err := NewContact(RoleArchitect, "Plans", "3", "p@example.com", "3 Road")
	require.NoError(t, err)

	deadline, err := ParseDate("2024-01-10")
	require.NoError(t, err)

	return NewProject(ProjectData{
		Number:     1,
		Name:       "House Doe",
		BuildType:  "House",
		ERFNumber:  10,
		Address:    "1 Road",
		TotalFee:   100000,
		TotalPaid:  25000,
		Deadline:   deadline,
		Customer:   customer,
		Contractor: contractor,
		Architect:  architect,
		Manager:    "Sam",
	})
}

func TestDeriveProjectName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		buildType, customer, want string
	}{
		{"House", "Jane Doe", "House Doe"},
		{"House", "Prince", "House Prince"},
		{"Shop", "  Ana  Maria Silva ", "Shop Maria"},
		{"Barn", "", "Barn"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DeriveProjectName(tt.buildType, tt.customer), tt.customer)
	}
}

func TestProject_IsOverdue(t *testing.T) {
	t.Parallel()
	p := sampleProject(t)

	day := func(s string) time.Time {
		d, err := ParseDate(s)
		require.NoError(t, err)
		return d
	}

	assert.False(t, p.IsOverdue(day("2024-01-09")))
	assert.False(t, p.IsOverdue(day("2024-01-10").Add(23*time.Hour)))
	assert.True(t, p.IsOverdue(day("2024-01-11")))

	require.NoError(t, p.Finalize(day("2024-02-01"), p.FinalisedName()))
	assert.False(t, p.IsOverdue(day("2030-01-01")))
}

func TestProject_FinalizeOnce(t *testing.T) {
	t.Parallel()
	p := sampleProject(t)
	first := time.Date(2024, 5, 1, 13, 0, 0, 0, time.UTC)

	require.NoError(t, p.Finalize(first, p.FinalisedName()))
	assert.Equal(t, "House Doe (Finalised)", p.Name())
	assert.Equal(t, "House Doe (Finalised)", p.FinalisedName())

	err := p.Finalize(first.AddDate(-1, 0, 0), "other")
	assert.ErrorIs(t, err, ErrAlreadyFinalized)

	done, ok := p.CompletionDate()
	require.True(t, ok)
	assert.Equal(t, "2024-05-01", FormatDate(done))
	assert.Equal(t, "House Doe (Finalised)", p.Name())
}

func TestProject_Outstanding(t *testing.T) {
	t.Parallel()
	p := sampleProject(t)

	assert.Equal(t, Money(75000), p.Outstanding())
	p.AddPayment(100000)
	assert.Equal(t, Money(-25000), p.Outstanding())
}

func TestProject_ReplaceContractorChecksRole(t *testing.T) {
	t.Parallel()
	p := sampleProject(t)

	err := p.ReplaceContractor(p.Architect())
	assert.ErrorIs(t, err, ErrInvalidProject)
	assert.Equal(t, "BuildIt", p.Contractor().Name())
}

func TestProject_DataIsACopy(t *testing.T) {
	t.Parallel()
	p := sampleProject(t)
	require.NoError(t, p.Finalize(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), p.FinalisedName()))

	d := p.Data()
	*d.CompletionDate = d.CompletionDate.AddDate(-10, 0, 0)

	done, _ := p.CompletionDate()
	assert.Equal(t, 2024, done.Year())
}

func TestNewContact(t *testing.T) {
	t.Parallel()

	c, err := NewContact(RoleArchitect, "  Plans  ", " 3 ", "p@example.com", "3 Road")
	require.NoError(t, err)
	assert.Equal(t, "Plans", c.Name())
	assert.Equal(t, "3", c.Phone())
	assert.Equal(t, "architects", c.Role().Table())

	_, err = NewContact(Role(9), "x", "x", "x", "x")
	assert.ErrorIs(t, err, ErrInvalidProject)

	_, err = NewContact(RoleCustomer, "x", "", "x", "x")
	require.ErrorIs(t, err, ErrInvalidProject)
	assert.Contains(t, err.Error(), "customer phone")
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	d, err := ParseDate(" 2024-02-29 ")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", FormatDate(d))

	for _, raw := range []string{"", "2023-02-29", "29-02-2024", "2024-2-1"} {
		_, err := ParseDate(raw)
		assert.ErrorIs(t, err, ErrInvalidDate, raw)
	}
}
