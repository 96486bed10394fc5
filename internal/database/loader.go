package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/poisepms/poise/internal/models"
)

const catalogQuery = `
	SELECT p.number, p.name, p.build_type, p.erf_number, s.address,
		p.total_fee, p.total_paid, p.deadline,
		p.customer_name, cu.phone, cu.email, cu.address,
		p.contractor_name, co.phone, co.email, co.address,
		p.architect_name, ar.phone, ar.email, ar.address,
		p.manager, p.completion_date
	FROM projects p
	INNER JOIN sites s ON p.erf_number = s.erf_number
	INNER JOIN customers cu ON p.customer_name = cu.name
	INNER JOIN contractors co ON p.contractor_name = co.name
	INNER JOIN architects ar ON p.architect_name = ar.name
	ORDER BY p.number`

// LoadProjects reads every project with its site and contacts in one joined
// query. Either all rows load or an ErrStoreUnavailable error is returned.
// Each project gets its own Contact values even when rows are shared.
func LoadProjects(ctx context.Context, db *sql.DB) ([]*models.Project, error) {
	rows, err := db.QueryContext(ctx, catalogQuery)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query projects: %w", models.ErrStoreUnavailable, err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("failed to close rows", "error", err)
		}
	}()

	projects := make([]*models.Project, 0, 16)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", models.ErrStoreUnavailable, err)
		}
		projects = append(projects, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error iterating project rows: %w", models.ErrStoreUnavailable, err)
	}
	return projects, nil
}

type contactColumns struct {
	name, phone, email, address string
}

func scanProject(rows *sql.Rows) (*models.Project, error) {
	var (
		d                         models.ProjectData
		siteAddress               string
		fee, paid                 int64
		deadline                  string
		completion                sql.NullString
		customer, contractor, arc contactColumns
	)
	err := rows.Scan(
		&d.Number, &d.Name, &d.BuildType, &d.ERFNumber, &siteAddress,
		&fee, &paid, &deadline,
		&customer.name, &customer.phone, &customer.email, &customer.address,
		&contractor.name, &contractor.phone, &contractor.email, &contractor.address,
		&arc.name, &arc.phone, &arc.email, &arc.address,
		&d.Manager, &completion,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan project row: %w", err)
	}

	d.Address = siteAddress
	d.TotalFee = models.Money(fee)
	d.TotalPaid = models.Money(paid)

	d.Deadline, err = models.ParseDate(deadline)
	if err != nil {
		return nil, fmt.Errorf("project %d has a malformed deadline: %w", d.Number, err)
	}
	if completion.Valid && completion.String != "" {
		done, err := models.ParseDate(completion.String)
		if err != nil {
			return nil, fmt.Errorf("project %d has a malformed completion date: %w", d.Number, err)
		}
		d.CompletionDate = &done
	}

	d.Customer = models.HydrateContact(models.RoleCustomer, customer.name, customer.phone, customer.email, customer.address)
	d.Contractor = models.HydrateContact(models.RoleContractor, contractor.name, contractor.phone, contractor.email, contractor.address)
	d.Architect = models.HydrateContact(models.RoleArchitect, arc.name, arc.phone, arc.email, arc.address)

	return models.NewProject(d), nil
}

// LoadProjects reads the catalog through the engine's connection
func (e *Engine) LoadProjects(ctx context.Context) ([]*models.Project, error) {
	return LoadProjects(ctx, e.db)
}
