package database

import (
	"database/sql"
	"fmt"

	"github.com/poisepms/poise/internal/models"
)

// InsertSite adds a site row
func InsertSite(erfNumber int, address string) Statement {
	return Statement{
		Label: "insert site",
		Query: `INSERT INTO sites (erf_number, address) VALUES (?, ?)`,
		Args:  []any{erfNumber, address},
	}
}

// InsertContact adds a row to the contact's role table
func InsertContact(c models.Contact) Statement {
	return Statement{
		Label: fmt.Sprintf("insert %s", c.Role().Table()),
		Query: fmt.Sprintf(`INSERT INTO %s (name, phone, email, address) VALUES (?, ?, ?, ?)`, c.Role().Table()),
		Args:  []any{c.Name(), c.Phone(), c.Email(), c.Address()},
	}
}

// DeleteContact removes the contact's row from its role table
func DeleteContact(c models.Contact) Statement {
	return Statement{
		Label:      fmt.Sprintf("delete %s", c.Role().Table()),
		Query:      fmt.Sprintf(`DELETE FROM %s WHERE name = ?`, c.Role().Table()),
		Args:       []any{c.Name()},
		MustAffect: true,
	}
}

// InsertProject adds the project row. Its site and contacts must already exist.
func InsertProject(d models.ProjectData) Statement {
	var completion sql.NullString
	if d.CompletionDate != nil {
		completion = sql.NullString{String: models.FormatDate(*d.CompletionDate), Valid: true}
	}
	return Statement{
		Label: "insert projects",
		Query: `INSERT INTO projects (
			number, name, build_type, erf_number, total_fee, total_paid, deadline,
			customer_name, contractor_name, architect_name, manager, completion_date
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		Args: []any{
			d.Number, d.Name, d.BuildType, d.ERFNumber,
			d.TotalFee.Cents(), d.TotalPaid.Cents(), models.FormatDate(d.Deadline),
			d.Customer.Name(), d.Contractor.Name(), d.Architect.Name(),
			d.Manager, completion,
		},
	}
}

// UpdateDeadline stores the deadline text as given
func UpdateDeadline(number int, deadline string) Statement {
	return Statement{
		Label:      "update deadline",
		Query:      `UPDATE projects SET deadline = ? WHERE number = ?`,
		Args:       []any{deadline, number},
		MustAffect: true,
	}
}

// UpdateTotalPaid stores a new running total
func UpdateTotalPaid(number int, totalPaid models.Money) Statement {
	return Statement{
		Label:      "update total paid",
		Query:      `UPDATE projects SET total_paid = ? WHERE number = ?`,
		Args:       []any{totalPaid.Cents(), number},
		MustAffect: true,
	}
}

// UpdateContractorRef points the project at another contractor row
func UpdateContractorRef(number int, contractorName string) Statement {
	return Statement{
		Label:      "update contractor reference",
		Query:      `UPDATE projects SET contractor_name = ? WHERE number = ?`,
		Args:       []any{contractorName, number},
		MustAffect: true,
	}
}

// FinalizeProject stamps the completion date and the new name in one update
func FinalizeProject(number int, completionDate, name string) Statement {
	return Statement{
		Label:      "finalise project",
		Query:      `UPDATE projects SET completion_date = ?, name = ? WHERE number = ? AND completion_date IS NULL`,
		Args:       []any{completionDate, name, number},
		MustAffect: true,
	}
}

// CreateProjectStatements orders the inserts for a new project so that every
// foreign key the project row holds already points at a row:
// site, customer, contractor, architect, then the project.
func CreateProjectStatements(d models.ProjectData) []Statement {
	return []Statement{
		InsertSite(d.ERFNumber, d.Address),
		InsertContact(d.Customer),
		InsertContact(d.Contractor),
		InsertContact(d.Architect),
		InsertProject(d),
	}
}

// ReplaceContractorStatements swaps a project's contractor. The new row is
// inserted and referenced before the old row is deleted so the project's
// foreign key never dangles.
func ReplaceContractorStatements(number int, current, replacement models.Contact) []Statement {
	return []Statement{
		InsertContact(replacement),
		UpdateContractorRef(number, replacement.Name()),
		DeleteContact(current),
	}
}
