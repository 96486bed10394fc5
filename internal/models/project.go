package models

import (
	"fmt"
	"strings"
	"time"
)

// FinalisedSuffix is appended to a project's name when it is finalised
const FinalisedSuffix = " (Finalised)"

// Project is one construction project: a site, three contacts, the fee
// agreement, a deadline and an optional completion date.
//
// The project number and total fee never change after construction. The
// remaining mutable state only changes through the methods below, which the
// write engine calls after the matching store commit.
type Project struct {
	number         int
	name           string
	buildType      string
	erfNumber      int
	address        string
	totalFee       Money
	totalPaid      Money
	deadline       time.Time
	customer       Contact
	contractor     Contact
	architect      Contact
	manager        string
	completionDate *time.Time
}

// ProjectData holds every field of a project. It is the input to NewProject
// and the output of Project.Data.
type ProjectData struct {
	Number         int
	Name           string
	BuildType      string
	ERFNumber      int
	Address        string
	TotalFee       Money
	TotalPaid      Money
	Deadline       time.Time
	Customer       Contact
	Contractor     Contact
	Architect      Contact
	Manager        string
	CompletionDate *time.Time
}

// NewProject builds a project from already validated data
func NewProject(d ProjectData) *Project {
	p := &Project{
		number:     d.Number,
		name:       d.Name,
		buildType:  d.BuildType,
		erfNumber:  d.ERFNumber,
		address:    d.Address,
		totalFee:   d.TotalFee,
		totalPaid:  d.TotalPaid,
		deadline:   CalendarDay(d.Deadline),
		customer:   d.Customer,
		contractor: d.Contractor,
		architect:  d.Architect,
		manager:    d.Manager,
	}
	if d.CompletionDate != nil {
		day := CalendarDay(*d.CompletionDate)
		p.completionDate = &day
	}
	return p
}

// Data returns a copy of every field
func (p *Project) Data() ProjectData {
	d := ProjectData{
		Number:     p.number,
		Name:       p.name,
		BuildType:  p.buildType,
		ERFNumber:  p.erfNumber,
		Address:    p.address,
		TotalFee:   p.totalFee,
		TotalPaid:  p.totalPaid,
		Deadline:   p.deadline,
		Customer:   p.customer,
		Contractor: p.contractor,
		Architect:  p.architect,
		Manager:    p.manager,
	}
	if p.completionDate != nil {
		day := *p.completionDate
		d.CompletionDate = &day
	}
	return d
}

func (p *Project) Number() int { return p.number }
func (p *Project) Name() string { return p.name }
func (p *Project) BuildType() string { return p.buildType }
func (p *Project) ERFNumber() int { return p.erfNumber }
func (p *Project) Address() string { return p.address }
func (p *Project) TotalFee() Money { return p.totalFee }
func (p *Project) TotalPaid() Money { return p.totalPaid }
func (p *Project) Deadline() time.Time { return p.deadline }
func (p *Project) Customer() Contact { return p.customer }
func (p *Project) Contractor() Contact { return p.contractor }
func (p *Project) Architect() Contact { return p.architect }
func (p *Project) Manager() string { return p.manager }

// CompletionDate returns the completion date and whether one is set
func (p *Project) CompletionDate() (time.Time, bool) {
	if p.completionDate == nil {
		return time.Time{}, false
	}
	return *p.completionDate, true
}

// IsFinalized reports whether the project has a completion date
func (p *Project) IsFinalized() bool {
	return p.completionDate != nil
}

// IsOverdue reports whether an open project's deadline falls strictly
// before the calendar day of asOf.
func (p *Project) IsOverdue(asOf time.Time) bool {
	return !p.IsFinalized() && p.deadline.Before(CalendarDay(asOf))
}

// Outstanding returns total fee minus total paid. It is negative when the
// customer has overpaid.
func (p *Project) Outstanding() Money {
	return p.totalFee - p.totalPaid
}

// SetDeadline replaces the deadline
func (p *Project) SetDeadline(deadline time.Time) {
	p.deadline = CalendarDay(deadline)
}

// AddPayment adds amount to the total paid
func (p *Project) AddPayment(amount Money) {
	p.totalPaid += amount
}

// ReplaceContractor swaps in a new contractor contact
func (p *Project) ReplaceContractor(c Contact) error {
	if c.Role() != RoleContractor {
		return fmt.Errorf("%w: contact %q is a %s, not a contractor", ErrInvalidProject, c.Name(), c.Role())
	}
	p.contractor = c
	return nil
}

// Finalize stamps the completion date and renames the project. A project
// can only be finalised once.
func (p *Project) Finalize(completed time.Time, name string) error {
	if p.completionDate != nil {
		return ErrAlreadyFinalized
	}
	day := CalendarDay(completed)
	p.completionDate = &day
	p.name = name
	return nil
}

// FinalisedName returns the name a project takes once finalised
func (p *Project) FinalisedName() string {
	if strings.HasSuffix(p.name, FinalisedSuffix) {
		return p.name
	}
	return p.name + FinalisedSuffix
}

// DeriveProjectName builds the default project name from the building type
// and the customer's surname: "House" + "Jane Doe" gives "House Doe". A
// single-word customer name is used whole.
func DeriveProjectName(buildType, customerName string) string {
	parts := strings.Fields(customerName)
	switch len(parts) {
	case 0:
		return strings.TrimSpace(buildType)
	case 1:
		return strings.TrimSpace(buildType) + " " + parts[0]
	default:
		return strings.TrimSpace(buildType) + " " + parts[1]
	}
}

// ProjectView is the serializable form of a project used by JSON output
type ProjectView struct {
	Number         int         `json:"number"`
	Name           string      `json:"name"`
	BuildType      string      `json:"build_type"`
	ERFNumber      int         `json:"erf_number"`
	Address        string      `json:"address"`
	TotalFee       string      `json:"total_fee"`
	TotalPaid      string      `json:"total_paid"`
	Deadline       string      `json:"deadline"`
	Customer       ContactView `json:"customer"`
	Contractor     ContactView `json:"contractor"`
	Architect      ContactView `json:"architect"`
	Manager        string      `json:"manager"`
	CompletionDate string      `json:"completion_date,omitempty"`
}

// View returns the serializable form of the project
func (p *Project) View() ProjectView {
	v := ProjectView{
		Number:     p.number,
		Name:       p.name,
		BuildType:  p.buildType,
		ERFNumber:  p.erfNumber,
		Address:    p.address,
		TotalFee:   p.totalFee.String(),
		TotalPaid:  p.totalPaid.String(),
		Deadline:   FormatDate(p.deadline),
		Customer:   p.customer.View(),
		Contractor: p.contractor.View(),
		Architect:  p.architect.View(),
		Manager:    p.manager,
	}
	if p.completionDate != nil {
		v.CompletionDate = FormatDate(*p.completionDate)
	}
	return v
}

// GetID returns the project number. The CLI quiet mode prints it.
func (p *Project) GetID() int { return p.number }
