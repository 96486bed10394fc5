package project

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/poisepms/poise/internal/catalog"
	"github.com/poisepms/poise/internal/database"
	"github.com/poisepms/poise/internal/metrics"
	"github.com/poisepms/poise/internal/models"
)

// Service defines all project workflows. Every mutation goes through one
// write plan: the store commits first, the catalog changes second.
type Service interface {
	// Read operations
	Load(ctx context.Context) error
	Catalog() *catalog.Catalog
	FindProject(token string) (*models.Project, error)
	FindForEdit(token string) (*models.Project, error)
	ListIncomplete() iter.Seq[*models.Project]
	ListOverdue(asOf time.Time) iter.Seq[*models.Project]

	// Write operations
	CreateProject(ctx context.Context, req CreateProjectRequest) (*models.Project, error)
	UpdateDeadline(ctx context.Context, p *models.Project, deadline string) error
	ApplyPayment(ctx context.Context, p *models.Project, amount string) error
	ReplaceContractor(ctx context.Context, p *models.Project, req ContactRequest) error
	Finalize(ctx context.Context, p *models.Project) (*FinalizeResult, error)
}

// ContactRequest holds raw contact fields as entered
type ContactRequest struct {
	Name    string
	Phone   string
	Email   string
	Address string
}

// CreateProjectRequest encapsulates data for creating a project. Money and
// dates are raw strings and are parsed during validation.
type CreateProjectRequest struct {
	Number     int
	Name       string // derived from the building type and customer when blank
	BuildType  string
	ERFNumber  int
	Address    string
	TotalFee   string
	TotalPaid  string
	Deadline   string
	Customer   ContactRequest
	Contractor ContactRequest
	Architect  ContactRequest
	Manager    string
}

// FinalizeResult reports the outcome of finalising a project
type FinalizeResult struct {
	Project *models.Project
	// AmountDue is the outstanding balance. Zero when nothing is owed.
	AmountDue models.Money
}

// HasInvoice reports whether the customer still owes money
func (r *FinalizeResult) HasInvoice() bool {
	return r.AmountDue.IsPositive()
}

// store is the persistence surface the service needs.
// This interface is private to the service layer
type store interface {
	Execute(ctx context.Context, plan database.WritePlan) error
	LoadProjects(ctx context.Context) ([]*models.Project, error)
}

// Option configures the service
type Option func(*service)

// WithClock sets the source of "today" for finalisation
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the service logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics reports the catalog size to m
func WithMetrics(m *metrics.Recorder) Option {
	return func(s *service) {
		s.metrics = m
	}
}

// service implements Service interface with a private store
type service struct {
	store   store
	catalog *catalog.Catalog
	now     func() time.Time
	logger  *slog.Logger
	metrics *metrics.Recorder
}

// NewService creates a project service with an empty catalog. Call Load to
// hydrate it from the store.
func NewService(st store, opts ...Option) Service {
	empty, _ := catalog.New(nil)
	s := &service{
		store:   st,
		catalog: empty,
		now:     time.Now,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the catalog with the store's contents. On failure the
// current catalog is kept.
func (s *service) Load(ctx context.Context) error {
	projects, err := s.store.LoadProjects(ctx)
	if err != nil {
		return err
	}
	c, err := catalog.New(projects)
	if err != nil {
		return fmt.Errorf("%w: %w", models.ErrStoreUnavailable, err)
	}
	s.catalog = c
	s.metrics.SetCatalogSize(c.Len())
	s.logger.Debug("catalog loaded", "projects", c.Len())
	return nil
}

// Catalog returns the in-memory catalog for read access
func (s *service) Catalog() *catalog.Catalog {
	return s.catalog
}

// FindProject resolves a token without the edit restriction
func (s *service) FindProject(token string) (*models.Project, error) {
	return s.catalog.FindByNumberOrName(token)
}

// FindForEdit resolves a token to an open project
func (s *service) FindForEdit(token string) (*models.Project, error) {
	return s.catalog.FindForEdit(token)
}

// ListIncomplete yields open projects in catalog order
func (s *service) ListIncomplete() iter.Seq[*models.Project] {
	return s.catalog.Incomplete()
}

// ListOverdue yields open projects past their deadline as of asOf
func (s *service) ListOverdue(asOf time.Time) iter.Seq[*models.Project] {
	return s.catalog.Overdue(asOf)
}

// CreateProject validates the request, persists the site, the three
// contacts and the project in dependency order, and appends the project to
// the catalog once the store has committed.
func (s *service) CreateProject(ctx context.Context, req CreateProjectRequest) (*models.Project, error) {
	data, err := s.validateCreateProject(req)
	if err != nil {
		return nil, err
	}

	project := models.NewProject(data)
	plan := database.WritePlan{
		Label:      "create project",
		Statements: database.CreateProjectStatements(project.Data()),
		Apply: func() {
			// validated against the catalog above and single-writer, so Add cannot collide
			_ = s.catalog.Add(project)
			s.metrics.SetCatalogSize(s.catalog.Len())
		},
	}
	if err := s.store.Execute(ctx, plan); err != nil {
		return nil, fmt.Errorf("failed to create project %d: %w", data.Number, err)
	}

	s.logger.Info("project created", "number", project.Number(), "name", project.Name())
	return project, nil
}

// UpdateDeadline stores the new deadline text as entered and the parsed day
// in memory.
func (s *service) UpdateDeadline(ctx context.Context, p *models.Project, deadline string) error {
	if err := ensureOpen(p); err != nil {
		return err
	}
	day, err := models.ParseDate(deadline)
	if err != nil {
		return err
	}

	plan := database.WritePlan{
		Label:      "update deadline",
		Statements: []database.Statement{database.UpdateDeadline(p.Number(), strings.TrimSpace(deadline))},
		Apply:      func() { p.SetDeadline(day) },
	}
	if err := s.store.Execute(ctx, plan); err != nil {
		return fmt.Errorf("failed to update deadline of project %d: %w", p.Number(), err)
	}

	s.logger.Info("deadline updated", "number", p.Number(), "deadline", models.FormatDate(day))
	return nil
}

// ApplyPayment adds a positive amount to the project's total paid. There is
// no upper bound: overpayment is allowed.
func (s *service) ApplyPayment(ctx context.Context, p *models.Project, amount string) error {
	if err := ensureOpen(p); err != nil {
		return err
	}
	payment, err := models.ParseMoney(amount)
	if err != nil {
		return err
	}
	if !payment.IsPositive() {
		return ErrNonPositivePayment
	}
	if p.TotalPaid() > models.Money(math.MaxInt64)-payment {
		return ErrPaymentOverflow
	}

	total := p.TotalPaid() + payment
	plan := database.WritePlan{
		Label:      "apply payment",
		Statements: []database.Statement{database.UpdateTotalPaid(p.Number(), total)},
		Apply:      func() { p.AddPayment(payment) },
	}
	if err := s.store.Execute(ctx, plan); err != nil {
		return fmt.Errorf("failed to apply payment to project %d: %w", p.Number(), err)
	}

	s.logger.Info("payment applied", "number", p.Number(), "amount", payment.String(), "total_paid", total.String())
	return nil
}

// ReplaceContractor inserts the new contractor, repoints the project at it
// and deletes the old contractor row, in that order.
func (s *service) ReplaceContractor(ctx context.Context, p *models.Project, req ContactRequest) error {
	if err := ensureOpen(p); err != nil {
		return err
	}
	replacement, err := models.NewContact(models.RoleContractor, req.Name, req.Phone, req.Email, req.Address)
	if err != nil {
		return err
	}

	current := p.Contractor()
	plan := database.WritePlan{
		Label:      "replace contractor",
		Statements: database.ReplaceContractorStatements(p.Number(), current, replacement),
		Apply: func() {
			// role checked by NewContact above
			_ = p.ReplaceContractor(replacement)
		},
	}
	if err := s.store.Execute(ctx, plan); err != nil {
		return fmt.Errorf("failed to replace contractor of project %d: %w", p.Number(), err)
	}

	s.logger.Info("contractor replaced", "number", p.Number(), "old", current.Name(), "new", replacement.Name())
	return nil
}

// Finalize stamps today's date as the completion date and renames the
// project in one write plan. The balance owed, if any, is reported back as
// the invoice amount.
func (s *service) Finalize(ctx context.Context, p *models.Project) (*FinalizeResult, error) {
	if err := ensureOpen(p); err != nil {
		return nil, err
	}

	today := models.CalendarDay(s.now())
	name := p.FinalisedName()
	outstanding := p.Outstanding()

	plan := database.WritePlan{
		Label:      "finalise project",
		Statements: []database.Statement{database.FinalizeProject(p.Number(), models.FormatDate(today), name)},
		Apply: func() {
			// ensureOpen passed and nothing else writes between it and the commit
			_ = p.Finalize(today, name)
		},
	}
	if err := s.store.Execute(ctx, plan); err != nil {
		return nil, fmt.Errorf("failed to finalise project %d: %w", p.Number(), err)
	}

	result := &FinalizeResult{Project: p}
	if outstanding.IsPositive() {
		result.AmountDue = outstanding
	}

	s.logger.Info("project finalised", "number", p.Number(), "completed", models.FormatDate(today), "amount_due", result.AmountDue.String())
	return result, nil
}

func ensureOpen(p *models.Project) error {
	if p.IsFinalized() {
		return fmt.Errorf("%w: project %d", models.ErrAlreadyFinalized, p.Number())
	}
	return nil
}

// validateCreateProject checks every field before anything reaches the store
func (s *service) validateCreateProject(req CreateProjectRequest) (models.ProjectData, error) {
	var d models.ProjectData

	if req.Number <= 0 {
		return d, ErrInvalidProjectNumber
	}
	if s.catalog.Contains(req.Number) {
		return d, fmt.Errorf("%w: %d", models.ErrDuplicateProjectNumber, req.Number)
	}
	if req.ERFNumber <= 0 {
		return d, ErrInvalidERFNumber
	}

	d.Number = req.Number
	d.ERFNumber = req.ERFNumber
	d.BuildType = strings.TrimSpace(req.BuildType)
	d.Address = strings.TrimSpace(req.Address)
	d.Manager = strings.TrimSpace(req.Manager)

	if d.BuildType == "" {
		return d, ErrEmptyBuildType
	}
	if d.Address == "" {
		return d, ErrEmptyAddress
	}
	if d.Manager == "" {
		return d, ErrEmptyManager
	}

	fee, err := models.ParseMoney(req.TotalFee)
	if err != nil {
		return d, err
	}
	if !fee.IsPositive() {
		return d, ErrNonPositiveFee
	}
	d.TotalFee = fee

	paid := models.Money(0)
	if strings.TrimSpace(req.TotalPaid) != "" {
		paid, err = models.ParseMoney(req.TotalPaid)
		if err != nil {
			return d, err
		}
	}
	if paid < 0 {
		return d, ErrNegativePaid
	}
	d.TotalPaid = paid

	d.Deadline, err = models.ParseDate(req.Deadline)
	if err != nil {
		return d, err
	}

	contacts := []struct {
		role models.Role
		req  ContactRequest
		dst  *models.Contact
	}{
		{models.RoleCustomer, req.Customer, &d.Customer},
		{models.RoleContractor, req.Contractor, &d.Contractor},
		{models.RoleArchitect, req.Architect, &d.Architect},
	}
	for _, c := range contacts {
		contact, err := models.NewContact(c.role, c.req.Name, c.req.Phone, c.req.Email, c.req.Address)
		if err != nil {
			return d, err
		}
		*c.dst = contact
	}

	d.Name = strings.TrimSpace(req.Name)
	if d.Name == "" {
		d.Name = models.DeriveProjectName(d.BuildType, d.Customer.Name())
	}

	return d, nil
}
