// Package catalog holds the in-memory project collection for a session and
// answers lookups and listings against it.
package catalog

import (
	"fmt"
	"iter"
	"strconv"
	"strings"
	"time"

	"github.com/poisepms/poise/internal/models"
)

// Catalog is an ordered, number-indexed collection of projects. Order is
// insertion order. It has a single writer: the project service, and only
// after the store has committed.
type Catalog struct {
	projects []*models.Project
	byNumber map[int]*models.Project
}

// New builds a catalog from loaded projects, keeping their order. Duplicate
// project numbers are rejected.
func New(projects []*models.Project) (*Catalog, error) {
	c := &Catalog{
		projects: make([]*models.Project, 0, len(projects)),
		byNumber: make(map[int]*models.Project, len(projects)),
	}
	for _, p := range projects {
		if err := c.Add(p); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Len returns the number of projects
func (c *Catalog) Len() int {
	return len(c.projects)
}

// Contains reports whether a project number is taken
func (c *Catalog) Contains(number int) bool {
	_, ok := c.byNumber[number]
	return ok
}

// Add appends a project
func (c *Catalog) Add(p *models.Project) error {
	if c.Contains(p.Number()) {
		return fmt.Errorf("%w: %d", models.ErrDuplicateProjectNumber, p.Number())
	}
	c.projects = append(c.projects, p)
	c.byNumber[p.Number()] = p
	return nil
}

// ByNumber returns the project with the given number
func (c *Catalog) ByNumber(number int) (*models.Project, bool) {
	p, ok := c.byNumber[number]
	return p, ok
}

// All yields every project in catalog order
func (c *Catalog) All() iter.Seq[*models.Project] {
	return c.filter(func(*models.Project) bool { return true })
}

// FindByNumberOrName resolves a token to a project. A token that parses as
// an integer only ever matches a project number; anything else matches a
// project name case-insensitively, first match in catalog order.
func (c *Catalog) FindByNumberOrName(token string) (*models.Project, error) {
	token = strings.TrimSpace(token)
	if number, err := strconv.Atoi(token); err == nil {
		if p, ok := c.byNumber[number]; ok {
			return p, nil
		}
		return nil, fmt.Errorf("%w: no project number %d", models.ErrNotFound, number)
	}

	for _, p := range c.projects {
		if strings.EqualFold(p.Name(), token) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: no project named %q", models.ErrNotFound, token)
}

// FindForEdit resolves a token like FindByNumberOrName but only returns open
// projects. When every match is finalised it returns ErrAlreadyFinalized.
func (c *Catalog) FindForEdit(token string) (*models.Project, error) {
	token = strings.TrimSpace(token)
	if _, err := strconv.Atoi(token); err == nil {
		p, err := c.FindByNumberOrName(token)
		if err != nil {
			return nil, err
		}
		if p.IsFinalized() {
			return nil, fmt.Errorf("%w: project %d", models.ErrAlreadyFinalized, p.Number())
		}
		return p, nil
	}

	var finalised *models.Project
	for _, p := range c.projects {
		if !strings.EqualFold(p.Name(), token) {
			continue
		}
		if !p.IsFinalized() {
			return p, nil
		}
		if finalised == nil {
			finalised = p
		}
	}
	if finalised != nil {
		return nil, fmt.Errorf("%w: project %d", models.ErrAlreadyFinalized, finalised.Number())
	}
	return nil, fmt.Errorf("%w: no project named %q", models.ErrNotFound, token)
}

// Incomplete yields projects without a completion date, in catalog order
func (c *Catalog) Incomplete() iter.Seq[*models.Project] {
	return c.filter(func(p *models.Project) bool { return !p.IsFinalized() })
}

// Overdue yields incomplete projects whose deadline is strictly before the
// calendar day of asOf, in catalog order.
func (c *Catalog) Overdue(asOf time.Time) iter.Seq[*models.Project] {
	return c.filter(func(p *models.Project) bool { return p.IsOverdue(asOf) })
}

// filter walks the live slice on every iteration, so a sequence can be
// ranged over repeatedly and reflects later additions.
func (c *Catalog) filter(keep func(*models.Project) bool) iter.Seq[*models.Project] {
	return func(yield func(*models.Project) bool) {
		for _, p := range c.projects {
			if keep(p) && !yield(p) {
				return
			}
		}
	}
}
