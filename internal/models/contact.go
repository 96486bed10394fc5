package models

import (
	"fmt"
	"strings"
)

// Role identifies which contact table a Contact belongs to.
type Role int

const (
	RoleCustomer Role = iota + 1
	RoleContractor
	RoleArchitect
)

// String returns the display name of the role
func (r Role) String() string {
	switch r {
	case RoleCustomer:
		return "Customer"
	case RoleContractor:
		return "Contractor"
	case RoleArchitect:
		return "Architect"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// Table returns the relational table that stores contacts of this role
func (r Role) Table() string {
	switch r {
	case RoleCustomer:
		return "customers"
	case RoleContractor:
		return "contractors"
	case RoleArchitect:
		return "architects"
	default:
		return ""
	}
}

// Valid reports whether r is one of the three known roles
func (r Role) Valid() bool {
	return r >= RoleCustomer && r <= RoleArchitect
}

// Contact is a named party attached to a project. The name is the primary
// key of the role's table, so two contacts with the same role and name are
// the same store row.
//
// Contacts are values: a project replaces its contractor, it never edits one.
type Contact struct {
	role    Role
	name    string
	phone   string
	email   string
	address string
}

// NewContact builds a contact after trimming every field. It fails when the
// role is unknown or any field is blank.
func NewContact(role Role, name, phone, email, address string) (Contact, error) {
	c := Contact{
		role:    role,
		name:    strings.TrimSpace(name),
		phone:   strings.TrimSpace(phone),
		email:   strings.TrimSpace(email),
		address: strings.TrimSpace(address),
	}
	if !role.Valid() {
		return Contact{}, fmt.Errorf("%w: unknown contact role %d", ErrInvalidProject, int(role))
	}
	fields := []struct{ field, value string }{
		{"name", c.name},
		{"phone", c.phone},
		{"email", c.email},
		{"address", c.address},
	}
	for _, f := range fields {
		if f.value == "" {
			return Contact{}, fmt.Errorf("%w: %s %s cannot be empty", ErrInvalidProject, strings.ToLower(role.String()), f.field)
		}
	}
	return c, nil
}

// Role returns the contact's role
func (c Contact) Role() Role { return c.role }

// Name returns the contact's name, which is also its store key
func (c Contact) Name() string { return c.name }

// Phone returns the contact's telephone number
func (c Contact) Phone() string { return c.phone }

// Email returns the contact's e-mail address
func (c Contact) Email() string { return c.email }

// Address returns the contact's physical address
func (c Contact) Address() string { return c.address }

// SameIdentity reports whether both contacts map to the same store row
func (c Contact) SameIdentity(other Contact) bool {
	return c.role == other.role && c.name == other.name
}

// ContactView is the serializable form of a Contact used by JSON output
type ContactView struct {
	Role    string `json:"role"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// View returns the serializable form of the contact
func (c Contact) View() ContactView {
	return ContactView{
		Role:    c.role.String(),
		Name:    c.name,
		Phone:   c.phone,
		Email:   c.email,
		Address: c.address,
	}
}

// HydrateContact rebuilds a contact from a stored row without validation.
// Store rows are trusted to have passed NewContact when they were written.
func HydrateContact(role Role, name, phone, email, address string) Contact {
	return Contact{role: role, name: name, phone: phone, email: email, address: address}
}
