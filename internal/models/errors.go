package models

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by the store, the catalog and the services.
// Callers branch on these with errors.Is.
var (
	// ErrStoreUnavailable means the connection or a query failed for reasons
	// unrelated to the data. The session cannot continue without reconnecting.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrWriteRejected means a statement in a write plan failed. The plan has
	// been rolled back and nothing in memory changed.
	ErrWriteRejected = errors.New("write rejected")

	// ErrNotFound means no project matched the lookup token
	ErrNotFound = errors.New("project not found")

	// ErrAlreadyFinalized means the project is complete and can no longer be edited
	ErrAlreadyFinalized = errors.New("project is already finalised")

	// ErrInvalidAmount means a payment or fee was not a positive currency value
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidDate means a date did not parse as YYYY-MM-DD
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidProject means a create request failed field validation
	ErrInvalidProject = errors.New("invalid project")
)

// ErrDuplicateProjectNumber is returned when a create request reuses a
// project number already in the catalog. It is a WriteRejected condition
// caught before any statement reaches the store.
var ErrDuplicateProjectNumber = fmt.Errorf("%w: project number already exists", ErrWriteRejected)
