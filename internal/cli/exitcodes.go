package cli

import (
	"errors"

	"github.com/poisepms/poise/internal/models"
)

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error reporting
// across all CLI commands.
const (
	// ExitSuccess indicates the command completed successfully.
	// Use for: Normal, successful command execution.
	ExitSuccess = 0

	// ExitError indicates a general error occurred.
	// Use for: the store is unreachable or timed out, config errors,
	// or any error that doesn't fit the specific categories below.
	ExitError = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: Missing required flags, invalid flag combinations,
	// or when the user needs to provide different arguments.
	ExitUsage = 2

	// ExitNotFound indicates a requested resource was not found.
	// Use for: no project matches the given number or name.
	ExitNotFound = 3

	// ExitDataErr indicates invalid or malformed data.
	// Use for: the store rejected a write plan (duplicate key, foreign key
	// violation) and rolled it back.
	ExitDataErr = 4

	// ExitValidation indicates a validation error.
	// Use for: invalid amounts, invalid dates, missing project fields, or an
	// edit attempted on a finalised project.
	ExitValidation = 5
)

// ExitCodeError carries the exit code a failed command should end the process with
type ExitCodeError struct {
	Code int
	Err  error
}

func (e *ExitCodeError) Error() string { return e.Err.Error() }

func (e *ExitCodeError) Unwrap() error { return e.Err }

// Classify maps an error to the machine-readable code printed by the
// formatter and the process exit code.
func Classify(err error) (string, int) {
	switch {
	case err == nil:
		return "", ExitSuccess
	case errors.Is(err, models.ErrNotFound):
		return "PROJECT_NOT_FOUND", ExitNotFound
	case errors.Is(err, models.ErrAlreadyFinalized):
		return "PROJECT_FINALISED", ExitValidation
	case errors.Is(err, models.ErrInvalidAmount):
		return "INVALID_AMOUNT", ExitValidation
	case errors.Is(err, models.ErrInvalidDate):
		return "INVALID_DATE", ExitValidation
	case errors.Is(err, models.ErrInvalidProject):
		return "VALIDATION_ERROR", ExitValidation
	case errors.Is(err, models.ErrStoreUnavailable):
		return "STORE_UNAVAILABLE", ExitError
	case errors.Is(err, models.ErrWriteRejected):
		return "WRITE_REJECTED", ExitDataErr
	default:
		return "ERROR", ExitError
	}
}

// ExitCodeFor returns the process exit code for an error returned by a command
func ExitCodeFor(err error) int {
	var exitErr *ExitCodeError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	_, code := Classify(err)
	return code
}
