package project

import (
	"fmt"

	"github.com/poisepms/poise/internal/models"
)

// Validation errors for create requests. Each wraps a taxonomy sentinel so
// callers can branch with errors.Is on either.
var (
	ErrInvalidProjectNumber = fmt.Errorf("%w: project number must be a positive integer", models.ErrInvalidProject)
	ErrInvalidERFNumber     = fmt.Errorf("%w: ERF number must be a positive integer", models.ErrInvalidProject)
	ErrEmptyBuildType       = fmt.Errorf("%w: building type cannot be empty", models.ErrInvalidProject)
	ErrEmptyAddress         = fmt.Errorf("%w: address cannot be empty", models.ErrInvalidProject)
	ErrEmptyManager         = fmt.Errorf("%w: project manager cannot be empty", models.ErrInvalidProject)

	ErrNonPositiveFee     = fmt.Errorf("%w: total fee must be greater than zero", models.ErrInvalidAmount)
	ErrNegativePaid       = fmt.Errorf("%w: total paid cannot be negative", models.ErrInvalidAmount)
	ErrNonPositivePayment = fmt.Errorf("%w: payment must be greater than zero", models.ErrInvalidAmount)
	ErrPaymentOverflow    = fmt.Errorf("%w: payment would overflow the total paid", models.ErrInvalidAmount)
)
