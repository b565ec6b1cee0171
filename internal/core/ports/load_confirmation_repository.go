package ports

import (
	"context"

	"dispatch/internal/core/domain/model/booking"
	"dispatch/internal/core/domain/model/kernel"
)

// LoadConfirmationRepository persists load confirmations and their
// invoice links. At most one active confirmation may carry a file reference;
// Add fails with errs.ErrAlreadyBooked otherwise.
type LoadConfirmationRepository interface {
	Add(ctx context.Context, lc *booking.LoadConfirmation) error
	Update(ctx context.Context, lc *booking.LoadConfirmation) error
	Get(ctx context.Context, id kernel.UUID) (*booking.LoadConfirmation, error)
	GetForUpdate(ctx context.Context, id kernel.UUID) (*booking.LoadConfirmation, error)
	Delete(ctx context.Context, id kernel.UUID) error
}
