package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/packing"
)

// PackingUnitRepository persists packing units. Non-empty file names are
// unique in storage; a write that would duplicate one fails with
// errs.ErrAlreadyBooked.
type PackingUnitRepository interface {
	Add(ctx context.Context, unit *packing.PackingUnit) error
	Update(ctx context.Context, unit *packing.PackingUnit) error
	GetForUpdate(ctx context.Context, id kernel.UUID) (*packing.PackingUnit, error)

	// FindHolders returns the ids of the packing units carrying ref and
	// locks their rows.
	FindHolders(ctx context.Context, ref kernel.FileReference) ([]kernel.UUID, error)

	// ListByInvoices returns every packing unit owned by the given invoices.
	ListByInvoices(ctx context.Context, invoiceIDs []kernel.UUID) ([]*packing.PackingUnit, error)
}
