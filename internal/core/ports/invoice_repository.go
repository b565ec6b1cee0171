// Package ports defines the contracts between the dispatch core and its
// adapters: repositories bound to a unit of work, and the external
// collaborators (document store, notifier, manifest numbering).
package ports

import (
	"context"

	"dispatch/internal/core/domain/model/invoice"
	"dispatch/internal/core/domain/model/kernel"
)

// InvoiceRepository persists shipment records.
type InvoiceRepository interface {
	// Add persists a new invoice.
	Add(ctx context.Context, aggregate *invoice.Invoice) error

	// Update writes the invoice if its stored version still equals
	// aggregate.Version() and increments the stored version. A mismatch
	// fails with errs.ErrConcurrentModification.
	Update(ctx context.Context, aggregate *invoice.Invoice) error

	// Get loads an invoice without locking it.
	Get(ctx context.Context, id kernel.UUID) (*invoice.Invoice, error)

	// GetForUpdate loads an invoice and holds a row lock until the
	// transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*invoice.Invoice, error)

	// GetManyForUpdate locks several invoices in id order. Any missing id
	// fails with errs.ErrObjectNotFound.
	GetManyForUpdate(ctx context.Context, ids []kernel.UUID) ([]*invoice.Invoice, error)
}
