package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is one business transaction. Repositories returned after Begin
// are bound to the transaction; rows locked through them stay locked until
// Commit or Rollback.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	InvoiceRepository() InvoiceRepository
	PackingUnitRepository() PackingUnitRepository
	ShipmentChainRepository() ShipmentChainRepository
	TransportRequestRepository() TransportRequestRepository
	LoadConfirmationRepository() LoadConfirmationRepository
	ManifestRepository() ManifestRepository
	ActivityLogRepository() ActivityLogRepository
}
