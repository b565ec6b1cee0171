// Package postgres provides the GORM-based Unit of Work for the dispatch
// service. One unit of work is one PostgreSQL transaction; every repository
// obtained from it after Begin runs inside that transaction, so row locks
// taken by GetForUpdate or FindHolders stay held until Commit or Rollback.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	inv, err := uow.InvoiceRepository().GetForUpdate(ctx, id)
//	if err != nil {
//	    return err
//	}
//	// mutate inv, append the activity entry ...
//
//	return uow.Commit(ctx)
//
// Concurrency Considerations:
//   - Each UnitOfWork instance owns one transaction and must not be shared
//     between goroutines
//   - Locks are taken in a fixed order (invoices, chain row, packing units)
//     to keep deadlocks rare; the ones PostgreSQL still detects surface as
//     errs.ErrConcurrentModification
package postgres

import (
	"context"

	"dispatch/internal/adapters/out/postgres/activityrepo"
	"dispatch/internal/adapters/out/postgres/bookingrepo"
	"dispatch/internal/adapters/out/postgres/chainrepo"
	"dispatch/internal/adapters/out/postgres/invoicerepo"
	"dispatch/internal/adapters/out/postgres/manifestrepo"
	"dispatch/internal/adapters/out/postgres/packingrepo"
	"dispatch/internal/adapters/out/postgres/pgerr"
	"dispatch/internal/adapters/out/postgres/transportrepo"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate written during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances over one connection pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a fresh unit of work. The concrete type is returned so the
// composition root can hand it out under each narrower handler interface.
func (f *GormUnitOfWorkFactory) Create() *GormUnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

var _ ports.UnitOfWork = (*GormUnitOfWork)(nil)

// GormUnitOfWork coordinates one database transaction and tracks the
// aggregates written through its repositories.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin opens the transaction. Calling it twice is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return pgerr.Classify(tx.Error)
	}

	uow.tx = tx
	return nil
}

// Commit makes the changes permanent. Serialization failures detected at
// commit time are reported as errs.ErrConcurrentModification.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return pgerr.Classify(err)
}

// Rollback discards the transaction. After a successful Commit it returns
// gorm.ErrInvalidTransaction, which deferred rollbacks ignore.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) InvoiceRepository() ports.InvoiceRepository {
	return invoicerepo.NewGormInvoiceRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) PackingUnitRepository() ports.PackingUnitRepository {
	return packingrepo.NewGormPackingUnitRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) ShipmentChainRepository() ports.ShipmentChainRepository {
	return chainrepo.NewGormShipmentChainRepository(uow.conn())
}

func (uow *GormUnitOfWork) TransportRequestRepository() ports.TransportRequestRepository {
	return transportrepo.NewGormTransportRequestRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) LoadConfirmationRepository() ports.LoadConfirmationRepository {
	return bookingrepo.NewGormLoadConfirmationRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) ManifestRepository() ports.ManifestRepository {
	return manifestrepo.NewGormManifestRepository(uow.conn(), uow)
}

// ActivityLogRepository appends to the audit trail inside the same
// transaction as the change being recorded.
func (uow *GormUnitOfWork) ActivityLogRepository() ports.ActivityLogRepository {
	return activityrepo.NewGormActivityLogRepository(uow.conn())
}

// TrackAggregate registers an aggregate written within this unit of work.
// Repositories call it after a successful Add or Update.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// TrackedAggregates returns the ids of aggregates written so far.
func (uow *GormUnitOfWork) TrackedAggregates() []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(uow.trackedAggregates))
	for _, t := range uow.trackedAggregates {
		ids = append(ids, t.ID)
	}
	return ids
}
