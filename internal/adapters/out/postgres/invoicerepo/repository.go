package invoicerepo

import (
	"context"
	"errors"
	"fmt"

	"dispatch/internal/adapters/out/postgres/pgerr"
	"dispatch/internal/core/domain/model/invoice"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInvoiceRepository implements ports.InvoiceRepository using GORM.
type GormInvoiceRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormInvoiceRepository(db *gorm.DB, tracker aggregateTracker) *GormInvoiceRepository {
	return &GormInvoiceRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormInvoiceRepository) Add(ctx context.Context, aggregate *invoice.Invoice) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Classify(err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes every column when the stored version still matches the
// aggregate and bumps the stored version by one.
func (r *GormInvoiceRepository) Update(ctx context.Context, aggregate *invoice.Invoice) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = aggregate.Version() + 1

	result := r.db.WithContext(ctx).
		Model(&InvoiceDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Select("*").
		Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return pgerr.Classify(result.Error)
	}

	if result.RowsAffected == 0 {
		return r.explainMissedUpdate(ctx, aggregate)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormInvoiceRepository) explainMissedUpdate(ctx context.Context, aggregate *invoice.Invoice) error {
	var stored struct{ Version int }
	err := r.db.WithContext(ctx).
		Model(&InvoiceDTO{}).
		Select("version").
		Where("id = ?", aggregate.ID().Bytes()).
		Take(&stored).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError("invoice", aggregate.ID().String())
	}
	if err != nil {
		return pgerr.Classify(err)
	}

	return errs.NewWorkflowError(
		errs.ErrConcurrentModification,
		fmt.Sprintf("invoice %s was modified: expected version %d, found %d",
			aggregate.Number(), aggregate.Version(), stored.Version),
	)
}

func (r *GormInvoiceRepository) Get(ctx context.Context, id kernel.UUID) (*invoice.Invoice, error) {
	return r.get(ctx, r.db.WithContext(ctx), id)
}

// GetForUpdate holds FOR UPDATE on the row until the transaction ends.
func (r *GormInvoiceRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*invoice.Invoice, error) {
	return r.get(ctx, r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormInvoiceRepository) get(_ context.Context, db *gorm.DB, id kernel.UUID) (*invoice.Invoice, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto InvoiceDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("invoice", id.String())
		}
		return nil, pgerr.Classify(err)
	}

	return toDomain(dto)
}

// GetManyForUpdate locks rows in id order so concurrent callers never
// deadlock on overlapping invoice sets.
func (r *GormInvoiceRepository) GetManyForUpdate(ctx context.Context, ids []kernel.UUID) ([]*invoice.Invoice, error) {
	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}

	var dtos []InvoiceDTO
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", raw).
		Order("id").
		Find(&dtos).Error; err != nil {
		return nil, pgerr.Classify(err)
	}

	found := make(map[uuid.UUID]*invoice.Invoice, len(dtos))
	for _, dto := range dtos {
		inv, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		found[dto.ID] = inv
	}

	result := make([]*invoice.Invoice, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		inv, ok := found[id.Bytes()]
		if !ok {
			return nil, errs.NewObjectNotFoundError("invoice", id.String())
		}
		if _, dup := seen[id.Bytes()]; dup {
			continue
		}
		seen[id.Bytes()] = struct{}{}
		result = append(result, inv)
	}

	return result, nil
}
