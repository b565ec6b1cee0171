package transportrepo

import (
	"context"
	"errors"

	"dispatch/internal/adapters/out/postgres/pgerr"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/transport"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormTransportRequestRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormTransportRequestRepository(db *gorm.DB, tracker aggregateTracker) *GormTransportRequestRepository {
	return &GormTransportRequestRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves the request together with its invoice links.
func (r *GormTransportRequestRepository) Add(ctx context.Context, request *transport.Request) error {
	if err := request.Validate(); err != nil {
		return err
	}

	dto := fromDomain(request)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Classify(err)
	}

	r.tracker.TrackAggregate(request.ID(), request)
	return nil
}

// Update writes the request row. The invoice links never change after creation.
func (r *GormTransportRequestRepository) Update(ctx context.Context, request *transport.Request) error {
	if err := request.Validate(); err != nil {
		return err
	}

	dto := fromDomain(request)
	result := r.db.WithContext(ctx).
		Model(&TransportRequestDTO{}).
		Where("id = ?", dto.ID).
		Select("status", "load_confirmation_id", "rejection_reason").
		Updates(&dto)
	if result.Error != nil {
		return pgerr.Classify(result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("transport request", request.ID().String())
	}

	r.tracker.TrackAggregate(request.ID(), request)
	return nil
}

func (r *GormTransportRequestRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*transport.Request, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TransportRequestDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Invoices", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("transport request", id.String())
		}
		return nil, pgerr.Classify(err)
	}

	return toDomain(dto)
}
