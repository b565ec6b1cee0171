package bookingrepo

import (
	"context"
	"errors"

	"dispatch/internal/adapters/out/postgres/pgerr"
	"dispatch/internal/core/domain/model/booking"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormLoadConfirmationRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormLoadConfirmationRepository(db *gorm.DB, tracker aggregateTracker) *GormLoadConfirmationRepository {
	return &GormLoadConfirmationRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves the confirmation and its invoice links. A second active
// confirmation on the same file reference fails with errs.ErrAlreadyBooked.
func (r *GormLoadConfirmationRepository) Add(ctx context.Context, lc *booking.LoadConfirmation) error {
	if err := lc.Validate(); err != nil {
		return err
	}

	dto := fromDomain(lc)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Classify(err)
	}

	r.tracker.TrackAggregate(lc.ID(), lc)
	return nil
}

// Update writes the confirmation status. Vehicle and invoices are fixed once booked.
func (r *GormLoadConfirmationRepository) Update(ctx context.Context, lc *booking.LoadConfirmation) error {
	if err := lc.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&LoadConfirmationDTO{}).
		Where("id = ?", lc.ID().Bytes()).
		Update("status", int(lc.Status()))
	if result.Error != nil {
		return pgerr.Classify(result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("load confirmation", lc.ID().String())
	}

	r.tracker.TrackAggregate(lc.ID(), lc)
	return nil
}

func (r *GormLoadConfirmationRepository) Get(ctx context.Context, id kernel.UUID) (*booking.LoadConfirmation, error) {
	return r.get(ctx, id, false)
}

func (r *GormLoadConfirmationRepository) GetForUpdate(
	ctx context.Context,
	id kernel.UUID,
) (*booking.LoadConfirmation, error) {
	return r.get(ctx, id, true)
}

func (r *GormLoadConfirmationRepository) get(
	ctx context.Context,
	id kernel.UUID,
	lock bool,
) (*booking.LoadConfirmation, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx)
	if lock {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var dto LoadConfirmationDTO
	err := query.
		Preload("Invoices", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("load confirmation", id.String())
		}
		return nil, pgerr.Classify(err)
	}

	return toDomain(dto)
}

// Delete removes the confirmation; its invoice links cascade.
func (r *GormLoadConfirmationRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&LoadConfirmationDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return pgerr.Classify(result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("load confirmation", id.String())
	}
	return nil
}
