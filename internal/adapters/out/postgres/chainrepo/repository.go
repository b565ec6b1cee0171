package chainrepo

import (
	"context"
	"errors"

	"dispatch/internal/adapters/out/postgres/pgerr"
	"dispatch/internal/core/domain/model/chain"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormShipmentChainRepository struct {
	db *gorm.DB
}

func NewGormShipmentChainRepository(db *gorm.DB) *GormShipmentChainRepository {
	return &GormShipmentChainRepository{db: db}
}

// Add inserts the chain row. A second booking of the same reference fails on
// the primary key and surfaces as errs.ErrAlreadyBooked.
func (r *GormShipmentChainRepository) Add(ctx context.Context, c *chain.ShipmentChain) error {
	if err := c.Validate(); err != nil {
		return err
	}

	dto := fromDomain(c)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Classify(err)
	}
	return nil
}

func (r *GormShipmentChainRepository) Update(ctx context.Context, c *chain.ShipmentChain) error {
	if err := c.Validate(); err != nil {
		return err
	}

	dto := fromDomain(c)
	result := r.db.WithContext(ctx).
		Model(&ShipmentChainDTO{}).
		Where("file_reference = ?", dto.FileReference).
		Select("status", "load_confirmation_id", "manifest_id", "locked_at").
		Updates(&dto)
	if result.Error != nil {
		return pgerr.Classify(result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("shipment chain", dto.FileReference)
	}
	return nil
}

func (r *GormShipmentChainRepository) GetForUpdate(
	ctx context.Context,
	ref kernel.FileReference,
) (*chain.ShipmentChain, error) {
	if ref.IsEmpty() {
		return nil, errs.NewValueIsRequiredError("fileReference")
	}

	var dto ShipmentChainDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "file_reference = ?", ref.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipment chain", ref.String())
		}
		return nil, pgerr.Classify(err)
	}

	return toDomain(dto)
}

// Delete removes the chain of ref. Locked chains are never deleted.
func (r *GormShipmentChainRepository) Delete(ctx context.Context, ref kernel.FileReference) error {
	result := r.db.WithContext(ctx).
		Where("file_reference = ? AND status <> ?", ref.String(), int(chain.Locked)).
		Delete(&ShipmentChainDTO{})
	if result.Error != nil {
		return pgerr.Classify(result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewWorkflowError(
			errs.ErrReferenceLocked,
			"file reference "+ref.String()+" is not booked or already on a manifest",
		)
	}
	return nil
}
