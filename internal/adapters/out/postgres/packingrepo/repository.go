package packingrepo

import (
	"context"
	"errors"

	"dispatch/internal/adapters/out/postgres/pgerr"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/packing"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormPackingUnitRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormPackingUnitRepository(db *gorm.DB, tracker aggregateTracker) *GormPackingUnitRepository {
	return &GormPackingUnitRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormPackingUnitRepository) Add(ctx context.Context, unit *packing.PackingUnit) error {
	if err := unit.Validate(); err != nil {
		return err
	}

	dto := fromDomain(unit)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Classify(err)
	}

	r.tracker.TrackAggregate(unit.ID(), unit)
	return nil
}

func (r *GormPackingUnitRepository) Update(ctx context.Context, unit *packing.PackingUnit) error {
	if err := unit.Validate(); err != nil {
		return err
	}

	dto := fromDomain(unit)
	result := r.db.WithContext(ctx).
		Model(&PackingUnitDTO{}).
		Where("id = ?", dto.ID).
		Select("file_name").
		Updates(&dto)
	if result.Error != nil {
		return pgerr.Classify(result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("packing unit", unit.ID().String())
	}

	r.tracker.TrackAggregate(unit.ID(), unit)
	return nil
}

func (r *GormPackingUnitRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*packing.PackingUnit, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PackingUnitDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("packing unit", id.String())
		}
		return nil, pgerr.Classify(err)
	}

	return toDomain(dto)
}

// FindHolders locks and returns the units whose file name equals ref.
func (r *GormPackingUnitRepository) FindHolders(ctx context.Context, ref kernel.FileReference) ([]kernel.UUID, error) {
	if ref.IsEmpty() {
		return nil, nil
	}

	var raw []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&PackingUnitDTO{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("file_name = ?", ref.String()).
		Order("id").
		Pluck("id", &raw).Error
	if err != nil {
		return nil, pgerr.Classify(err)
	}

	ids := make([]kernel.UUID, 0, len(raw))
	for _, v := range raw {
		id, idErr := kernel.UUIDFromBytes(v[:])
		if idErr != nil {
			return nil, idErr
		}
		ids = append(ids, id)
	}

	return ids, nil
}

func (r *GormPackingUnitRepository) ListByInvoices(
	ctx context.Context,
	invoiceIDs []kernel.UUID,
) ([]*packing.PackingUnit, error) {
	if len(invoiceIDs) == 0 {
		return []*packing.PackingUnit{}, nil
	}

	raw := make([]uuid.UUID, 0, len(invoiceIDs))
	for _, id := range invoiceIDs {
		raw = append(raw, id.Bytes())
	}

	var dtos []PackingUnitDTO
	if err := r.db.WithContext(ctx).
		Where("invoice_id IN ?", raw).
		Order("invoice_id, id").
		Find(&dtos).Error; err != nil {
		return nil, pgerr.Classify(err)
	}

	units := make([]*packing.PackingUnit, 0, len(dtos))
	for _, dto := range dtos {
		u, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		units = append(units, u)
	}

	return units, nil
}
