package manifestrepo

import (
	"context"

	"dispatch/internal/adapters/out/postgres/pgerr"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/manifest"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GormManifestRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormManifestRepository(db *gorm.DB, tracker aggregateTracker) *GormManifestRepository {
	return &GormManifestRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormManifestRepository) Add(ctx context.Context, m *manifest.Manifest) error {
	if err := m.Validate(); err != nil {
		return err
	}

	dto := fromDomain(m)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Classify(err)
	}

	r.tracker.TrackAggregate(m.ID(), m)
	return nil
}

// InvoicesOnManifest returns, in id order, the subset of ids filed on any manifest.
func (r *GormManifestRepository) InvoicesOnManifest(ctx context.Context, ids []kernel.UUID) ([]kernel.UUID, error) {
	if len(ids) == 0 {
		return []kernel.UUID{}, nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}

	var filed []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&ManifestInvoiceDTO{}).
		Distinct("invoice_id").
		Where("invoice_id IN ?", raw).
		Order("invoice_id").
		Pluck("invoice_id", &filed).Error
	if err != nil {
		return nil, pgerr.Classify(err)
	}

	out := make([]kernel.UUID, 0, len(filed))
	for _, v := range filed {
		id, idErr := kernel.UUIDFromBytes(v[:])
		if idErr != nil {
			return nil, idErr
		}
		out = append(out, id)
	}
	return out, nil
}
