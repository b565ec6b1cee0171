package postgres

import (
	"context"
	"fmt"

	"dispatch/internal/adapters/out/postgres/pgerr"
	"dispatch/internal/core/ports"

	"gorm.io/gorm"
)

var _ ports.ManifestNumberSource = (*SequenceManifestNumbers)(nil)

// SequenceManifestNumbers hands out manifest numbers from manifest_number_seq.
// Numbers are never reused, so a rolled back filing leaves a gap.
type SequenceManifestNumbers struct {
	db *gorm.DB
}

func NewSequenceManifestNumbers(db *gorm.DB) *SequenceManifestNumbers {
	return &SequenceManifestNumbers{db: db}
}

func (s *SequenceManifestNumbers) NextManifestNumber(ctx context.Context) (string, error) {
	var next int64
	if err := s.db.WithContext(ctx).Raw("SELECT nextval('manifest_number_seq')").Scan(&next).Error; err != nil {
		return "", pgerr.Classify(err)
	}
	return fmt.Sprintf("MF-%06d", next), nil
}
