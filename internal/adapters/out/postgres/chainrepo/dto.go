// Package chainrepo persists the file reference registry. The file reference
// is the primary key, so two transactions can never book the same value.
package chainrepo

import (
	"time"

	"dispatch/internal/core/domain/model/chain"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type ShipmentChainDTO struct {
	FileReference      string     `gorm:"type:varchar(100);primaryKey"`
	Status             int        `gorm:"type:smallint;not null"`
	LoadConfirmationID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	ManifestID         *uuid.UUID `gorm:"type:uuid"`
	BookedAt           time.Time  `gorm:"not null"`
	LockedAt           *time.Time
}

func (ShipmentChainDTO) TableName() string {
	return "shipment_chains"
}

func fromDomain(c *chain.ShipmentChain) ShipmentChainDTO {
	var manifestID *uuid.UUID
	if id := c.ManifestID(); id != nil {
		raw := id.Bytes()
		manifestID = &raw
	}

	return ShipmentChainDTO{
		FileReference:      c.FileReference().String(),
		Status:             int(c.Status()),
		LoadConfirmationID: c.LoadConfirmationID().Bytes(),
		ManifestID:         manifestID,
		BookedAt:           c.BookedAt(),
		LockedAt:           c.LockedAt(),
	}
}

func toDomain(dto ShipmentChainDTO) (*chain.ShipmentChain, error) {
	ref, err := kernel.NewFileReference(dto.FileReference)
	if err != nil {
		return nil, err
	}

	lcID, err := kernel.UUIDFromBytes(dto.LoadConfirmationID[:])
	if err != nil {
		return nil, err
	}

	var manifestID *kernel.UUID
	if dto.ManifestID != nil {
		id, idErr := kernel.UUIDFromBytes((*dto.ManifestID)[:])
		if idErr != nil {
			return nil, idErr
		}
		manifestID = &id
	}

	return chain.RestoreShipmentChain(ref, chain.Status(dto.Status), lcID, manifestID, dto.BookedAt.UTC(), dto.LockedAt)
}
