// Package packingrepo persists packing units. Non-empty file names are
// unique through the partial index uq_packing_units_file_name.
package packingrepo

import (
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/packing"

	"github.com/google/uuid"
)

type PackingUnitDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	InvoiceID uuid.UUID `gorm:"type:uuid;not null;index"`
	FileName  string    `gorm:"type:varchar(100);not null;default:''"`
}

func (PackingUnitDTO) TableName() string {
	return "packing_units"
}

func fromDomain(unit *packing.PackingUnit) PackingUnitDTO {
	return PackingUnitDTO{
		ID:        unit.ID().Bytes(),
		InvoiceID: unit.InvoiceID().Bytes(),
		FileName:  unit.FileName().String(),
	}
}

func toDomain(dto PackingUnitDTO) (*packing.PackingUnit, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	invoiceID, err := kernel.UUIDFromBytes(dto.InvoiceID[:])
	if err != nil {
		return nil, err
	}

	fileName, err := kernel.NewFileReference(dto.FileName)
	if err != nil {
		return nil, err
	}

	return packing.RestorePackingUnit(id, invoiceID, fileName)
}
