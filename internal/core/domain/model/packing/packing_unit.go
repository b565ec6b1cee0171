// Package packing provides the PackingUnit entity, the carrier of the mutable
// file name that correlates a shipment with its transport paperwork.
package packing

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrPackingUnitIsNotConstructed = errors.New("PackingUnit must be created via NewPackingUnit or RestorePackingUnit")

// PackingUnit belongs to exactly one invoice. Its file name may be empty.
// Whether a given file name may be assigned is decided by the reference
// resolver at write time, not by the entity.
type PackingUnit struct {
	id        kernel.UUID
	invoiceID kernel.UUID
	fileName  kernel.FileReference
	guard     guard.ConstructorGuard
}

func NewPackingUnit(id, invoiceID kernel.UUID, fileName kernel.FileReference) (*PackingUnit, error) {
	return RestorePackingUnit(id, invoiceID, fileName)
}

func RestorePackingUnit(id, invoiceID kernel.UUID, fileName kernel.FileReference) (*PackingUnit, error) {
	if err := errors.Join(id.Validate(), invoiceID.Validate()); err != nil {
		return nil, err
	}
	return &PackingUnit{
		id:        id,
		invoiceID: invoiceID,
		fileName:  fileName,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (p *PackingUnit) Validate() error {
	if p == nil {
		return ErrPackingUnitIsNotConstructed
	}
	return p.guard.Validate(ErrPackingUnitIsNotConstructed)
}

func (p *PackingUnit) ID() kernel.UUID                { return p.id }
func (p *PackingUnit) InvoiceID() kernel.UUID         { return p.invoiceID }
func (p *PackingUnit) FileName() kernel.FileReference { return p.fileName }

// ChangeFileName replaces the file name and reports whether it actually changed.
func (p *PackingUnit) ChangeFileName(fileName kernel.FileReference) bool {
	if p.fileName.IsEqual(fileName) {
		return false
	}
	p.fileName = fileName
	return true
}
