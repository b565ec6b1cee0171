package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrAddPackingUnitCommandIsNotConstructed = errors.New(
	"AddPackingUnitCommand must be created via NewAddPackingUnitCommand constructor",
)

// AddPackingUnitCommand attaches a packing unit to an invoice. The file name
// may be empty; a non-empty one becomes the unit's file reference.
type AddPackingUnitCommand struct { //nolint:recvcheck //using for validation
	packingUnitID kernel.UUID
	invoiceID     kernel.UUID
	fileName      kernel.FileReference

	guard guard.ConstructorGuard
}

func NewAddPackingUnitCommand(packingUnitID, invoiceID kernel.UUID, fileName string) (AddPackingUnitCommand, error) {
	ref, refErr := kernel.NewFileReference(fileName)
	if err := errors.Join(packingUnitID.Validate(), invoiceID.Validate(), refErr); err != nil {
		return AddPackingUnitCommand{}, err
	}

	return AddPackingUnitCommand{
		packingUnitID: packingUnitID,
		invoiceID:     invoiceID,
		fileName:      ref,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c AddPackingUnitCommand) Validate() error {
	return c.guard.Validate(ErrAddPackingUnitCommandIsNotConstructed)
}

func (c AddPackingUnitCommand) PackingUnitID() kernel.UUID     { return c.packingUnitID }
func (c AddPackingUnitCommand) InvoiceID() kernel.UUID         { return c.invoiceID }
func (c AddPackingUnitCommand) FileName() kernel.FileReference { return c.fileName }
