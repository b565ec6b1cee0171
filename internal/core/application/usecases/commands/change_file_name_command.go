package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrChangeFileNameCommandIsNotConstructed = errors.New(
	"ChangeFileNameCommand must be created via NewChangeFileNameCommand constructor",
)

// ChangeFileNameCommand edits the file reference of a packing unit. An empty
// name clears the reference.
type ChangeFileNameCommand struct { //nolint:recvcheck //using for validation
	packingUnitID kernel.UUID
	fileName      kernel.FileReference

	guard guard.ConstructorGuard
}

func NewChangeFileNameCommand(packingUnitID kernel.UUID, fileName string) (ChangeFileNameCommand, error) {
	ref, refErr := kernel.NewFileReference(fileName)
	if err := errors.Join(packingUnitID.Validate(), refErr); err != nil {
		return ChangeFileNameCommand{}, err
	}

	return ChangeFileNameCommand{
		packingUnitID: packingUnitID,
		fileName:      ref,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c ChangeFileNameCommand) Validate() error {
	return c.guard.Validate(ErrChangeFileNameCommandIsNotConstructed)
}

func (c ChangeFileNameCommand) PackingUnitID() kernel.UUID     { return c.packingUnitID }
func (c ChangeFileNameCommand) FileName() kernel.FileReference { return c.fileName }
