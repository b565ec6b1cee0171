package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrCreateManifestCommandIsNotConstructed = errors.New(
	"CreateManifestCommand must be created via NewCreateManifestCommand constructor",
)

// CreateManifestCommand files the customs manifest for a load confirmation.
// Filing is irreversible: the file reference is locked forever.
type CreateManifestCommand struct { //nolint:recvcheck //using for validation
	manifestID         kernel.UUID
	loadConfirmationID kernel.UUID

	guard guard.ConstructorGuard
}

func NewCreateManifestCommand(manifestID, loadConfirmationID kernel.UUID) (CreateManifestCommand, error) {
	if err := errors.Join(manifestID.Validate(), loadConfirmationID.Validate()); err != nil {
		return CreateManifestCommand{}, err
	}

	return CreateManifestCommand{
		manifestID:         manifestID,
		loadConfirmationID: loadConfirmationID,
		guard:              guard.NewConstructorGuard(),
	}, nil
}

func (c CreateManifestCommand) Validate() error {
	return c.guard.Validate(ErrCreateManifestCommandIsNotConstructed)
}

func (c CreateManifestCommand) ManifestID() kernel.UUID {
	return c.manifestID
}

func (c CreateManifestCommand) LoadConfirmationID() kernel.UUID {
	return c.loadConfirmationID
}
