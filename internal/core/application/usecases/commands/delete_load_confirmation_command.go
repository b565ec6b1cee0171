package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrDeleteLoadConfirmationCommandIsNotConstructed = errors.New(
	"DeleteLoadConfirmationCommand must be created via NewDeleteLoadConfirmationCommand constructor",
)

type DeleteLoadConfirmationCommand struct { //nolint:recvcheck //using for validation
	loadConfirmationID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteLoadConfirmationCommand(loadConfirmationID kernel.UUID) (DeleteLoadConfirmationCommand, error) {
	if err := loadConfirmationID.Validate(); err != nil {
		return DeleteLoadConfirmationCommand{}, err
	}

	return DeleteLoadConfirmationCommand{
		loadConfirmationID: loadConfirmationID,
		guard:              guard.NewConstructorGuard(),
	}, nil
}

func (c DeleteLoadConfirmationCommand) Validate() error {
	return c.guard.Validate(ErrDeleteLoadConfirmationCommandIsNotConstructed)
}

func (c DeleteLoadConfirmationCommand) LoadConfirmationID() kernel.UUID {
	return c.loadConfirmationID
}
