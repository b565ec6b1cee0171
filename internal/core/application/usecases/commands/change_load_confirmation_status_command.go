package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/booking"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrChangeLoadConfirmationStatusCommandIsNotConstructed = errors.New(
	"ChangeLoadConfirmationStatusCommand must be created via NewChangeLoadConfirmationStatusCommand constructor",
)

// ChangeLoadConfirmationStatusCommand applies a lifecycle action such as
// confirm, dispatch, deliver or cancel to a load confirmation.
type ChangeLoadConfirmationStatusCommand struct { //nolint:recvcheck //using for validation
	loadConfirmationID kernel.UUID
	action             booking.Action

	guard guard.ConstructorGuard
}

func NewChangeLoadConfirmationStatusCommand(
	loadConfirmationID kernel.UUID,
	action string,
) (ChangeLoadConfirmationStatusCommand, error) {
	parsed, actionErr := booking.ParseAction(action)
	if err := errors.Join(loadConfirmationID.Validate(), actionErr); err != nil {
		return ChangeLoadConfirmationStatusCommand{}, err
	}

	return ChangeLoadConfirmationStatusCommand{
		loadConfirmationID: loadConfirmationID,
		action:             parsed,
		guard:              guard.NewConstructorGuard(),
	}, nil
}

func (c ChangeLoadConfirmationStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeLoadConfirmationStatusCommandIsNotConstructed)
}

func (c ChangeLoadConfirmationStatusCommand) LoadConfirmationID() kernel.UUID {
	return c.loadConfirmationID
}

func (c ChangeLoadConfirmationStatusCommand) Action() booking.Action {
	return c.action
}
