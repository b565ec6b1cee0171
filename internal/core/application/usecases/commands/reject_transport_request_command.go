package commands

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrRejectTransportRequestCommandIsNotConstructed = errors.New(
	"RejectTransportRequestCommand must be created via NewRejectTransportRequestCommand constructor",
)

type RejectTransportRequestCommand struct { //nolint:recvcheck //using for validation
	requestID kernel.UUID
	reason    string

	guard guard.ConstructorGuard
}

// NewRejectTransportRequestCommand requires a non-blank reason.
func NewRejectTransportRequestCommand(requestID kernel.UUID, reason string) (RejectTransportRequestCommand, error) {
	reason = strings.TrimSpace(reason)

	var reasonErr error
	if reason == "" {
		reasonErr = errs.NewValueIsRequiredError("reason")
	}

	if err := errors.Join(requestID.Validate(), reasonErr); err != nil {
		return RejectTransportRequestCommand{}, err
	}

	return RejectTransportRequestCommand{
		requestID: requestID,
		reason:    reason,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c RejectTransportRequestCommand) Validate() error {
	return c.guard.Validate(ErrRejectTransportRequestCommandIsNotConstructed)
}

func (c RejectTransportRequestCommand) RequestID() kernel.UUID {
	return c.requestID
}

func (c RejectTransportRequestCommand) Reason() string {
	return c.reason
}
