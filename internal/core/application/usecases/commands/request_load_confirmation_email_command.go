package commands

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrRequestLoadConfirmationEmailCommandIsNotConstructed = errors.New(
	"RequestLoadConfirmationEmailCommand must be created via NewRequestLoadConfirmationEmailCommand constructor",
)

// RequestLoadConfirmationEmailCommand asks for a load confirmation to be
// mailed to the given recipients.
type RequestLoadConfirmationEmailCommand struct { //nolint:recvcheck //using for validation
	loadConfirmationID kernel.UUID
	recipients         []string

	guard guard.ConstructorGuard
}

// NewRequestLoadConfirmationEmailCommand trims and deduplicates recipients.
// Every recipient must be a plain address.
func NewRequestLoadConfirmationEmailCommand(
	loadConfirmationID kernel.UUID,
	recipients []string,
) (RequestLoadConfirmationEmailCommand, error) {
	var (
		cleaned       []string
		recipientsErr error
	)
	seen := make(map[string]struct{}, len(recipients))
	for _, r := range recipients {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		if _, err := mail.ParseAddress(r); err != nil {
			recipientsErr = errors.Join(recipientsErr,
				errs.NewValueIsInvalidErrorWithCause("recipient", fmt.Errorf("%q: %w", r, err)))
			continue
		}
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		cleaned = append(cleaned, r)
	}
	if recipientsErr == nil && len(cleaned) == 0 {
		recipientsErr = errs.NewValueIsRequiredError("recipients")
	}

	if err := errors.Join(loadConfirmationID.Validate(), recipientsErr); err != nil {
		return RequestLoadConfirmationEmailCommand{}, err
	}

	return RequestLoadConfirmationEmailCommand{
		loadConfirmationID: loadConfirmationID,
		recipients:         cleaned,
		guard:              guard.NewConstructorGuard(),
	}, nil
}

func (c RequestLoadConfirmationEmailCommand) Validate() error {
	return c.guard.Validate(ErrRequestLoadConfirmationEmailCommandIsNotConstructed)
}

func (c RequestLoadConfirmationEmailCommand) LoadConfirmationID() kernel.UUID {
	return c.loadConfirmationID
}

func (c RequestLoadConfirmationEmailCommand) Recipients() []string {
	return append([]string(nil), c.recipients...)
}
