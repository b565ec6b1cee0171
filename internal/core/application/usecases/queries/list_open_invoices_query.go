package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const (
	DefaultOpenInvoicesLimit = 100
	MaxOpenInvoicesLimit     = 1000
)

var ErrListOpenInvoicesQueryIsNotConstructed = errors.New(
	"ListOpenInvoicesQuery must be created via NewListOpenInvoicesQuery constructor",
)

// ListOpenInvoicesQuery selects invoices not yet released for dispatch,
// oldest first. The document sweep walks them in batches.
type ListOpenInvoicesQuery struct {
	limit int

	guard guard.ConstructorGuard
}

func NewListOpenInvoicesQuery(limit int) (ListOpenInvoicesQuery, error) {
	if limit == 0 {
		limit = DefaultOpenInvoicesLimit
	}
	if limit < 1 || limit > MaxOpenInvoicesLimit {
		return ListOpenInvoicesQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxOpenInvoicesLimit)
	}
	return ListOpenInvoicesQuery{limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (q ListOpenInvoicesQuery) Validate() error {
	return q.guard.Validate(ErrListOpenInvoicesQueryIsNotConstructed)
}

func (q ListOpenInvoicesQuery) Limit() int { return q.limit }

type ListOpenInvoicesResponse struct {
	ID     kernel.UUID
	Number string
}
