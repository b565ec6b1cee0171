// Package transport provides the TransportRequest aggregate: an ask for a
// vehicle covering one or more invoices.
package transport

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrRequestIsNotConstructed = errors.New("Request must be created via NewRequest or RestoreRequest")

type Request struct {
	id                 kernel.UUID
	status             Status
	invoiceIDs         []kernel.UUID
	notes              string
	loadConfirmationID *kernel.UUID
	rejectionReason    string
	createdAt          time.Time
	guard              guard.ConstructorGuard
}

func NewRequest(id kernel.UUID, invoiceIDs []kernel.UUID, notes string, now time.Time) (*Request, error) {
	r := &Request{
		status:    Pending,
		notes:     strings.TrimSpace(notes),
		createdAt: now.UTC(),
		guard:     guard.NewConstructorGuard(),
	}
	if err := errors.Join(r.setID(id), r.setInvoiceIDs(invoiceIDs)); err != nil {
		return nil, err
	}
	return r, nil
}

func RestoreRequest(
	id kernel.UUID,
	status Status,
	invoiceIDs []kernel.UUID,
	notes string,
	loadConfirmationID *kernel.UUID,
	rejectionReason string,
	createdAt time.Time,
) (*Request, error) {
	r, err := NewRequest(id, invoiceIDs, notes, createdAt)
	if err != nil {
		return nil, err
	}
	if err = status.Validate(); err != nil {
		return nil, err
	}
	needsLC := status == Assigned || status == Completed
	if needsLC != (loadConfirmationID != nil) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"loadConfirmationID",
			fmt.Errorf("%s request with load confirmation present=%t", status, loadConfirmationID != nil),
		)
	}
	r.status = status
	r.loadConfirmationID = loadConfirmationID
	r.rejectionReason = rejectionReason
	return r, nil
}

func (r *Request) Validate() error {
	if r == nil {
		return ErrRequestIsNotConstructed
	}
	return r.guard.Validate(ErrRequestIsNotConstructed)
}

func (r *Request) ID() kernel.UUID                  { return r.id }
func (r *Request) Status() Status                   { return r.status }
func (r *Request) Notes() string                    { return r.notes }
func (r *Request) LoadConfirmationID() *kernel.UUID { return r.loadConfirmationID }
func (r *Request) RejectionReason() string          { return r.rejectionReason }
func (r *Request) CreatedAt() time.Time             { return r.createdAt }

func (r *Request) InvoiceIDs() []kernel.UUID {
	out := make([]kernel.UUID, len(r.invoiceIDs))
	copy(out, r.invoiceIDs)
	return out
}

// Assign records the load confirmation that fulfils the request.
func (r *Request) Assign(loadConfirmationID kernel.UUID) error {
	if err := loadConfirmationID.Validate(); err != nil {
		return err
	}
	next, err := r.status.Assign()
	if err != nil {
		return err
	}
	r.status = next
	r.loadConfirmationID = &loadConfirmationID
	return nil
}

func (r *Request) Reject(reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}
	next, err := r.status.Reject()
	if err != nil {
		return err
	}
	r.status = next
	r.rejectionReason = reason
	return nil
}

func (r *Request) Complete() error {
	next, err := r.status.Complete()
	if err != nil {
		return err
	}
	r.status = next
	return nil
}

func (r *Request) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Request) setInvoiceIDs(ids []kernel.UUID) error {
	if len(ids) == 0 {
		return errs.NewValueIsRequiredError("invoiceIDs")
	}
	unique := make([]kernel.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return err
		}
		if !kernel.ContainsUUID(unique, id) {
			unique = append(unique, id)
		}
	}
	r.invoiceIDs = unique
	return nil
}
