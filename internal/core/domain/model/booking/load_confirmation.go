// Package booking provides the LoadConfirmation aggregate: a booked vehicle
// and transporter covering every invoice that shares one file reference.
package booking

import (
	"errors"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrLoadConfirmationIsNotConstructed = errors.New(
	"LoadConfirmation must be created via NewLoadConfirmation or RestoreLoadConfirmation",
)

type LoadConfirmation struct {
	id                 kernel.UUID
	fileReference      kernel.FileReference
	status             Status
	invoiceIDs         []kernel.UUID
	transportRequestID *kernel.UUID
	transporter        string
	vehicleNumber      string
	createdAt          time.Time
	guard              guard.ConstructorGuard
}

// Vehicle describes who moves the goods.
type Vehicle struct {
	Transporter   string
	VehicleNumber string
}

// NewLoadConfirmation creates a draft confirmation. transportRequestID is set
// when the booking fulfils a transport request.
func NewLoadConfirmation(
	id kernel.UUID,
	fileReference kernel.FileReference,
	invoiceIDs []kernel.UUID,
	vehicle Vehicle,
	transportRequestID *kernel.UUID,
	now time.Time,
) (*LoadConfirmation, error) {
	lc := &LoadConfirmation{
		status:             Draft,
		transportRequestID: transportRequestID,
		transporter:        strings.TrimSpace(vehicle.Transporter),
		vehicleNumber:      strings.TrimSpace(vehicle.VehicleNumber),
		createdAt:          now.UTC(),
		guard:              guard.NewConstructorGuard(),
	}

	var refErr error
	if fileReference.IsEmpty() {
		refErr = errs.NewValueIsRequiredError("fileReference")
	}
	var transporterErr error
	if lc.transporter == "" {
		transporterErr = errs.NewValueIsRequiredError("transporter")
	}

	if err := errors.Join(
		id.Validate(),
		refErr,
		transporterErr,
		lc.setInvoiceIDs(invoiceIDs),
	); err != nil {
		return nil, err
	}

	lc.id = id
	lc.fileReference = fileReference
	return lc, nil
}

func RestoreLoadConfirmation(
	id kernel.UUID,
	fileReference kernel.FileReference,
	status Status,
	invoiceIDs []kernel.UUID,
	vehicle Vehicle,
	transportRequestID *kernel.UUID,
	createdAt time.Time,
) (*LoadConfirmation, error) {
	lc, err := NewLoadConfirmation(id, fileReference, invoiceIDs, vehicle, transportRequestID, createdAt)
	if err != nil {
		return nil, err
	}
	if err = status.Validate(); err != nil {
		return nil, err
	}
	lc.status = status
	return lc, nil
}

func (lc *LoadConfirmation) Validate() error {
	if lc == nil {
		return ErrLoadConfirmationIsNotConstructed
	}
	return lc.guard.Validate(ErrLoadConfirmationIsNotConstructed)
}

func (lc *LoadConfirmation) ID() kernel.UUID                     { return lc.id }
func (lc *LoadConfirmation) FileReference() kernel.FileReference { return lc.fileReference }
func (lc *LoadConfirmation) Status() Status                      { return lc.status }
func (lc *LoadConfirmation) TransportRequestID() *kernel.UUID    { return lc.transportRequestID }
func (lc *LoadConfirmation) Transporter() string                 { return lc.transporter }
func (lc *LoadConfirmation) VehicleNumber() string               { return lc.vehicleNumber }
func (lc *LoadConfirmation) CreatedAt() time.Time                { return lc.createdAt }

func (lc *LoadConfirmation) InvoiceIDs() []kernel.UUID {
	out := make([]kernel.UUID, len(lc.invoiceIDs))
	copy(out, lc.invoiceIDs)
	return out
}

// FromTransportRequest reports whether the booking fulfils a transport request.
func (lc *LoadConfirmation) FromTransportRequest() bool {
	return lc.transportRequestID != nil
}

// Apply performs an operator action and returns the previous status.
func (lc *LoadConfirmation) Apply(action Action) (Status, error) {
	next, err := lc.status.Apply(action)
	if err != nil {
		return 0, err
	}
	prev := lc.status
	lc.status = next
	return prev, nil
}

func (lc *LoadConfirmation) setInvoiceIDs(ids []kernel.UUID) error {
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
	lc.invoiceIDs = unique
	return nil
}
