package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/invoice"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrRecordInspectionCommandIsNotConstructed = errors.New(
	"RecordInspectionCommand must be created via NewRecordInspectionCommand constructor",
)

// RecordInspectionCommand stores the outcome of a QC or BV inspection.
//
// Example:
//
//	kind, _ := invoice.ParseInspectionKind("qc")
//	status, _ := invoice.ParseInspectionStatus("passed")
//	cmd, err := NewRecordInspectionCommand(invoiceID, kind, status, true)
type RecordInspectionCommand struct { //nolint:recvcheck //using for validation
	invoiceID      kernel.UUID
	kind           invoice.InspectionKind
	status         invoice.InspectionStatus
	hasCertificate bool

	guard guard.ConstructorGuard
}

func NewRecordInspectionCommand(
	invoiceID kernel.UUID,
	kind invoice.InspectionKind,
	status invoice.InspectionStatus,
	hasCertificate bool,
) (RecordInspectionCommand, error) {
	var kindErr error
	if _, err := invoice.ParseInspectionKind(kind.String()); err != nil {
		kindErr = err
	}

	if err := errors.Join(invoiceID.Validate(), kindErr, status.Validate()); err != nil {
		return RecordInspectionCommand{}, err
	}

	return RecordInspectionCommand{
		invoiceID:      invoiceID,
		kind:           kind,
		status:         status,
		hasCertificate: hasCertificate,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c RecordInspectionCommand) Validate() error {
	return c.guard.Validate(ErrRecordInspectionCommandIsNotConstructed)
}

func (c RecordInspectionCommand) InvoiceID() kernel.UUID           { return c.invoiceID }
func (c RecordInspectionCommand) Kind() invoice.InspectionKind     { return c.kind }
func (c RecordInspectionCommand) Status() invoice.InspectionStatus { return c.status }
func (c RecordInspectionCommand) HasCertificate() bool             { return c.hasCertificate }
