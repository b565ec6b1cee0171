package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/invoice"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetInvoiceProgressQueryIsNotConstructed = errors.New(
	"GetInvoiceProgressQuery must be created via NewGetInvoiceProgressQuery constructor",
)

type GetInvoiceProgressQuery struct {
	invoiceID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetInvoiceProgressQuery(invoiceID kernel.UUID) (GetInvoiceProgressQuery, error) {
	if err := invoiceID.Validate(); err != nil {
		return GetInvoiceProgressQuery{}, err
	}
	return GetInvoiceProgressQuery{
		invoiceID: invoiceID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q GetInvoiceProgressQuery) Validate() error {
	return q.guard.Validate(ErrGetInvoiceProgressQueryIsNotConstructed)
}

func (q GetInvoiceProgressQuery) InvoiceID() kernel.UUID { return q.invoiceID }

// GetInvoiceProgressResponse is the workflow view of one invoice. CompletedAt
// holds only the stages that have been completed or skipped.
type GetInvoiceProgressResponse struct {
	ID                         kernel.UUID
	Number                     string
	Stage                      invoice.Stage
	ProgressPercent            int
	Requirements               invoice.Requirements
	QC                         invoice.Inspection
	BV                         invoice.Inspection
	CompletedAt                map[invoice.Stage]time.Time
	ReadyDispatchAt            *time.Time
	BlockedWaitingForDocuments bool
	TransportStatus            invoice.TransportStatus
	Version                    int
}
