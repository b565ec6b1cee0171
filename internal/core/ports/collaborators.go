package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
)

// InvoiceDocumentType is the document type whose presence completes the paperwork.
const InvoiceDocumentType = "invoice"

// Document is a stored file attached to an invoice.
type Document struct {
	ID         kernel.UUID
	InvoiceID  kernel.UUID
	Type       string
	Name       string
	UploadedAt time.Time
}

// DocumentStore reads the documents uploaded for an invoice.
type DocumentStore interface {
	DocumentsOfType(ctx context.Context, invoiceID kernel.UUID, docType string) ([]Document, error)
}

// ReadyForTransportNotice is sent once an invoice is released for dispatch.
type ReadyForTransportNotice struct {
	InvoiceID       kernel.UUID
	InvoiceNumber   string
	ReadyDispatchAt time.Time
	Notes           string
}

// LoadConfirmationEmail asks the mail collaborator to send a confirmation.
type LoadConfirmationEmail struct {
	LoadConfirmationID kernel.UUID
	FileReference      kernel.FileReference
	Transporter        string
	VehicleNumber      string
	Recipients         []string
}

// Notifier delivers notifications. Calls are fire-and-forget: a failure is
// logged by the caller and never undoes the state change that triggered it.
type Notifier interface {
	NotifyReadyForTransport(ctx context.Context, notice ReadyForTransportNotice) error
	SendLoadConfirmationEmail(ctx context.Context, email LoadConfirmationEmail) error
}

// ManifestNumberSource hands out customs manifest numbers.
type ManifestNumberSource interface {
	NextManifestNumber(ctx context.Context) (string, error)
}
