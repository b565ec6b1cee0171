// Package transportrepo persists transport requests and the invoices each
// request covers.
package transportrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/transport"

	"github.com/google/uuid"
)

type TransportRequestDTO struct {
	ID                 uuid.UUID                    `gorm:"type:uuid;primaryKey"`
	Status             int                          `gorm:"type:smallint;not null;index"`
	Notes              string                       `gorm:"type:text;not null;default:''"`
	LoadConfirmationID *uuid.UUID                   `gorm:"type:uuid"`
	RejectionReason    string                       `gorm:"type:text;not null;default:''"`
	CreatedAt          time.Time                    `gorm:"not null"`
	Invoices           []TransportRequestInvoiceDTO `gorm:"foreignKey:TransportRequestID;constraint:OnDelete:CASCADE"`
}

func (TransportRequestDTO) TableName() string {
	return "transport_requests"
}

// TransportRequestInvoiceDTO links a request to one invoice. Position keeps
// the order in which the invoices were requested.
type TransportRequestInvoiceDTO struct {
	TransportRequestID uuid.UUID `gorm:"type:uuid;primaryKey"`
	InvoiceID          uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	Position           int       `gorm:"type:int;not null"`
}

func (TransportRequestInvoiceDTO) TableName() string {
	return "transport_request_invoices"
}

func fromDomain(r *transport.Request) TransportRequestDTO {
	requestID := r.ID().Bytes()

	var lcID *uuid.UUID
	if id := r.LoadConfirmationID(); id != nil {
		raw := id.Bytes()
		lcID = &raw
	}

	invoices := make([]TransportRequestInvoiceDTO, 0, len(r.InvoiceIDs()))
	for i, id := range r.InvoiceIDs() {
		invoices = append(invoices, TransportRequestInvoiceDTO{
			TransportRequestID: requestID,
			InvoiceID:          id.Bytes(),
			Position:           i,
		})
	}

	return TransportRequestDTO{
		ID:                 requestID,
		Status:             int(r.Status()),
		Notes:              r.Notes(),
		LoadConfirmationID: lcID,
		RejectionReason:    r.RejectionReason(),
		CreatedAt:          r.CreatedAt(),
		Invoices:           invoices,
	}
}

func toDomain(dto TransportRequestDTO) (*transport.Request, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	invoiceIDs := make([]kernel.UUID, 0, len(dto.Invoices))
	for _, link := range dto.Invoices {
		invoiceID, idErr := kernel.UUIDFromBytes(link.InvoiceID[:])
		if idErr != nil {
			return nil, idErr
		}
		invoiceIDs = append(invoiceIDs, invoiceID)
	}

	var lcID *kernel.UUID
	if dto.LoadConfirmationID != nil {
		raw, idErr := kernel.UUIDFromBytes((*dto.LoadConfirmationID)[:])
		if idErr != nil {
			return nil, idErr
		}
		lcID = &raw
	}

	return transport.RestoreRequest(
		id,
		transport.Status(dto.Status),
		invoiceIDs,
		dto.Notes,
		lcID,
		dto.RejectionReason,
		dto.CreatedAt.UTC(),
	)
}
