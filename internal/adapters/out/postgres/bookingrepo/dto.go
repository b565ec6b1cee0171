// Package bookingrepo persists load confirmations and the invoices each one
// books. At most one active confirmation may carry a file reference; the
// partial index uq_load_confirmations_active_reference enforces it.
package bookingrepo

import (
	"time"

	"dispatch/internal/core/domain/model/booking"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type LoadConfirmationDTO struct {
	ID                 uuid.UUID                    `gorm:"type:uuid;primaryKey"`
	FileReference      string                       `gorm:"type:varchar(100);not null;index"`
	Status             int                          `gorm:"type:smallint;not null"`
	TransportRequestID *uuid.UUID                   `gorm:"type:uuid;index"`
	Transporter        string                       `gorm:"type:varchar(255);not null"`
	VehicleNumber      string                       `gorm:"type:varchar(64);not null;default:''"`
	CreatedAt          time.Time                    `gorm:"not null"`
	Invoices           []LoadConfirmationInvoiceDTO `gorm:"foreignKey:LoadConfirmationID;constraint:OnDelete:CASCADE"`
}

func (LoadConfirmationDTO) TableName() string {
	return "load_confirmations"
}

type LoadConfirmationInvoiceDTO struct {
	LoadConfirmationID uuid.UUID `gorm:"type:uuid;primaryKey"`
	InvoiceID          uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	Position           int       `gorm:"type:int;not null"`
}

func (LoadConfirmationInvoiceDTO) TableName() string {
	return "load_confirmation_invoices"
}

func fromDomain(lc *booking.LoadConfirmation) LoadConfirmationDTO {
	lcID := lc.ID().Bytes()

	var requestID *uuid.UUID
	if id := lc.TransportRequestID(); id != nil {
		raw := id.Bytes()
		requestID = &raw
	}

	invoices := make([]LoadConfirmationInvoiceDTO, 0, len(lc.InvoiceIDs()))
	for i, id := range lc.InvoiceIDs() {
		invoices = append(invoices, LoadConfirmationInvoiceDTO{
			LoadConfirmationID: lcID,
			InvoiceID:          id.Bytes(),
			Position:           i,
		})
	}

	return LoadConfirmationDTO{
		ID:                 lcID,
		FileReference:      lc.FileReference().String(),
		Status:             int(lc.Status()),
		TransportRequestID: requestID,
		Transporter:        lc.Transporter(),
		VehicleNumber:      lc.VehicleNumber(),
		CreatedAt:          lc.CreatedAt(),
		Invoices:           invoices,
	}
}

func toDomain(dto LoadConfirmationDTO) (*booking.LoadConfirmation, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	ref, err := kernel.NewFileReference(dto.FileReference)
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

	var requestID *kernel.UUID
	if dto.TransportRequestID != nil {
		raw, idErr := kernel.UUIDFromBytes((*dto.TransportRequestID)[:])
		if idErr != nil {
			return nil, idErr
		}
		requestID = &raw
	}

	return booking.RestoreLoadConfirmation(
		id,
		ref,
		booking.Status(dto.Status),
		invoiceIDs,
		booking.Vehicle{Transporter: dto.Transporter, VehicleNumber: dto.VehicleNumber},
		requestID,
		dto.CreatedAt.UTC(),
	)
}
