// Package invoicerepo persists shipment records. Stage completion timestamps
// are stored one column per stage so the progress read model can stay a
// single-row query.
package invoicerepo

import (
	"time"

	"dispatch/internal/core/domain/model/invoice"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// InvoiceDTO is the row of the invoices table.
type InvoiceDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number     string    `gorm:"type:varchar(64);not null;index"`
	Stage      int       `gorm:"type:smallint;not null;index"`
	RequiresQC bool      `gorm:"not null"`
	RequiresBV bool      `gorm:"not null"`

	QCStatus         int  `gorm:"type:smallint;not null"`
	QCHasCertificate bool `gorm:"not null"`
	BVStatus         int  `gorm:"type:smallint;not null"`
	BVHasCertificate bool `gorm:"not null"`

	ReceivingCompletedAt     *time.Time
	DocVerifyCompletedAt     *time.Time
	QCInspectionCompletedAt  *time.Time
	BVInspectionCompletedAt  *time.Time
	ReadyDispatchCompletedAt *time.Time
	ReadyDispatchAt          *time.Time

	BlockedWaitingForDocuments bool   `gorm:"not null"`
	WorkflowNotes              string `gorm:"type:text;not null;default:''"`
	TransportStatus            int    `gorm:"type:smallint;not null;index"`
	Version                    int    `gorm:"not null;default:1"`
	CreatedAt                  time.Time
}

func (InvoiceDTO) TableName() string {
	return "invoices"
}

func (d *InvoiceDTO) completion(stage invoice.Stage) **time.Time {
	switch stage {
	case invoice.Receiving:
		return &d.ReceivingCompletedAt
	case invoice.DocVerify:
		return &d.DocVerifyCompletedAt
	case invoice.QCInspection:
		return &d.QCInspectionCompletedAt
	case invoice.BVInspection:
		return &d.BVInspectionCompletedAt
	case invoice.ReadyDispatch:
		return &d.ReadyDispatchCompletedAt
	default:
		return nil
	}
}

func fromDomain(aggregate *invoice.Invoice) InvoiceDTO {
	s := aggregate.Snapshot()
	dto := InvoiceDTO{
		ID:                         s.ID.Bytes(),
		Number:                     s.Number,
		Stage:                      int(s.Stage),
		RequiresQC:                 s.Requirements.QC,
		RequiresBV:                 s.Requirements.BV,
		QCStatus:                   int(s.QC.Status),
		QCHasCertificate:           s.QC.HasCertificate,
		BVStatus:                   int(s.BV.Status),
		BVHasCertificate:           s.BV.HasCertificate,
		ReadyDispatchAt:            s.ReadyDispatchAt,
		BlockedWaitingForDocuments: s.BlockedWaitingForDocuments,
		WorkflowNotes:              s.WorkflowNotes,
		TransportStatus:            int(s.TransportStatus),
		Version:                    s.Version,
		CreatedAt:                  s.CreatedAt,
	}

	for stage, at := range s.CompletedAt {
		if col := dto.completion(stage); col != nil {
			t := at
			*col = &t
		}
	}

	return dto
}

func toDomain(dto InvoiceDTO) (*invoice.Invoice, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	completed := make(map[invoice.Stage]time.Time)
	for _, stage := range invoice.Stages() {
		if col := dto.completion(stage); col != nil && *col != nil {
			completed[stage] = (**col).UTC()
		}
	}

	return invoice.RestoreInvoice(invoice.Snapshot{
		ID:     id,
		Number: dto.Number,
		Stage:  invoice.Stage(dto.Stage),
		Requirements: invoice.Requirements{
			QC: dto.RequiresQC,
			BV: dto.RequiresBV,
		},
		QC: invoice.Inspection{
			Status:         invoice.InspectionStatus(dto.QCStatus),
			HasCertificate: dto.QCHasCertificate,
		},
		BV: invoice.Inspection{
			Status:         invoice.InspectionStatus(dto.BVStatus),
			HasCertificate: dto.BVHasCertificate,
		},
		CompletedAt:                completed,
		ReadyDispatchAt:            dto.ReadyDispatchAt,
		BlockedWaitingForDocuments: dto.BlockedWaitingForDocuments,
		WorkflowNotes:              dto.WorkflowNotes,
		TransportStatus:            invoice.TransportStatus(dto.TransportStatus),
		Version:                    dto.Version,
		CreatedAt:                  dto.CreatedAt.UTC(),
	})
}
