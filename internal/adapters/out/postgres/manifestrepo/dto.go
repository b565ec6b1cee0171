// Package manifestrepo persists customs manifests and the invoices filed on them.
package manifestrepo

import (
	"time"

	"dispatch/internal/core/domain/model/manifest"

	"github.com/google/uuid"
)

type ManifestDTO struct {
	ID                 uuid.UUID            `gorm:"type:uuid;primaryKey"`
	Number             string               `gorm:"type:varchar(32);not null;uniqueIndex"`
	LoadConfirmationID uuid.UUID            `gorm:"type:uuid;not null;uniqueIndex"`
	FileReference      string               `gorm:"type:varchar(100);not null;index"`
	FiledAt            time.Time            `gorm:"not null"`
	Invoices           []ManifestInvoiceDTO `gorm:"foreignKey:ManifestID;constraint:OnDelete:CASCADE"`
}

func (ManifestDTO) TableName() string {
	return "manifests"
}

type ManifestInvoiceDTO struct {
	ManifestID uuid.UUID `gorm:"type:uuid;primaryKey"`
	InvoiceID  uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	Position   int       `gorm:"type:int;not null"`
}

func (ManifestInvoiceDTO) TableName() string {
	return "manifest_invoices"
}

func fromDomain(m *manifest.Manifest) ManifestDTO {
	manifestID := m.ID().Bytes()

	invoices := make([]ManifestInvoiceDTO, 0, len(m.InvoiceIDs()))
	for i, id := range m.InvoiceIDs() {
		invoices = append(invoices, ManifestInvoiceDTO{
			ManifestID: manifestID,
			InvoiceID:  id.Bytes(),
			Position:   i,
		})
	}

	return ManifestDTO{
		ID:                 manifestID,
		Number:             m.Number(),
		LoadConfirmationID: m.LoadConfirmationID().Bytes(),
		FileReference:      m.FileReference().String(),
		FiledAt:            m.FiledAt(),
		Invoices:           invoices,
	}
}
