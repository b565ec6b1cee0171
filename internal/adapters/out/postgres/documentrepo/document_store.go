// Package documentrepo reads the documents uploaded for invoices. Uploads are
// written by the document service; this adapter only records and lists them.
package documentrepo

import (
	"context"
	"time"

	"dispatch/internal/adapters/out/postgres/pgerr"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DocumentDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	InvoiceID  uuid.UUID `gorm:"type:uuid;not null;index:idx_documents_invoice_type,priority:1"`
	Type       string    `gorm:"type:varchar(32);not null;index:idx_documents_invoice_type,priority:2"`
	Name       string    `gorm:"type:varchar(255);not null"`
	UploadedAt time.Time `gorm:"not null"`
}

func (DocumentDTO) TableName() string {
	return "documents"
}

var _ ports.DocumentStore = (*GormDocumentStore)(nil)

type GormDocumentStore struct {
	db *gorm.DB
}

func NewGormDocumentStore(db *gorm.DB) *GormDocumentStore {
	return &GormDocumentStore{db: db}
}

// Add records an uploaded document.
func (s *GormDocumentStore) Add(ctx context.Context, doc ports.Document) error {
	if err := doc.ID.Validate(); err != nil {
		return err
	}

	dto := DocumentDTO{
		ID:         doc.ID.Bytes(),
		InvoiceID:  doc.InvoiceID.Bytes(),
		Type:       doc.Type,
		Name:       doc.Name,
		UploadedAt: doc.UploadedAt.UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Classify(err)
	}
	return nil
}

func (s *GormDocumentStore) DocumentsOfType(
	ctx context.Context,
	invoiceID kernel.UUID,
	docType string,
) ([]ports.Document, error) {
	var dtos []DocumentDTO
	if err := s.db.WithContext(ctx).
		Where("invoice_id = ? AND type = ?", invoiceID.Bytes(), docType).
		Order("uploaded_at").
		Find(&dtos).Error; err != nil {
		return nil, pgerr.Classify(err)
	}

	docs := make([]ports.Document, 0, len(dtos))
	for _, dto := range dtos {
		id, err := kernel.UUIDFromBytes(dto.ID[:])
		if err != nil {
			return nil, err
		}
		docs = append(docs, ports.Document{
			ID:         id,
			InvoiceID:  invoiceID,
			Type:       dto.Type,
			Name:       dto.Name,
			UploadedAt: dto.UploadedAt.UTC(),
		})
	}
	return docs, nil
}
