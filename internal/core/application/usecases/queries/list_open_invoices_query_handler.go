package queries

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListOpenInvoicesQueryHandler struct {
	db    *gorm.DB
	retry RetryPolicy
}

func NewListOpenInvoicesQueryHandler(db *gorm.DB, retry RetryPolicy) ListOpenInvoicesQueryHandler {
	return ListOpenInvoicesQueryHandler{db: db, retry: retry}
}

func (h ListOpenInvoicesQueryHandler) Handle(
	ctx context.Context,
	query ListOpenInvoicesQuery,
) ([]ListOpenInvoicesResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var invoices []ListOpenInvoicesResponse
	err := h.retry.run(ctx, func() error {
		var readErr error
		invoices, readErr = h.read(ctx, query.Limit())
		return readErr
	})
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

func (h ListOpenInvoicesQueryHandler) read(ctx context.Context, limit int) ([]ListOpenInvoicesResponse, error) {
	invoices := make([]ListOpenInvoicesResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			number
		FROM invoices
		WHERE ready_dispatch_at IS NULL
		ORDER BY created_at, id
		LIMIT ?
	`, limit).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var resp ListOpenInvoicesResponse
		if err = rows.Scan(&id, &resp.Number); err != nil {
			return nil, err
		}

		invoiceID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = invoiceID
		invoices = append(invoices, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return invoices, nil
}
