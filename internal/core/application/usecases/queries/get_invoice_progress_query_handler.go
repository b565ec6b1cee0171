package queries

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/invoice"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetInvoiceProgressQueryHandler struct {
	db    *gorm.DB
	retry RetryPolicy
}

func NewGetInvoiceProgressQueryHandler(db *gorm.DB, retry RetryPolicy) GetInvoiceProgressQueryHandler {
	return GetInvoiceProgressQueryHandler{db: db, retry: retry}
}

// Handle loads the invoice row and derives its progress through the stage
// engine, so the percentage always matches what AdvanceStage reports.
func (h GetInvoiceProgressQueryHandler) Handle(
	ctx context.Context,
	query GetInvoiceProgressQuery,
) (GetInvoiceProgressResponse, error) {
	if err := query.Validate(); err != nil {
		return GetInvoiceProgressResponse{}, err
	}

	var snapshot *invoice.Snapshot
	err := h.retry.run(ctx, func() error {
		var readErr error
		snapshot, readErr = h.read(ctx, query.InvoiceID())
		return readErr
	})
	if err != nil {
		return GetInvoiceProgressResponse{}, err
	}
	if snapshot == nil {
		return GetInvoiceProgressResponse{}, errs.NewObjectNotFoundError("invoice", query.InvoiceID().String())
	}

	inv, err := invoice.RestoreInvoice(*snapshot)
	if err != nil {
		return GetInvoiceProgressResponse{}, err
	}

	completed := make(map[invoice.Stage]time.Time)
	for _, stage := range invoice.Stages() {
		if at, ok := inv.CompletedAt(stage); ok {
			completed[stage] = at
		}
	}

	return GetInvoiceProgressResponse{
		ID:                         inv.ID(),
		Number:                     inv.Number(),
		Stage:                      inv.Stage(),
		ProgressPercent:            inv.Progress(),
		Requirements:               inv.Requirements(),
		QC:                         inv.Inspection(invoice.QC),
		BV:                         inv.Inspection(invoice.BV),
		CompletedAt:                completed,
		ReadyDispatchAt:            inv.ReadyDispatchAt(),
		BlockedWaitingForDocuments: inv.BlockedWaitingForDocuments(),
		TransportStatus:            inv.TransportStatus(),
		Version:                    inv.Version(),
	}, nil
}

func (h GetInvoiceProgressQueryHandler) read(ctx context.Context, id kernel.UUID) (*invoice.Snapshot, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			number,
			stage,
			requires_qc,
			requires_bv,
			qc_status,
			qc_has_certificate,
			bv_status,
			bv_has_certificate,
			receiving_completed_at,
			doc_verify_completed_at,
			qc_inspection_completed_at,
			bv_inspection_completed_at,
			ready_dispatch_completed_at,
			ready_dispatch_at,
			blocked_waiting_for_documents,
			workflow_notes,
			transport_status,
			version,
			created_at
		FROM invoices
		WHERE id = ?
	`, id.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}

	s := invoice.Snapshot{ID: id}
	var stage, qcStatus, bvStatus, transport int
	var completedAt [5]*time.Time
	err = rows.Scan(
		&s.Number,
		&stage,
		&s.Requirements.QC,
		&s.Requirements.BV,
		&qcStatus,
		&s.QC.HasCertificate,
		&bvStatus,
		&s.BV.HasCertificate,
		&completedAt[0],
		&completedAt[1],
		&completedAt[2],
		&completedAt[3],
		&completedAt[4],
		&s.ReadyDispatchAt,
		&s.BlockedWaitingForDocuments,
		&s.WorkflowNotes,
		&transport,
		&s.Version,
		&s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.Stage = invoice.Stage(stage)
	s.QC.Status = invoice.InspectionStatus(qcStatus)
	s.BV.Status = invoice.InspectionStatus(bvStatus)
	s.TransportStatus = invoice.TransportStatus(transport)
	s.CompletedAt = make(map[invoice.Stage]time.Time)
	for i, stage := range invoice.Stages() {
		if i < len(completedAt) && completedAt[i] != nil {
			s.CompletedAt[stage] = completedAt[i].UTC()
		}
	}

	return &s, rows.Err()
}
