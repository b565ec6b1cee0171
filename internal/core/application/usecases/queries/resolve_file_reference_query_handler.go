package queries

import (
	"context"
	"log/slog"

	"dispatch/internal/core/domain/model/chain"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ResolveFileReferenceQueryHandler answers validation requests from the
// editing screens. A store that stays unavailable after the retries yields
// the error status instead of an error.
type ResolveFileReferenceQueryHandler struct {
	db     *gorm.DB
	retry  RetryPolicy
	logger *slog.Logger
}

func NewResolveFileReferenceQueryHandler(
	db *gorm.DB,
	retry RetryPolicy,
	logger *slog.Logger,
) ResolveFileReferenceQueryHandler {
	return ResolveFileReferenceQueryHandler{
		db:     db,
		retry:  retry,
		logger: logger.With("component", "resolve_file_reference_query"),
	}
}

func (h ResolveFileReferenceQueryHandler) Handle(
	ctx context.Context,
	query ResolveFileReferenceQuery,
) (ResolveFileReferenceResponse, error) {
	if err := query.Validate(); err != nil {
		return ResolveFileReferenceResponse{}, err
	}

	ref := query.FileName()

	var facts services.ReferenceFacts
	if !ref.IsEmpty() {
		err := h.retry.run(ctx, func() error {
			var lookupErr error
			facts, lookupErr = h.lookup(ctx, ref)
			return lookupErr
		})
		if err != nil {
			h.logger.WarnContext(ctx, "file reference lookup failed", "fileReference", ref.String(), "error", err)
			facts = services.ReferenceFacts{LookupErr: err}
		}
	}

	var exclude []kernel.UUID
	if id := query.ExcludePackingUnitID(); id != nil {
		exclude = append(exclude, *id)
	}

	res := services.NewReferenceResolver().Resolve(ref, facts, exclude...)
	return ResolveFileReferenceResponse{
		FileName: res.Reference,
		Status:   res.Status,
		Detail:   res.Detail,
	}, nil
}

func (h ResolveFileReferenceQueryHandler) lookup(ctx context.Context, ref kernel.FileReference) (services.ReferenceFacts, error) {
	var facts services.ReferenceFacts

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT status
		FROM shipment_chains
		WHERE file_reference = ?
	`, ref.String()).Rows()
	if err != nil {
		return facts, err
	}
	defer rows.Close()

	for rows.Next() {
		var status int
		if err = rows.Scan(&status); err != nil {
			return facts, err
		}
		facts.LoadConfirmationBooked = true
		facts.ManifestFiled = chain.Status(status) == chain.Locked
	}
	if err = rows.Err(); err != nil {
		return facts, err
	}

	holders, err := h.db.WithContext(ctx).Raw(`
		SELECT id
		FROM packing_units
		WHERE file_name = ?
		ORDER BY id
	`, ref.String()).Rows()
	if err != nil {
		return facts, err
	}
	defer holders.Close()

	for holders.Next() {
		var id uuid.UUID
		if err = holders.Scan(&id); err != nil {
			return facts, err
		}
		holderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return facts, idErr
		}
		facts.HolderIDs = append(facts.HolderIDs, holderID)
	}

	return facts, holders.Err()
}
