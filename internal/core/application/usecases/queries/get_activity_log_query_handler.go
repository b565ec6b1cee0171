package queries

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/activity"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type GetActivityLogQueryHandler struct {
	db    *gorm.DB
	retry RetryPolicy
}

func NewGetActivityLogQueryHandler(db *gorm.DB, retry RetryPolicy) GetActivityLogQueryHandler {
	return GetActivityLogQueryHandler{db: db, retry: retry}
}

func (h GetActivityLogQueryHandler) Handle(
	ctx context.Context,
	query GetActivityLogQuery,
) ([]ActivityLogEntryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var entries []ActivityLogEntryResponse
	err := h.retry.run(ctx, func() error {
		var readErr error
		entries, readErr = h.read(ctx, query)
		return readErr
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (h GetActivityLogQueryHandler) read(ctx context.Context, query GetActivityLogQuery) ([]ActivityLogEntryResponse, error) {
	entries := make([]ActivityLogEntryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			type,
			description,
			from_status,
			to_status,
			metadata,
			occurred_at
		FROM activity_log
		WHERE owner_type = ? AND owner_id = ?
		ORDER BY occurred_at DESC, id DESC
		LIMIT ?
	`, string(query.OwnerType()), query.OwnerID().Bytes(), query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id         uuid.UUID
			typ        string
			entry      ActivityLogEntryResponse
			metadata   datatypes.JSONMap
			occurredAt time.Time
		)
		err = rows.Scan(
			&id,
			&typ,
			&entry.Description,
			&entry.FromStatus,
			&entry.ToStatus,
			&metadata,
			&occurredAt,
		)
		if err != nil {
			return nil, err
		}

		entryID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		entry.ID = entryID
		entry.Type = activity.Type(typ)
		entry.OccurredAt = occurredAt.UTC()
		entry.Metadata = map[string]any(metadata)
		if entry.Metadata == nil {
			entry.Metadata = map[string]any{}
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
