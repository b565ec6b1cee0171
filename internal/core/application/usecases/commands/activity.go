package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/activity"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
)

// activityRecord describes the single audit entry of a command.
type activityRecord struct {
	ownerType   activity.OwnerType
	ownerID     kernel.UUID
	typ         activity.Type
	description string
	change      activity.Change
	metadata    map[string]any
}

func appendActivity(ctx context.Context, repo ports.ActivityLogRepository, rec activityRecord, now time.Time) error {
	entry, err := activity.NewEntry(rec.ownerType, rec.ownerID, rec.typ, rec.description, rec.change, rec.metadata, now)
	if err != nil {
		return err
	}
	return repo.Append(ctx, entry)
}

func uuidStrings(ids []kernel.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}
