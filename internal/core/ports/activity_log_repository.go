package ports

import (
	"context"

	"dispatch/internal/core/domain/model/activity"
)

// ActivityLogRepository is append-only.
type ActivityLogRepository interface {
	Append(ctx context.Context, entry *activity.Entry) error
}
