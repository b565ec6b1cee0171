package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/activity"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const (
	DefaultActivityLogLimit = 50
	MaxActivityLogLimit     = 500
)

var ErrGetActivityLogQueryIsNotConstructed = errors.New(
	"GetActivityLogQuery must be created via NewGetActivityLogQuery constructor",
)

// GetActivityLogQuery lists the audit trail of one aggregate, newest first.
// A limit of zero selects DefaultActivityLogLimit.
type GetActivityLogQuery struct {
	ownerType activity.OwnerType
	ownerID   kernel.UUID
	limit     int

	guard guard.ConstructorGuard
}

func NewGetActivityLogQuery(ownerType activity.OwnerType, ownerID kernel.UUID, limit int) (GetActivityLogQuery, error) {
	if limit == 0 {
		limit = DefaultActivityLogLimit
	}

	var limitErr error
	if limit < 1 || limit > MaxActivityLogLimit {
		limitErr = errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxActivityLogLimit)
	}

	if err := errors.Join(ownerType.Validate(), ownerID.Validate(), limitErr); err != nil {
		return GetActivityLogQuery{}, err
	}

	return GetActivityLogQuery{
		ownerType: ownerType,
		ownerID:   ownerID,
		limit:     limit,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q GetActivityLogQuery) Validate() error {
	return q.guard.Validate(ErrGetActivityLogQueryIsNotConstructed)
}

func (q GetActivityLogQuery) OwnerType() activity.OwnerType { return q.ownerType }
func (q GetActivityLogQuery) OwnerID() kernel.UUID          { return q.ownerID }
func (q GetActivityLogQuery) Limit() int                    { return q.limit }

type ActivityLogEntryResponse struct {
	ID          kernel.UUID
	Type        activity.Type
	Description string
	FromStatus  string
	ToStatus    string
	Metadata    map[string]any
	OccurredAt  time.Time
}
