// Package activityrepo stores the append-only activity log.
package activityrepo

import (
	"time"

	"dispatch/internal/core/domain/model/activity"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ActivityLogDTO struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey"`
	OwnerType   string            `gorm:"type:varchar(32);not null;index:idx_activity_owner,priority:1"`
	OwnerID     uuid.UUID         `gorm:"type:uuid;not null;index:idx_activity_owner,priority:2"`
	Type        string            `gorm:"type:varchar(64);not null"`
	Description string            `gorm:"type:text;not null;default:''"`
	FromStatus  string            `gorm:"type:varchar(64);not null;default:''"`
	ToStatus    string            `gorm:"type:varchar(64);not null;default:''"`
	Metadata    datatypes.JSONMap `gorm:"type:jsonb"`
	OccurredAt  time.Time         `gorm:"not null;index:idx_activity_owner,priority:3"`
}

func (ActivityLogDTO) TableName() string {
	return "activity_log"
}

func fromDomain(e *activity.Entry) ActivityLogDTO {
	return ActivityLogDTO{
		ID:          e.ID().Bytes(),
		OwnerType:   string(e.OwnerType()),
		OwnerID:     e.OwnerID().Bytes(),
		Type:        string(e.Type()),
		Description: e.Description(),
		FromStatus:  e.FromStatus(),
		ToStatus:    e.ToStatus(),
		Metadata:    datatypes.JSONMap(e.Metadata()),
		OccurredAt:  e.OccurredAt(),
	}
}

// ToDomain rebuilds an entry; the activity log query uses it for its read model.
func ToDomain(dto ActivityLogDTO) (*activity.Entry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}

	return activity.RestoreEntry(
		id,
		activity.OwnerType(dto.OwnerType),
		ownerID,
		activity.Type(dto.Type),
		dto.Description,
		activity.Change{From: dto.FromStatus, To: dto.ToStatus},
		dto.Metadata,
		dto.OccurredAt.UTC(),
	)
}
