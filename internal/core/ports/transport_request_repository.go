package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/transport"
)

type TransportRequestRepository interface {
	Add(ctx context.Context, request *transport.Request) error
	Update(ctx context.Context, request *transport.Request) error
	GetForUpdate(ctx context.Context, id kernel.UUID) (*transport.Request, error)
}
