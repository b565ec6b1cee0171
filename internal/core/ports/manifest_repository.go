package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/manifest"
)

type ManifestRepository interface {
	Add(ctx context.Context, m *manifest.Manifest) error

	// InvoicesOnManifest returns the subset of ids already filed on a manifest.
	InvoicesOnManifest(ctx context.Context, ids []kernel.UUID) ([]kernel.UUID, error)
}
