package postgres

import (
	"context"
	"fmt"

	"dispatch/internal/adapters/out/postgres/activityrepo"
	"dispatch/internal/adapters/out/postgres/bookingrepo"
	"dispatch/internal/adapters/out/postgres/chainrepo"
	"dispatch/internal/adapters/out/postgres/documentrepo"
	"dispatch/internal/adapters/out/postgres/invoicerepo"
	"dispatch/internal/adapters/out/postgres/manifestrepo"
	"dispatch/internal/adapters/out/postgres/packingrepo"
	"dispatch/internal/adapters/out/postgres/transportrepo"
	"dispatch/internal/core/domain/model/booking"

	"gorm.io/gorm"
)

// Models lists every table owned by the dispatch service.
func Models() []any {
	return []any{
		&invoicerepo.InvoiceDTO{},
		&packingrepo.PackingUnitDTO{},
		&chainrepo.ShipmentChainDTO{},
		&transportrepo.TransportRequestDTO{},
		&transportrepo.TransportRequestInvoiceDTO{},
		&bookingrepo.LoadConfirmationDTO{},
		&bookingrepo.LoadConfirmationInvoiceDTO{},
		&manifestrepo.ManifestDTO{},
		&manifestrepo.ManifestInvoiceDTO{},
		&activityrepo.ActivityLogDTO{},
		&documentrepo.DocumentDTO{},
	}
}

// Migrate creates the schema. The partial unique indexes are the storage
// backstop against double booking and cannot be expressed as gorm tags.
func Migrate(ctx context.Context, db *gorm.DB) error {
	tx := db.WithContext(ctx)
	if err := tx.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	statements := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_packing_units_file_name
			ON packing_units (file_name) WHERE file_name <> ''`,
		fmt.Sprintf(`CREATE UNIQUE INDEX IF NOT EXISTS uq_load_confirmations_active_reference
			ON load_confirmations (file_reference) WHERE status <> %d`, int(booking.Cancelled)),
		`CREATE SEQUENCE IF NOT EXISTS manifest_number_seq`,
	}
	for _, stmt := range statements {
		if err := tx.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
