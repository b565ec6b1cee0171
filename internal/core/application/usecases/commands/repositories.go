// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// Every handler runs in one unit of work and appends exactly one activity
// entry in that same transaction when it changes state.
package commands

import (
	"context"

	"dispatch/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler asks only for the repositories it touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	InvoiceRepoFactory interface {
		InvoiceRepository() ports.InvoiceRepository
	}

	PackingUnitRepoFactory interface {
		PackingUnitRepository() ports.PackingUnitRepository
	}

	ShipmentChainRepoFactory interface {
		ShipmentChainRepository() ports.ShipmentChainRepository
	}

	TransportRequestRepoFactory interface {
		TransportRequestRepository() ports.TransportRequestRepository
	}

	LoadConfirmationRepoFactory interface {
		LoadConfirmationRepository() ports.LoadConfirmationRepository
	}

	ManifestRepoFactory interface {
		ManifestRepository() ports.ManifestRepository
	}

	ActivityLogRepoFactory interface {
		ActivityLogRepository() ports.ActivityLogRepository
	}

	// InvoiceUoW covers operations on a single invoice and its stage engine.
	InvoiceUoW interface {
		TxManager
		InvoiceRepoFactory
		ActivityLogRepoFactory
	}

	InvoiceUoWFactory interface {
		Create() InvoiceUoW
	}

	// ReferenceUoW covers packing unit edits, which re-resolve file
	// references against the chain registry.
	ReferenceUoW interface {
		TxManager
		InvoiceRepoFactory
		PackingUnitRepoFactory
		ShipmentChainRepoFactory
		ActivityLogRepoFactory
	}

	ReferenceUoWFactory interface {
		Create() ReferenceUoW
	}

	// UoW spans the whole transport chain: requests, confirmations,
	// manifests and the invoices they move.
	UoW interface {
		TxManager
		InvoiceRepoFactory
		PackingUnitRepoFactory
		ShipmentChainRepoFactory
		TransportRequestRepoFactory
		LoadConfirmationRepoFactory
		ManifestRepoFactory
		ActivityLogRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)
