// Package chain provides the ShipmentChain registry: one row per booked file
// reference, linking it to the single active load confirmation and, once
// filed, to the manifest that locks it.
//
// A file reference without a chain row is free (available or planning).
// The row's primary key on the reference is the storage-level guarantee
// that a reference maps to at most one active transport chain.
//
// State transitions:
//
//	(absent) ──Book──> Confirmed ──Lock──> Locked (terminal)
//	    ^                  │
//	    └─────Release──────┘
package chain
