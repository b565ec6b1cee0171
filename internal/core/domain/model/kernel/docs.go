// Package kernel holds the value objects shared by every aggregate of the
// dispatch domain:
//   - UUID: identifier of invoices, packing units, requests, confirmations and manifests
//   - FileReference: the free-text correlation key that ties a packing unit to
//     its load confirmation and manifest
//
// Both are immutable and safe for concurrent use.
package kernel
