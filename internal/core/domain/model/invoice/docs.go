// Package invoice provides the shipment record aggregate and the stage engine
// that moves it from receipt to customs-ready dispatch.
//
// The package includes:
//   - Invoice: the aggregate root holding stage, inspection requirements,
//     inspection results, completion timestamps and the transport flag
//   - Stage: the five fixed workflow steps, in order
//   - InspectionStatus and InspectionKind: QC and BV sub-workflow results
//   - TransportStatus: whether a vehicle was requested or booked for the invoice
//
// Key business rules:
//   - Stage never moves backwards; corrections go through inspection updates
//   - Inspection stages whose requirement flag is off are stamped and skipped
//   - A stage's completion timestamp is written once, at or before leaving it
//   - Ready-for-transport needs explicit confirmation and passed inspections
//     for every required kind
package invoice
