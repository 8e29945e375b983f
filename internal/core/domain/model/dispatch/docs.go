// Package dispatch models dispatch notes (challans): records of individual
// shipments against a purchase order.
//
// The package includes:
//   - Note: aggregate root with immutable entries, dates and status
//   - Entry: one shipped line (line item, catalog item, quantity)
//   - Status: closed state machine DRAFT, DISPATCHED, DELIVERED, RETURNED, REJECTED
//   - Number: day-scoped human-readable code, e.g. DN-20240312-0007
//   - CreatedEvent, StatusChangedEvent: facts published after commit
//
// Key business rules:
//   - Entries are written once at creation and never change
//   - Only the RETURNED transition reverses a note's effect, and only once
//   - RETURNED and REJECTED are terminal
package dispatch
