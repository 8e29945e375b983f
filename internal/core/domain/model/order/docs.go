// Package order models the buyer purchase order as seen by the fulfillment
// ledger.
//
// The package includes:
//   - Order: aggregate root holding the line items and the cached aggregate
//     dispatched quantity
//   - LineItem: one product line with its own ordered quantity and unit price
//   - Status: Draft -> Open -> Cancelled lifecycle owned by upstream order management
//
// Key business rules:
//   - Only Open orders accept dispatches
//   - The aggregate dispatched quantity never exceeds the total ordered quantity
//     and never goes negative
//   - Line items are immutable once the order leaves Draft
package order
