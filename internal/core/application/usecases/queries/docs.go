// Package queries holds the read side of the ledger. Handlers run plain SQL
// against committed state through GORM and never take row locks.
//
// Dispatched quantities are always derived from the entries of notes that are
// not RETURNED. The cached orders.dispatched_quantity column is not read here.
package queries
