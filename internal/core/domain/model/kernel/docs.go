// Package kernel provides the primitives shared by every aggregate of the
// fulfillment ledger:
//   - UUID: identifier value object with validation and a total order used for
//     deterministic row locking
//   - DomainEvent / EventSource: the contract between aggregates that record
//     events and the unit of work that publishes them after commit
package kernel
