// Package services holds pure domain logic that spans the order and dispatch
// aggregates.
//
// The package includes:
//   - FulfillmentPlanner: per-line ordered, dispatched and remaining quantities
//   - DispatchPolicy: resolves a requested shipment against an order and its plan
//
// Nothing here touches storage; callers load state inside their transaction
// and pass it in.
package services
