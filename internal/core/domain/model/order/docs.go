// Package order provides domain entities and business logic for order
// dispatch in the delivery system. It implements the Order aggregate root
// with a guarded single-assignment lifecycle.
//
// The package includes:
//   - Order: the aggregate root managing identity, assignment state, and audit log
//   - Status: the assignment state machine (Unassigned -> Assigned, exactly once)
//   - PricingSnapshot: the denormalized pricing and destination snapshot,
//     created alongside the order and never mutated afterwards
//   - AuditEntry: an append-only timestamped log line
//
// Key business rules:
//   - An order transitions Unassigned -> Assigned at most once; a second
//     assignment attempt is a conflict, never a reassignment
//   - The pricing snapshot is immutable after creation
//   - The audit log is append-only and ordered
//
// Client-reported accept/reject/deliver events are forwarded to dispatcher
// consoles by the notification layer but are not persisted on the Order;
// that lifecycle is owned by a separate collaborator.
package order
