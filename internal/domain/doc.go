// Package domain contains the core entities and value objects for sqsbatch.
//
// This package is the innermost layer. It has no dependencies on
// infrastructure concerns (AWS, HTTP, logging) and contains only the
// message model, the buffer configuration and the error taxonomy.
//
// # Entities
//
//   - [Item]: one message queued for batched delivery
//   - [Attribute]: a typed message attribute (string, number, binary, lists)
//   - [Extra]: transport-specific per-item fields (FIFO group/dedup ids, delay)
//   - [Config]: immutable buffer configuration and its bounds
//   - [SendResult]: what the transport reported for one batched call
//   - [FlushOutcome], [FlushReport]: per-attempt and per-flush results
package domain
