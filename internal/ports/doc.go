// Package ports defines the interfaces (ports) that connect the buffer core
// to infrastructure adapters.
//
// # Port Interfaces
//
//   - [BatchSender]: performs one batched send and reports per-item outcomes
//   - [SuccessObserver]: notified with the ids delivered on each attempt
//   - [DropObserver]: optionally notified with items given up on
//   - [FlushObserver]: optionally notified with each flush summary
//   - [Sleeper]: pauses between attempts
//
// # Usage
//
// The application layer (internal/app) depends only on these interfaces.
// Adapters (internal/adapters) implement them with the AWS SDK, Prometheus,
// and so on, which keeps the retry logic testable with fakes.
package ports
