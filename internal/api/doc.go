// Package api implements the request engine for the MasHub API. Every
// resource call passes through [Client.Execute], which builds the URL,
// injects authentication headers, paces outbound requests, bounds each
// attempt with a timeout, retries with exponential backoff and classifies
// failures into the taxonomy defined by package apierrors.
//
// # Client Creation
//
// The package provides two ways to create a client:
//
//   - [NewClient]: Struct-based configuration for explicit setup.
//   - [New]: Functional options applied over [DefaultConfig].
//
// Both require an API key, sent as a Bearer token on every request.
//
// # Pacing
//
// Before every attempt the client waits on a [Pacer] so dispatches are at
// least [MinRequestInterval] apart. Unless [WithPacer] is used, all clients
// in the process share one pacer.
//
// # Retry Behavior
//
// A call makes 1 + retries attempts. Before retry k the client sleeps
// 100ms * 2^(k-1) (100ms, 200ms, 400ms, ...). Under [RetryAll], the default,
// every failure is retried, including 401 and 400 responses; [RetryTransient]
// limits retries to network failures, 429 and 5xx. When the budget is spent
// the last error is returned unchanged.
//
// Each attempt gets a fresh timeout. An expired attempt is a retryable
// network failure; cancellation of the caller's context ends the call.
//
// # Thread Safety
//
// The [Client] type is safe for concurrent use. Multiple goroutines may call
// methods on a single Client simultaneously.
package api
