// Package goGate provides a request-admission gate for HTTP services: bearer-token
// authentication with an environment-gated development bypass, followed by a
// per-client fixed-window rate limiter keyed by authenticated subject (falling
// back to network origin).
//
// The package is designed for concurrent server workloads: Gate methods are safe to
// call from multiple goroutines after initialization through [Builder.Build].
//
// # Architecture boundaries
//
// goGate is the public surface. It exposes [Gate], [Builder], [Config], [RouteTable],
// and value types (Identity, RateDecision, MetricsSnapshot, AuditEvent). HTTP
// translation lives in the middleware subpackages; metric export lives under
// metrics/export; audit sink adapters live under adapters/.
//
// # What this package must NOT do
//
//   - Perform network or disk I/O. Admission decisions are CPU-bound (one signature
//     check, one mutex-guarded counter update) and never block unboundedly.
//   - Persist rate-limit counters or share them across processes. The window store
//     is process-lifetime memory only.
//   - Issue or refresh tokens as a service. jwt.Manager.Create exists for tests,
//     examples, and load tooling only.
//
// # Performance contract
//
// Authenticate and Allow are the hot path. Authenticate allocates only the returned
// Identity; Allow takes one store mutex acquisition per request. Neither touches
// the network.
package goGate
