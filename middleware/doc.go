// Package middleware exposes net/http adapters for the goGate admission
// pipeline: route-visibility check, bearer-token authentication (with the
// environment-gated development bypass), then per-client fixed-window rate
// limiting.
//
// # Middlewares
//
//   - [Admission] — the full ordered pipeline (auth gate then rate limiter).
//   - [Guard] — authentication stage only.
//   - [Throttle] — rate-limit stage only; keys off an Identity injected by a
//     preceding [Guard] when present.
//
// Each middleware resolves the route's visibility first: Public routes skip
// everything, including counter updates.
//
// # Architecture boundaries
//
// This package translates HTTP semantics into Gate calls. It does NOT implement
// admission logic itself — all decisions are delegated to Gate.Authenticate and
// Gate.Allow.
//
// # What this package must NOT do
//
//   - Parse or create JWTs directly (delegates to Gate).
//   - Touch the window store (Gate handles all shared state).
//   - Distinguish missing from invalid credentials in responses (both are one
//     generic 401).
package middleware
