package goGate

import "time"

// Identity is the decoded, verified claim set attached to a request after a
// successful [Gate.Authenticate]. It lives in the request context for the
// remainder of the request and is never persisted.
type Identity struct {
	// Subject is the token's subject identifier ("sub").
	Subject string
	// ExpiresAt is the token's expiry instant ("exp").
	ExpiresAt time.Time
	// Claims carries every decoded claim, including registered ones. The gate
	// treats everything beyond subject and expiry as opaque.
	Claims map[string]any
}

// ClientKey returns the rate-limit bucketing key for this identity.
func (id *Identity) ClientKey() string {
	if id == nil || id.Subject == "" {
		return ""
	}
	return "user:" + id.Subject
}

// RateDecision is returned by [Gate.Allow]. It carries everything the HTTP
// layer needs for X-RateLimit-* headers and Retry-After guidance.
type RateDecision struct {
	Allowed bool
	// Limit is the configured maximum number of requests per window.
	Limit int
	// Remaining is how many requests are left in the current window. Zero when
	// the decision is a denial.
	Remaining int
	// ResetAt is the instant the current window ends.
	ResetAt time.Time
	// RetryAfterSeconds is ceil(ResetAt - now) in whole seconds. Only
	// meaningful on denials; callers surface it as backoff guidance.
	RetryAfterSeconds int
}

// WindowSnapshot is a read-only copy of one client key's counter state,
// exposed through [Gate.WindowSnapshot] for operational debugging.
type WindowSnapshot struct {
	Key     string
	Count   int
	ResetAt time.Time
}
