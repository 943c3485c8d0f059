package goGate

import (
	"fmt"
	"strings"
	"time"
)

/*
====================================
CONFIG LINTING
====================================
*/

// LintSeverity defines a public type used by goGate APIs.
//
// LintSeverity instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type LintSeverity int

const (
	LintInfo LintSeverity = iota
	LintWarn
	LintHigh
)

// String describes the string operation and its observable behavior.
//
// String may return an error when input validation, dependency calls, or security checks fail.
// String does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s LintSeverity) String() string {
	switch s {
	case LintInfo:
		return "INFO"
	case LintWarn:
		return "WARN"
	case LintHigh:
		return "HIGH"
	default:
		return "UNKNOWN"
	}
}

// ConfigWarning defines a public type used by goGate APIs.
//
// ConfigWarning instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type ConfigWarning struct {
	Code     string
	Severity LintSeverity
	Message  string
}

// Warnings defines a public type used by goGate APIs.
//
// Warnings instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Warnings []ConfigWarning

// Codes describes the codes operation and its observable behavior.
//
// Codes may return an error when input validation, dependency calls, or security checks fail.
// Codes does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (ws Warnings) Codes() []string {
	out := make([]string, 0, len(ws))
	for _, w := range ws {
		out = append(out, w.Code)
	}
	return out
}

// BySeverity describes the byseverity operation and its observable behavior.
//
// BySeverity may return an error when input validation, dependency calls, or security checks fail.
// BySeverity does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (ws Warnings) BySeverity(min LintSeverity) Warnings {
	out := make(Warnings, 0, len(ws))
	for _, w := range ws {
		if w.Severity >= min {
			out = append(out, w)
		}
	}
	return out
}

// AsError describes the aserror operation and its observable behavior.
//
// AsError may return an error when input validation, dependency calls, or security checks fail.
// AsError does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (ws Warnings) AsError(min LintSeverity) error {
	filtered := ws.BySeverity(min)
	if len(filtered) == 0 {
		return nil
	}
	parts := make([]string, 0, len(filtered))
	for _, w := range filtered {
		parts = append(parts, fmt.Sprintf("[%s] %s: %s", w.Severity, w.Code, w.Message))
	}
	return fmt.Errorf("config lint: %s", strings.Join(parts, "; "))
}

// Lint describes the lint operation and its observable behavior.
//
// Lint may return an error when input validation, dependency calls, or security checks fail.
// Lint does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// Lint never fails a config that Validate accepts; it only reports settings
// that are risky or wasteful in production.
func (c *Config) Lint() Warnings {
	var ws Warnings

	if c.Dev.Enabled {
		ws = append(ws, ConfigWarning{
			Code:     "dev_mode_enabled",
			Severity: LintHigh,
			Message:  "dev-mode bypass accepts unauthenticated test identities; never enable in production",
		})
	}

	if c.JWT.SigningMethod == "hs256" {
		ws = append(ws, ConfigWarning{
			Code:     "signing_hs256",
			Severity: LintInfo,
			Message:  "hs256 is symmetric; any holder of the secret can mint tokens, consider ed25519",
		})
		if len(c.JWT.Secret) > 0 && len(c.JWT.Secret) < 32 {
			ws = append(ws, ConfigWarning{
				Code:     "secret_short",
				Severity: LintHigh,
				Message:  fmt.Sprintf("hs256 secret is %d bytes; use at least 32", len(c.JWT.Secret)),
			})
		}
	}

	if c.JWT.Leeway > 60*time.Second {
		ws = append(ws, ConfigWarning{
			Code:     "leeway_large",
			Severity: LintWarn,
			Message:  fmt.Sprintf("clock leeway of %s extends the usable life of expired tokens", c.JWT.Leeway),
		})
	}

	if c.JWT.AccessTTL > time.Hour {
		ws = append(ws, ConfigWarning{
			Code:     "access_ttl_long",
			Severity: LintWarn,
			Message:  fmt.Sprintf("access tokens live %s; long-lived tokens widen the replay window", c.JWT.AccessTTL),
		})
	}

	if c.RateLimit.Window > 0 && c.RateLimit.Window < time.Second {
		ws = append(ws, ConfigWarning{
			Code:     "window_short",
			Severity: LintWarn,
			Message:  fmt.Sprintf("rate-limit window of %s resets faster than Retry-After can express", c.RateLimit.Window),
		})
	}

	if c.RateLimit.MaxRequests > 1_000_000 {
		ws = append(ws, ConfigWarning{
			Code:     "quota_large",
			Severity: LintInfo,
			Message:  fmt.Sprintf("quota of %d per window is effectively unlimited", c.RateLimit.MaxRequests),
		})
	}

	if !c.RateLimit.SweepOnAllow {
		ws = append(ws, ConfigWarning{
			Code:     "sweep_disabled",
			Severity: LintInfo,
			Message:  "expired window entries are only reclaimed by the janitor or on key reuse",
		})
	}

	if !c.Audit.Enabled {
		ws = append(ws, ConfigWarning{
			Code:     "audit_disabled",
			Severity: LintInfo,
			Message:  "denials will not be recorded anywhere",
		})
	}

	return ws
}
