package goGate

import "time"

// SecurityReport defines a public type used by goGate APIs.
//
// SecurityReport instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type SecurityReport struct {
	SigningAlgorithm  string
	AccessTTL         time.Duration
	Leeway            time.Duration
	DevBypassEnabled  bool
	Window            time.Duration
	MaxRequests       int
	SweepOnAllow      bool
	AuditingActive    bool
	MetricsActive     bool
	LatencyHistograms bool
}

// SecurityReport describes the securityreport operation and its observable behavior.
//
// SecurityReport may return an error when input validation, dependency calls, or security checks fail.
// SecurityReport does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// The report reflects the configuration frozen at Build; it exists for
// startup logging and operational review, not for runtime decisions.
func (g *Gate) SecurityReport() SecurityReport {
	if g == nil {
		return SecurityReport{}
	}

	return SecurityReport{
		SigningAlgorithm:  g.config.JWT.SigningMethod,
		AccessTTL:         g.config.JWT.AccessTTL,
		Leeway:            g.config.JWT.Leeway,
		DevBypassEnabled:  g.config.Dev.Enabled,
		Window:            g.config.RateLimit.Window,
		MaxRequests:       g.config.RateLimit.MaxRequests,
		SweepOnAllow:      g.config.RateLimit.SweepOnAllow,
		AuditingActive:    g.audit != nil,
		MetricsActive:     g.metrics != nil,
		LatencyHistograms: g.metrics != nil && g.metrics.LatencyEnabled(),
	}
}
