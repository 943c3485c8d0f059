package goGate

import (
	"context"
	"strconv"
	"time"

	"github.com/MrEthical07/goGate/jwt"
)

// Gate defines a public type used by goGate APIs.
//
// Gate instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Gate struct {
	config     Config
	jwtManager *jwt.Manager
	windows    *windowStore
	audit      *auditDispatcher
	metrics    *Metrics
	now        func() time.Time
}

// Close describes the close operation and its observable behavior.
//
// Close drains and stops the audit dispatcher. The window store needs no
// teardown: it is process-lifetime memory.
func (g *Gate) Close() {
	if g == nil {
		return
	}
	if g.audit != nil {
		g.audit.Close()
	}
}

// AuditDropped describes the auditdropped operation and its observable behavior.
func (g *Gate) AuditDropped() uint64 {
	if g == nil || g.audit == nil {
		return 0
	}
	return g.audit.Dropped()
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
func (g *Gate) MetricsSnapshot() MetricsSnapshot {
	if g == nil || g.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return g.metrics.Snapshot()
}

func (g *Gate) metricInc(id MetricID) {
	if g == nil || g.metrics == nil {
		return
	}
	g.metrics.Inc(id)
}

// DevBypassEnabled reports whether the development-mode authentication bypass
// was enabled at Build. Immutable afterwards; the middleware consults it once
// per request.
func (g *Gate) DevBypassEnabled() bool {
	return g != nil && g.config.Dev.Enabled
}

// Authenticate describes the authenticate operation and its observable behavior.
//
// Authenticate may return an error when input validation, dependency calls, or security checks fail.
// Authenticate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// An empty token fails with [ErrMissingCredentials]. Every verification
// failure — bad signature, malformed structure, expiry in the past — folds
// into [ErrInvalidCredentials] so callers cannot distinguish which check
// failed.
func (g *Gate) Authenticate(ctx context.Context, token string) (*Identity, error) {
	if g == nil || g.jwtManager == nil {
		return nil, ErrGateNotReady
	}
	if g.metrics != nil && g.metrics.LatencyEnabled() {
		start := time.Now()
		defer g.metrics.Observe(MetricAdmitLatency, time.Since(start))
	}

	if token == "" {
		g.metricInc(MetricAuthMissingCredentials)
		g.emitAudit(ctx, AuditAuthDenied, false, "", "", ErrMissingCredentials)
		return nil, ErrMissingCredentials
	}

	claims, err := g.jwtManager.Parse(token)
	if err != nil {
		g.metricInc(MetricAuthInvalidCredentials)
		g.emitAudit(ctx, AuditAuthDenied, false, "", "", ErrInvalidCredentials)
		return nil, ErrInvalidCredentials
	}

	id := &Identity{
		Subject:   claims.Subject,
		ExpiresAt: claims.ExpiresAt,
		Claims:    claims.Raw,
	}

	g.metricInc(MetricAuthAdmit)
	g.emitAudit(ctx, AuditAuthAdmit, true, id.ClientKey(), id.Subject, nil)

	return id, nil
}

// RecordDevBypass counts and audits one development-mode bypass admission.
// Called by the middleware; never reachable when the dev flag is unset.
func (g *Gate) RecordDevBypass(ctx context.Context) {
	if g == nil {
		return
	}
	g.metricInc(MetricAuthDevBypass)
	g.emitAudit(ctx, AuditAuthBypass, true, "", "", nil)
}

// RecordPublicSkip counts one request that bypassed both gates because its
// route is marked Public.
func (g *Gate) RecordPublicSkip() {
	g.metricInc(MetricPublicSkip)
}

// Allow describes the allow operation and its observable behavior.
//
// Allow may return an error when input validation, dependency calls, or security checks fail.
// Allow mutates only the gate's own window store and can be used concurrently; the per-key
// fetch-check-increment sequence is atomic under the store mutex.
//
// On denial the error is [ErrQuotaExceeded] and the returned decision carries
// RetryAfterSeconds for backoff guidance.
func (g *Gate) Allow(ctx context.Context, key string) (RateDecision, error) {
	if g == nil || g.windows == nil {
		return RateDecision{}, ErrGateNotReady
	}
	if g.metrics != nil && g.metrics.LatencyEnabled() {
		start := time.Now()
		defer g.metrics.Observe(MetricAdmitLatency, time.Since(start))
	}

	decision := g.windows.allow(key)
	if !decision.Allowed {
		g.metricInc(MetricRateQuotaExceeded)
		g.emitAuditQuota(ctx, key, decision)
		return decision, ErrQuotaExceeded
	}

	g.metricInc(MetricRateAdmit)
	return decision, nil
}

// ClientKey resolves the rate-limit bucketing key for the current request:
// "user:"+subject when an [Identity] is attached to ctx, otherwise "ip:" plus
// the origin address from [ContextWithClientIP]. When neither is resolvable
// the key collapses to the "ip:unknown" sentinel — a degenerate shared bucket,
// not an error.
func (g *Gate) ClientKey(ctx context.Context) string {
	if id, ok := IdentityFromContext(ctx); ok {
		if key := id.ClientKey(); key != "" {
			return key
		}
	}

	ip := clientIPFromContext(ctx)
	if ip == "" {
		ip = "unknown"
	}
	return "ip:" + ip
}

// WindowSnapshot returns a read-only copy of one client key's counter state,
// or false when no live entry exists for the key.
func (g *Gate) WindowSnapshot(key string) (WindowSnapshot, bool) {
	if g == nil || g.windows == nil {
		return WindowSnapshot{}, false
	}
	return g.windows.snapshot(key)
}

// StartJanitor launches a background sweep of expired window entries every
// interval, stopping when ctx is done. Optional: the on-request sweep and
// lazy expiry already keep counts correct without it.
func (g *Gate) StartJanitor(ctx context.Context, every time.Duration) {
	if g == nil || g.windows == nil {
		return
	}
	g.windows.startJanitor(ctx, every)
}

func (g *Gate) emitAudit(ctx context.Context, eventType string, success bool, clientKey, subject string, cause error) {
	if g == nil || g.audit == nil {
		return
	}

	event := AuditEvent{
		Timestamp: g.now(),
		EventType: eventType,
		ClientKey: clientKey,
		Subject:   subject,
		Path:      requestPathFromContext(ctx),
		IP:        clientIPFromContext(ctx),
		Success:   success,
	}
	if cause != nil {
		event.Error = cause.Error()
	}

	g.audit.Emit(ctx, event)
}

func (g *Gate) emitAuditQuota(ctx context.Context, key string, decision RateDecision) {
	if g == nil || g.audit == nil {
		return
	}

	g.audit.Emit(ctx, AuditEvent{
		Timestamp: g.now(),
		EventType: AuditQuotaExceeded,
		ClientKey: key,
		Path:      requestPathFromContext(ctx),
		IP:        clientIPFromContext(ctx),
		Success:   false,
		Error:     ErrQuotaExceeded.Error(),
		Metadata: map[string]string{
			"retry_after_seconds": strconv.Itoa(decision.RetryAfterSeconds),
		},
	})
}
