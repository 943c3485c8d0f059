package internaldefs

import (
	goGate "github.com/MrEthical07/goGate"
)

// CounterDef defines a public type used by goGate APIs.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   goGate.MetricID
	Name string
	Help string
}

// HistogramDef defines a public type used by goGate APIs.
//
// HistogramDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HistogramDef struct {
	ID   goGate.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the admission gate.
var CounterDefs = []CounterDef{
	{ID: goGate.MetricAuthAdmit, Name: "gogate_auth_admit_total", Help: "Requests admitted with valid credentials."},
	{ID: goGate.MetricAuthMissingCredentials, Name: "gogate_auth_missing_credentials_total", Help: "Requests denied for missing credentials."},
	{ID: goGate.MetricAuthInvalidCredentials, Name: "gogate_auth_invalid_credentials_total", Help: "Requests denied for invalid or expired credentials."},
	{ID: goGate.MetricAuthDevBypass, Name: "gogate_auth_dev_bypass_total", Help: "Requests admitted through the development bypass."},
	{ID: goGate.MetricRateAdmit, Name: "gogate_rate_admit_total", Help: "Requests admitted within the rate window."},
	{ID: goGate.MetricRateQuotaExceeded, Name: "gogate_rate_quota_exceeded_total", Help: "Requests denied for exceeding the window quota."},
	{ID: goGate.MetricPublicSkip, Name: "gogate_public_skip_total", Help: "Requests that skipped admission on public routes."},
}

// HistogramDefs is an exported constant or variable used by the admission gate.
var HistogramDefs = []HistogramDef{
	{ID: goGate.MetricAdmitLatency, Name: "gogate_admit_latency_seconds", Help: "Admission decision latency histogram."},
}

// HistogramBounds is an exported constant or variable used by the admission gate.
var HistogramBounds = []string{
	"0.000005",
	"0.00001",
	"0.000025",
	"0.00005",
	"0.0001",
	"0.00025",
	"0.0005",
	"+Inf",
}

// HistogramBoundSuffix is an exported constant or variable used by the admission gate.
var HistogramBoundSuffix = []string{
	"5us",
	"10us",
	"25us",
	"50us",
	"100us",
	"250us",
	"500us",
	"inf",
}

// NormalizeBuckets describes the normalizebuckets operation and its observable behavior.
//
// NormalizeBuckets may return an error when input validation, dependency calls, or security checks fail.
// NormalizeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets describes the cumulativebuckets operation and its observable behavior.
//
// CumulativeBuckets may return an error when input validation, dependency calls, or security checks fail.
// CumulativeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
