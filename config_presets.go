package goGate

import (
	"crypto/ed25519"
	"crypto/rand"
	"time"
)

/*
====================================
CONFIG PRESETS
====================================
*/

// HighSecurityConfig describes the highsecurityconfig operation and its observable behavior.
//
// HighSecurityConfig may return an error when input validation, dependency calls, or security checks fail.
// HighSecurityConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// The preset signs with a freshly generated ed25519 keypair, keeps tokens
// short-lived with zero leeway, and turns auditing and metrics on. Callers
// that need durable keys must replace the generated pair before Build.
func HighSecurityConfig() Config {
	cfg := defaultConfig()

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		// rand.Reader only fails when the platform entropy source is broken.
		panic("goGate: ed25519 key generation failed: " + err.Error())
	}

	cfg.JWT.SigningMethod = "ed25519"
	cfg.JWT.PrivateKey = priv
	cfg.JWT.PublicKey = pub
	cfg.JWT.AccessTTL = 5 * time.Minute
	cfg.JWT.Leeway = 0

	cfg.RateLimit.Window = time.Minute
	cfg.RateLimit.MaxRequests = 60
	cfg.RateLimit.SweepOnAllow = true

	cfg.Audit.Enabled = true
	cfg.Metrics.Enabled = true
	cfg.Metrics.EnableLatencyHistograms = true

	return cfg
}

// HighThroughputConfig describes the highthroughputconfig operation and its observable behavior.
//
// HighThroughputConfig may return an error when input validation, dependency calls, or security checks fail.
// HighThroughputConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// The preset favors admission speed: symmetric hs256 verification with a
// generated secret, a generous quota, no opportunistic sweeping (rely on the
// janitor), and histograms off.
func HighThroughputConfig() Config {
	cfg := defaultConfig()

	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		panic("goGate: secret generation failed: " + err.Error())
	}

	cfg.JWT.SigningMethod = "hs256"
	cfg.JWT.Secret = secret
	cfg.JWT.AccessTTL = 15 * time.Minute

	cfg.RateLimit.Window = time.Minute
	cfg.RateLimit.MaxRequests = 10_000
	cfg.RateLimit.SweepOnAllow = false

	cfg.Metrics.Enabled = true
	cfg.Metrics.EnableLatencyHistograms = false

	return cfg
}
