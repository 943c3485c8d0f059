package goGate

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config defines a public type used by goGate APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	JWT       JWTConfig
	RateLimit RateLimitConfig
	Dev       DevConfig
	Audit     AuditConfig
	Metrics   MetricsConfig
}

/*
====================================
JWT CONFIG
====================================
*/

// JWTConfig defines a public type used by goGate APIs.
//
// JWTConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type JWTConfig struct {
	SigningMethod string // "hs256" (default), "ed25519" optional
	Secret        []byte // hs256 secret (sign + verify)
	PrivateKey    []byte // ed25519
	PublicKey     []byte // ed25519
	Issuer        string
	Audience      string
	Leeway        time.Duration
	AccessTTL     time.Duration // token lifetime when minting through jwt.Manager.Create
}

/*
====================================
RATE LIMIT CONFIG
====================================
*/

// RateLimitConfig defines a public type used by goGate APIs.
//
// RateLimitConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type RateLimitConfig struct {
	Window      time.Duration
	MaxRequests int
	// SweepOnAllow enables the opportunistic deletion of expired window entries
	// during each admission check. Correctness never depends on it: expired
	// entries behave as fresh on read regardless.
	SweepOnAllow bool
}

// DevConfig defines a public type used by goGate APIs.
//
// DevConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type DevConfig struct {
	// Enabled turns on the test-identity authentication bypass (x-test-user-id /
	// x-test-session-id headers, userId / sessionId query parameters). The flag
	// is read once at Build and must never be set in production.
	Enabled bool
}

// AuditConfig defines a public type used by goGate APIs.
//
// AuditConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig defines a public type used by goGate APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

/*
====================================
DEFAULT CONFIG
====================================
*/

func defaultConfig() Config {
	return Config{
		JWT: JWTConfig{
			SigningMethod: "hs256",
			Leeway:        0,
			AccessTTL:     5 * time.Minute,
		},
		RateLimit: RateLimitConfig{
			Window:       15 * time.Minute,
			MaxRequests:  100,
			SweepOnAllow: true,
		},
		Dev: DevConfig{
			Enabled: false,
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 false,
			EnableLatencyHistograms: false,
		},
	}
}

// DefaultConfig describes the defaultconfig operation and its observable behavior.
//
// DefaultConfig may return an error when input validation, dependency calls, or security checks fail.
// DefaultConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func DefaultConfig() Config {
	return defaultConfig()
}

func cloneConfig(cfg Config) Config {
	out := cfg
	out.JWT.Secret = cloneBytes(cfg.JWT.Secret)
	out.JWT.PrivateKey = cloneBytes(cfg.JWT.PrivateKey)
	out.JWT.PublicKey = cloneBytes(cfg.JWT.PublicKey)
	return out
}

func cloneBytes(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

/*
====================================
ENV LOADING
====================================
*/

// FromEnv describes the fromenv operation and its observable behavior.
//
// FromEnv may return an error when input validation, dependency calls, or security checks fail.
// FromEnv does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// Recognized variables: JWT_SECRET, RATE_LIMIT_WINDOW_MS (default 900000),
// RATE_LIMIT_MAX_REQUESTS (default 100), GOGATE_DEV_MODE. A .env file in the
// working directory is honored when present.
func FromEnv() (Config, error) {
	_ = godotenv.Load()

	cfg := defaultConfig()

	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.JWT.Secret = []byte(secret)
	}

	windowMS, err := strconv.Atoi(getEnv("RATE_LIMIT_WINDOW_MS", "900000"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid RATE_LIMIT_WINDOW_MS: %w", err)
	}
	if windowMS <= 0 {
		return Config{}, errors.New("RATE_LIMIT_WINDOW_MS must be > 0")
	}
	cfg.RateLimit.Window = time.Duration(windowMS) * time.Millisecond

	maxRequests, err := strconv.Atoi(getEnv("RATE_LIMIT_MAX_REQUESTS", "100"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid RATE_LIMIT_MAX_REQUESTS: %w", err)
	}
	if maxRequests <= 0 {
		return Config{}, errors.New("RATE_LIMIT_MAX_REQUESTS must be > 0")
	}
	cfg.RateLimit.MaxRequests = maxRequests

	cfg.Dev.Enabled = parseBoolEnv("GOGATE_DEV_MODE")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func parseBoolEnv(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

/*
====================================
VALIDATION
====================================
*/

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
// Validate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Config) Validate() error {
	// JWT
	if c.JWT.SigningMethod != "hs256" && c.JWT.SigningMethod != "ed25519" {
		return errors.New("unsupported JWT signing method")
	}
	if c.JWT.SigningMethod == "hs256" && len(c.JWT.Secret) == 0 {
		return errors.New("hs256 requires Secret")
	}
	if c.JWT.SigningMethod == "ed25519" && len(c.JWT.PublicKey) == 0 {
		return errors.New("ed25519 requires PublicKey")
	}
	if c.JWT.Leeway < 0 || c.JWT.Leeway > 2*time.Minute {
		return errors.New("JWT Leeway must be within [0, 2m]")
	}
	if c.JWT.AccessTTL <= 0 {
		return errors.New("JWT AccessTTL must be > 0")
	}
	if strings.TrimSpace(c.JWT.Issuer) == "" && c.JWT.Issuer != "" {
		return errors.New("JWT Issuer must not be blank")
	}
	if strings.TrimSpace(c.JWT.Audience) == "" && c.JWT.Audience != "" {
		return errors.New("JWT Audience must not be blank")
	}

	// Rate limit
	if c.RateLimit.Window <= 0 {
		return errors.New("RateLimit Window must be > 0")
	}
	if c.RateLimit.MaxRequests <= 0 {
		return errors.New("RateLimit MaxRequests must be > 0")
	}

	// Audit
	if c.Audit.Enabled && c.Audit.BufferSize <= 0 {
		return errors.New("Audit BufferSize must be > 0 when Audit is enabled")
	}

	return nil
}
