package goGate

import "errors"

var (
	// ErrMissingCredentials is an exported constant or variable used by the admission gate.
	ErrMissingCredentials = errors.New("missing credentials")
	// ErrInvalidCredentials is an exported constant or variable used by the admission gate.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrQuotaExceeded is an exported constant or variable used by the admission gate.
	ErrQuotaExceeded = errors.New("quota exceeded")
	// ErrGateNotReady is an exported constant or variable used by the admission gate.
	ErrGateNotReady = errors.New("gate not initialized")
	// ErrInvalidVisibility is an exported constant or variable used by the admission gate.
	ErrInvalidVisibility = errors.New("invalid route visibility")
)
