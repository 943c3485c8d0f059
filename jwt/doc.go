// Package jwt verifies bearer tokens against a configured secret (HS256) or
// public key (Ed25519) with strict validation semantics, and mints signed
// tokens for tests, examples, and load tooling.
package jwt
