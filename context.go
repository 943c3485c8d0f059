package goGate

import "context"

type identityContextKey struct{}
type clientIPContextKey struct{}
type requestPathContextKey struct{}

// ContextWithIdentity attaches verified claims to ctx. The middleware calls it
// after a successful token verification; downstream handlers and the rate
// limiter read the identity back through [IdentityFromContext].
func ContextWithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, id)
}

// IdentityFromContext returns the claims attached by [ContextWithIdentity],
// or (nil, false) when the request was admitted without authentication
// (public route or development bypass).
func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	if ctx == nil {
		return nil, false
	}

	id, ok := ctx.Value(identityContextKey{}).(*Identity)
	if !ok || id == nil {
		return nil, false
	}
	return id, true
}

// ContextWithClientIP attaches the caller's origin address to ctx. The
// middleware resolves it from the connection (optionally X-Forwarded-For) and
// the gate falls back to it for anonymous rate-limit bucketing.
func ContextWithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPContextKey{}, ip)
}

// ContextWithRequestPath attaches the matched request path to ctx so audit
// events can record which route a denial happened on.
func ContextWithRequestPath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, requestPathContextKey{}, path)
}

func requestPathFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	path, _ := ctx.Value(requestPathContextKey{}).(string)
	return path
}

func clientIPFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	ip, _ := ctx.Value(clientIPContextKey{}).(string)
	return ip
}
