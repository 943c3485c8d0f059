package middleware

// Options holds the HTTP-level knobs shared by [Admission], [Guard], and
// [Throttle]. The zero value is the production default: origin addresses come
// from the connection (X-Forwarded-For is untrusted) and X-RateLimit-* headers
// are emitted.
type Options struct {
	// TrustXForwardedFor resolves the client origin from the first entry of the
	// X-Forwarded-For header when present. Enable only behind a proxy that
	// strips inbound values; a direct client can otherwise choose its own
	// rate-limit bucket.
	TrustXForwardedFor bool
	// SuppressRateHeaders disables the X-RateLimit-Limit / -Remaining / -Reset
	// response headers on gated routes.
	SuppressRateHeaders bool
}

// Option is a functional option applied by the middleware constructors.
type Option func(*Options)

// WithTrustXForwardedFor enables origin resolution from X-Forwarded-For.
func WithTrustXForwardedFor() Option {
	return func(o *Options) {
		o.TrustXForwardedFor = true
	}
}

// WithoutRateHeaders suppresses the X-RateLimit-* response headers.
func WithoutRateHeaders() Option {
	return func(o *Options) {
		o.SuppressRateHeaders = true
	}
}

func buildOptions(opts []Option) Options {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
