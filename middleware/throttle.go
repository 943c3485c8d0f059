package middleware

import (
	"fmt"
	"net/http"
	"strconv"

	goGate "github.com/MrEthical07/goGate"
)

// Throttle returns middleware enforcing the fixed-window quota only. Public
// routes pass untouched. The client key comes from the verified identity when
// a Guard upstream injected one, otherwise from the client address.
//
// Throttle does not record the public-skip metric; when composed behind Guard
// the skip was already counted once.
func Throttle(gate *goGate.Gate, table *goGate.RouteTable, opts ...Option) func(http.Handler) http.Handler {
	o := buildOptions(opts)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if gate == nil {
				writeDenied(w, http.StatusUnauthorized, deniedMessage)
				return
			}

			if table.Resolve(r.Method, r.URL.Path) == goGate.Public {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			if _, ok := goGate.IdentityFromContext(ctx); !ok {
				ctx = requestContext(r, o)
				r = r.WithContext(ctx)
			}

			decision, err := gate.Allow(ctx, gate.ClientKey(ctx))

			if !o.SuppressRateHeaders {
				w.Header().Set("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
				w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
				w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(decision.ResetAt.Unix(), 10))
			}

			if err != nil {
				w.Header().Set("Retry-After", strconv.Itoa(decision.RetryAfterSeconds))
				writeQuotaExceeded(w, decision.RetryAfterSeconds)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeQuotaExceeded(w http.ResponseWriter, retryAfter int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)
	fmt.Fprintf(w, `{"message":"too many requests","retryAfterSeconds":%d}`+"\n", retryAfter)
}
