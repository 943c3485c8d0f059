package middleware

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strings"

	goGate "github.com/MrEthical07/goGate"
)

const deniedMessage = "authentication denied"

// Guard returns middleware enforcing the authentication stage only: Public
// routes pass untouched, the development bypass admits test identities when
// the gate was built with dev mode on, and everything else requires a valid
// bearer token. Verified claims are injected into the request context.
func Guard(gate *goGate.Gate, table *goGate.RouteTable, opts ...Option) func(http.Handler) http.Handler {
	o := buildOptions(opts)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if gate == nil {
				writeDenied(w, http.StatusUnauthorized, deniedMessage)
				return
			}

			if table.Resolve(r.Method, r.URL.Path) == goGate.Public {
				gate.RecordPublicSkip()
				next.ServeHTTP(w, r)
				return
			}

			ctx := requestContext(r, o)

			if gate.DevBypassEnabled() && hasTestIdentity(r) {
				gate.RecordDevBypass(ctx)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			token, _ := bearerToken(r.Header.Get("Authorization"))

			id, err := gate.Authenticate(ctx, token)
			if err != nil {
				writeDenied(w, http.StatusUnauthorized, deniedMessage)
				return
			}

			ctx = goGate.ContextWithIdentity(ctx, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(value string) (string, bool) {
	const bearer = "Bearer "
	if !strings.HasPrefix(value, bearer) {
		return "", false
	}

	token := value[len(bearer):]
	if token == "" {
		return "", false
	}

	return token, true
}

// hasTestIdentity reports whether the request carries any of the dev-mode test
// markers. Checked only after the gate confirms the dev flag was set at Build.
func hasTestIdentity(r *http.Request) bool {
	if r.Header.Get("x-test-user-id") != "" || r.Header.Get("x-test-session-id") != "" {
		return true
	}

	query := r.URL.Query()
	return query.Get("userId") != "" || query.Get("sessionId") != ""
}

func requestContext(r *http.Request, o Options) context.Context {
	ctx := goGate.ContextWithRequestPath(r.Context(), r.URL.Path)
	return goGate.ContextWithClientIP(ctx, clientIP(r, o.TrustXForwardedFor))
}

func clientIP(r *http.Request, trustXFF bool) string {
	if trustXFF {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first := strings.TrimSpace(strings.Split(xff, ",")[0])
			if first != "" {
				return first
			}
		}
	}

	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}

func writeDenied(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
}
