// Package gin adapts the admission pipeline to gin handler chains.
package gin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	goGate "github.com/MrEthical07/goGate"
	"github.com/MrEthical07/goGate/middleware"
)

// IdentityKey is the gin context key under which the verified identity is
// stored for downstream handlers.
const IdentityKey = "goGate.identity"

// Admission returns a gin middleware enforcing authentication and the
// fixed-window quota with the same semantics as the net/http pipeline.
func Admission(gate *goGate.Gate, table *goGate.RouteTable, opts ...middleware.Option) gin.HandlerFunc {
	guard := Guard(gate, table, opts...)
	throttle := Throttle(gate, table, opts...)

	return func(c *gin.Context) {
		guard(c)
		if c.IsAborted() {
			return
		}
		throttle(c)
	}
}

// Guard returns a gin middleware enforcing the authentication stage only.
func Guard(gate *goGate.Gate, table *goGate.RouteTable, opts ...middleware.Option) gin.HandlerFunc {
	inner := middleware.Guard(gate, table, opts...)

	return func(c *gin.Context) {
		passed := false
		inner(passthrough(&passed, c)).ServeHTTP(c.Writer, c.Request)
		if !passed {
			c.Abort()
			return
		}
		if id, ok := goGate.IdentityFromContext(c.Request.Context()); ok {
			c.Set(IdentityKey, id)
		}
	}
}

// Throttle returns a gin middleware enforcing the quota stage only.
func Throttle(gate *goGate.Gate, table *goGate.RouteTable, opts ...middleware.Option) gin.HandlerFunc {
	inner := middleware.Throttle(gate, table, opts...)

	return func(c *gin.Context) {
		passed := false
		inner(passthrough(&passed, c)).ServeHTTP(c.Writer, c.Request)
		if !passed {
			c.Abort()
		}
	}
}

// passthrough marks admission and swaps the possibly-rewritten request back
// onto the gin context so injected values survive into later handlers.
func passthrough(passed *bool, c *gin.Context) http.Handler {
	return http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		*passed = true
		c.Request = r
	})
}
