package middleware

import (
	"net/http"

	goGate "github.com/MrEthical07/goGate"
)

// Admission returns the full pipeline: authentication first, then the
// fixed-window quota. A request that fails authentication never consumes
// quota, and a request over quota is rejected even with valid credentials.
func Admission(gate *goGate.Gate, table *goGate.RouteTable, opts ...Option) func(http.Handler) http.Handler {
	guard := Guard(gate, table, opts...)
	throttle := Throttle(gate, table, opts...)

	return func(next http.Handler) http.Handler {
		return guard(throttle(next))
	}
}
