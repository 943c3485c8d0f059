// Package zerologadapter provides a [goGate.AuditSink] backed by zerolog.
package zerologadapter

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	goGate "github.com/MrEthical07/goGate"
)

// ZerologSink implements goGate.AuditSink using zerolog
type ZerologSink struct {
	logger zerolog.Logger
}

// New creates a new ZerologSink. If nil is passed, uses zerolog's global logger.
func New(l *zerolog.Logger) *ZerologSink {
	if l == nil {
		l = &log.Logger
	}
	return &ZerologSink{
		logger: *l,
	}
}

// Emit logs one admission event. Denials log at warn level, admits at info.
func (z *ZerologSink) Emit(_ context.Context, event goGate.AuditEvent) {
	var e *zerolog.Event
	if event.Success {
		e = z.logger.Info()
	} else {
		e = z.logger.Warn()
	}

	e = e.Time("timestamp", event.Timestamp).
		Str("client_key", event.ClientKey).
		Str("path", event.Path).
		Str("ip", event.IP).
		Bool("success", event.Success)
	if event.Subject != "" {
		e = e.Str("subject", event.Subject)
	}
	if event.Error != "" {
		e = e.Str("error", event.Error)
	}
	for k, v := range event.Metadata {
		e = e.Str(k, v)
	}
	e.Msg(event.EventType)
}
