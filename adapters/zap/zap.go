// Package zapadapter provides a [goGate.AuditSink] backed by a zap.Logger.
package zapadapter

import (
	"context"

	"go.uber.org/zap"

	goGate "github.com/MrEthical07/goGate"
)

// ZapSink is an adapter that implements the goGate.AuditSink interface
// using a structured zap.Logger internally.
type ZapSink struct {
	logger *zap.Logger
}

// New creates a new ZapSink from a zap.Logger.
//
// If a nil logger is provided, it uses zap.NewNop() internally, which
// is a no-op logger that discards all messages.
//
// Example:
//
//	sink := zapadapter.New(logger)
func New(l *zap.Logger) *ZapSink {
	if l == nil {
		l = zap.NewNop()
	}
	return &ZapSink{logger: l}
}

// Emit logs one admission event. Denials log at warn level, admits at info.
func (z *ZapSink) Emit(_ context.Context, event goGate.AuditEvent) {
	fields := []zap.Field{
		zap.Time("timestamp", event.Timestamp),
		zap.String("client_key", event.ClientKey),
		zap.String("path", event.Path),
		zap.String("ip", event.IP),
		zap.Bool("success", event.Success),
	}
	if event.Subject != "" {
		fields = append(fields, zap.String("subject", event.Subject))
	}
	if event.Error != "" {
		fields = append(fields, zap.String("error", event.Error))
	}
	for k, v := range event.Metadata {
		fields = append(fields, zap.String(k, v))
	}

	if event.Success {
		z.logger.Info(event.EventType, fields...)
		return
	}
	z.logger.Warn(event.EventType, fields...)
}
