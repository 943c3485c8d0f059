package zerologadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"

	goGate "github.com/MrEthical07/goGate"
)

func TestEmitLogsDenialAtWarn(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	sink := New(&logger)

	sink.Emit(context.Background(), goGate.AuditEvent{
		Timestamp: time.Unix(1700000000, 0),
		EventType: goGate.AuditQuotaExceeded,
		ClientKey: "user:alice",
		Path:      "/orders",
		IP:        "203.0.113.1",
		Success:   false,
		Error:     "quota exceeded",
		Metadata:  map[string]string{"retry_after_seconds": "10"},
	})

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("output is not one JSON line: %v", err)
	}
	if line["level"] != "warn" {
		t.Fatalf("expected warn level, got %v", line["level"])
	}
	if line["message"] != goGate.AuditQuotaExceeded {
		t.Fatalf("unexpected message: %v", line["message"])
	}
	if line["client_key"] != "user:alice" {
		t.Fatalf("unexpected client_key: %v", line["client_key"])
	}
	if line["retry_after_seconds"] != "10" {
		t.Fatalf("unexpected metadata: %v", line["retry_after_seconds"])
	}
}

func TestEmitLogsAdmitAtInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	sink := New(&logger)

	sink.Emit(context.Background(), goGate.AuditEvent{
		Timestamp: time.Unix(1700000000, 0),
		EventType: goGate.AuditAuthAdmit,
		ClientKey: "user:bob",
		Subject:   "bob",
		Success:   true,
	})

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("output is not one JSON line: %v", err)
	}
	if line["level"] != "info" {
		t.Fatalf("expected info level, got %v", line["level"])
	}
	if line["subject"] != "bob" {
		t.Fatalf("unexpected subject: %v", line["subject"])
	}
	if _, present := line["error"]; present {
		t.Fatal("error field should be absent on success")
	}
}
