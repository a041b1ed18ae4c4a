package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestGet_ReturnsStableLogger(t *testing.T) {
	if Get() != Get() {
		t.Error("Get must hand out the same logger instance")
	}

	// Level helpers must work through the returned pointer.
	Info("smoke", "key", "value")
	Warn("smoke")
	Error("smoke", nil)
	Debug("smoke", "n", 3)
}

func TestEmit_PairsKeyValues(t *testing.T) {
	var buf bytes.Buffer
	l := zerolog.New(&buf)

	emit(l.Info(), "hello", []any{"key", "value", "n", 3, "dangling"})

	var m map[string]any
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if m["message"] != "hello" {
		t.Errorf("message = %v", m["message"])
	}
	if m["key"] != "value" {
		t.Errorf("key = %v, want value", m["key"])
	}
	if _, ok := m["dangling"]; ok {
		t.Error("a dangling key without a value must be dropped")
	}
}
