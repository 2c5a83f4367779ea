package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{" ERROR ", slog.LevelError},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNew_ServiceAttribute(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "leora-api", "INFO").Info("hello", "k", 1)

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec["service"] != "leora-api" {
		t.Errorf("expected service=leora-api, got %v", rec["service"])
	}
	if _, ok := rec["stacktrace"]; ok {
		t.Error("INFO record should not carry a stack trace")
	}
}

func TestNew_ErrorHasStacktrace(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "leora-api", "INFO").Error("boom")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if s, _ := rec["stacktrace"].(string); s == "" {
		t.Error("expected stacktrace on ERROR record")
	}
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "leora-api", "WARN").Info("dropped")
	if buf.Len() != 0 {
		t.Errorf("expected INFO suppressed at WARN, got %s", buf.String())
	}
}
