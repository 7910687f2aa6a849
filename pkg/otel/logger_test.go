package otel

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewLoggerText(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggingConfig{Level: "info", Format: "text"}, &buf)

	logger.Debug("hidden")
	logger.Info("evaluated", "scenario", "support")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug message logged at info level: %s", out)
	}
	if !strings.Contains(out, "msg=evaluated") || !strings.Contains(out, "scenario=support") {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggingConfig{Level: "debug", Format: "json"}, &buf)

	logger.WithFields(map[string]any{"component": "catalog"}).Warn("drift", "ratio", 0.5)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%s)", err, buf.String())
	}
	if entry["level"] != "WARN" {
		t.Errorf("level = %v, want WARN", entry["level"])
	}
	if entry["component"] != "catalog" {
		t.Errorf("component = %v, want catalog", entry["component"])
	}
	if entry["ratio"] != 0.5 {
		t.Errorf("ratio = %v, want 0.5", entry["ratio"])
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"debug", "DEBUG"},
		{"WARN", "WARN"},
		{"error", "ERROR"},
		{"info", "INFO"},
		{"", "INFO"},
		{"verbose", "INFO"},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.in).String(); got != tt.want {
			t.Errorf("parseLevel(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestWithFieldsDoesNotShareAttrs(t *testing.T) {
	var buf bytes.Buffer
	base := NewLogger(LoggingConfig{Format: "text"}, &buf)

	a := base.WithFields(map[string]any{"a": 1})
	_ = base.WithFields(map[string]any{"b": 2})
	a.Info("first")

	if strings.Contains(buf.String(), "b=2") {
		t.Errorf("fields leaked between loggers: %s", buf.String())
	}
}
