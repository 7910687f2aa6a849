package otel

import (
	"errors"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		want   error
	}{
		{"defaults", func(c *Config) {}, nil},
		{"sample rate too high", func(c *Config) { c.Tracing.SampleRate = 1.5 }, ErrInvalidSampleRate},
		{"unknown trace exporter", func(c *Config) { c.Tracing.Exporter = "zipkin" }, ErrInvalidConfig},
		{"unknown metric exporter", func(c *Config) { c.Metrics.Exporter = "statsd" }, ErrInvalidConfig},
		{"bad log level", func(c *Config) { c.Logging.Level = "trace" }, ErrInvalidLogLevel},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, ErrInvalidLogFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestConfigWithDefaults(t *testing.T) {
	cfg := Config{ServiceName: "custom"}.WithDefaults()

	if cfg.ServiceName != "custom" {
		t.Errorf("ServiceName = %s, want custom", cfg.ServiceName)
	}
	if cfg.Tracing.Exporter != ExporterNone {
		t.Errorf("Tracing.Exporter = %s, want none", cfg.Tracing.Exporter)
	}
	if cfg.Tracing.SampleRate != 1.0 {
		t.Errorf("Tracing.SampleRate = %v, want 1.0", cfg.Tracing.SampleRate)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("Logging.Format = %s, want text", cfg.Logging.Format)
	}
}
