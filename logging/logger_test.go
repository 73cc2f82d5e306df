package logging

import (
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_FORMAT", "JSON")
	t.Setenv("ENVIRONMENT", "development")

	config := FromEnv()
	if config.Level != "debug" {
		t.Errorf("expected debug, got %s", config.Level)
	}
	if config.Format != "json" {
		t.Errorf("expected json, got %s", config.Format)
	}
}

func TestFromEnv_ProductionDefaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("LOG_ADD_SOURCE", "true")

	config := FromEnv()
	if config.Format != "json" {
		t.Errorf("production should force json format, got %s", config.Format)
	}
	if config.AddSource {
		t.Error("production should disable source info")
	}
}

func TestWithComponent(t *testing.T) {
	logger := NewLogger(Config{Level: "info", Format: "text"})
	child := logger.WithComponent("harness")
	if child == nil || child.Logger == nil {
		t.Fatal("expected non-nil child logger")
	}
}
