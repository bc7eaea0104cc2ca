package logging

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_WritesKeyValueFields(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	logger := FromZap(zap.New(core)).With("service", "federated-matches")

	logger.WarnContext(context.Background(), "federation fetch failed", "federation", "b", "error", errors.New("boom"), "dangling")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got=%d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["service"] != "federated-matches" {
		t.Fatalf("expected static field, got=%v", fields["service"])
	}
	if fields["federation"] != "b" {
		t.Fatalf("unexpected federation field: %v", fields["federation"])
	}
	if fields["error"] != "boom" {
		t.Fatalf("unexpected error field: %v", fields["error"])
	}
	if _, ok := fields["dangling"]; !ok {
		t.Fatalf("expected dangling key to be kept")
	}
}

func TestLogger_RespectsLevel(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	logger := FromZap(zap.New(core))

	logger.Debug("hidden")
	logger.Info("shown")

	if got := logs.Len(); got != 1 {
		t.Fatalf("expected only info entry, got=%d", got)
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	if ParseLevel("warn") != LevelWarn {
		t.Fatalf("expected warn level")
	}
	if ParseLevel("nonsense") != LevelInfo {
		t.Fatalf("expected info fallback")
	}
}

func TestNilLoggerFallsBackToDefault(t *testing.T) {
	t.Parallel()

	var logger *Logger
	logger.Info("no panic")
	if logger.With("k", "v") == nil {
		t.Fatalf("expected non-nil logger from nil receiver")
	}
}
