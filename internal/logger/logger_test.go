package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggerJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("info", &buf)

	log.WithModule("planner").Info("week generated", "week", "semana-2")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Output is not JSON: %v", err)
	}

	if entry["message"] != "week generated" {
		t.Errorf("Expected message field, got %v", entry["message"])
	}
	if entry["level"] != "info" {
		t.Errorf("Expected lowercase level, got %v", entry["level"])
	}
	if entry["module"] != "planner" {
		t.Errorf("Expected module field, got %v", entry["module"])
	}
	if entry["week"] != "semana-2" {
		t.Errorf("Expected week attribute, got %v", entry["week"])
	}
	if _, ok := entry["timestamp"]; !ok {
		t.Error("Expected timestamp field")
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("warn", &buf)

	log.Info("should be dropped")
	log.Warn("should appear")

	out := buf.String()
	if strings.Contains(out, "should be dropped") {
		t.Error("Info record leaked through warn level")
	}
	if !strings.Contains(out, "should appear") {
		t.Error("Warn record missing")
	}
	if !strings.Contains(out, `"level":"warning"`) {
		t.Errorf("Expected warning level name, got %s", out)
	}
}

func TestLoggerWithError(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("info", &buf)

	log.WithError(errors.New("boom")).Error("operation failed")

	if !strings.Contains(buf.String(), "boom") {
		t.Errorf("Expected error field in output, got %s", buf.String())
	}
}

func TestNewWithShippingNoToken(t *testing.T) {
	// Without a token the logger must degrade to plain stdout logging.
	log := NewWithShipping("info", "", "")
	if log == nil {
		t.Fatal("Expected logger")
	}
}

func TestMultiHandlerFanOut(t *testing.T) {
	var a, b bytes.Buffer
	handler := NewMultiHandler(
		slog.NewJSONHandler(&a, nil),
		slog.NewJSONHandler(&b, &slog.HandlerOptions{Level: slog.LevelError}),
	)
	log := slog.New(handler)

	log.Info("only first")
	log.Error("both")

	if !strings.Contains(a.String(), "only first") || !strings.Contains(a.String(), "both") {
		t.Errorf("First handler missing records: %s", a.String())
	}
	if strings.Contains(b.String(), "only first") {
		t.Error("Second handler received record below its level")
	}
	if !strings.Contains(b.String(), "both") {
		t.Errorf("Second handler missing error record: %s", b.String())
	}
}

func TestMultiHandlerDropsNil(t *testing.T) {
	var buf bytes.Buffer
	handler := NewMultiHandler(nil, slog.NewJSONHandler(&buf, nil))

	if !handler.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("Expected handler to be enabled")
	}
	if len(handler.handlers) != 1 {
		t.Errorf("Expected nil handler to be dropped, got %d handlers", len(handler.handlers))
	}
}
