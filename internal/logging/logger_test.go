package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func decodeLines(t *testing.T, data []byte) []map[string]any {
	t.Helper()

	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("line is not valid JSON: %v: %q", err, line)
		}
		entries = append(entries, entry)
	}
	return entries
}

func TestNewLoggerWithRotation(t *testing.T) {
	t.Run("creates log file at path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "logs", "tabmerge.log")

		logger, err := NewLoggerWithRotation(path, LevelDebug, RotationConfig{})
		if err != nil {
			t.Fatalf("NewLoggerWithRotation failed: %v", err)
		}
		defer func() { _ = logger.Close() }()

		if _, err := os.Stat(path); os.IsNotExist(err) {
			t.Errorf("log file was not created at %s", path)
		}
	})

	t.Run("writes to stderr when path is empty", func(t *testing.T) {
		logger, err := NewLoggerWithRotation("", LevelInfo, RotationConfig{})
		if err != nil {
			t.Fatalf("NewLoggerWithRotation failed: %v", err)
		}
		if logger.closer != nil {
			t.Error("expected no closer when path is empty")
		}
		if err := logger.Close(); err != nil {
			t.Errorf("Close() = %v, want nil", err)
		}
	})
}

func TestLogLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf, LevelDebug)

	logger.Debug("debug message", "key", "value")
	logger.Info("info message", "key", "value")
	logger.Warn("warn message", "key", "value")
	logger.Error("error message", "key", "value")

	entries := decodeLines(t, buf.Bytes())
	if len(entries) != 4 {
		t.Fatalf("expected 4 log lines, got %d", len(entries))
	}

	expectedLevels := []string{"DEBUG", "INFO", "WARN", "ERROR"}
	for i, entry := range entries {
		if entry["level"] != expectedLevels[i] {
			t.Errorf("line %d: level = %v, want %s", i, entry["level"], expectedLevels[i])
		}
		if entry["key"] != "value" {
			t.Errorf("line %d: key = %v, want value", i, entry["key"])
		}
	}
}

func TestLogLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf, LevelWarn)

	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("shown")
	logger.Error("shown")

	entries := decodeLines(t, buf.Bytes())
	if len(entries) != 2 {
		t.Fatalf("expected 2 log lines at WARN, got %d", len(entries))
	}
	for _, entry := range entries {
		if entry["msg"] != "shown" {
			t.Errorf("unexpected message %v", entry["msg"])
		}
	}
}

func TestPersistentAttributes(t *testing.T) {
	var buf bytes.Buffer
	root := NewWriterLogger(&buf, LevelDebug)

	child := root.WithRun("run-1").WithPhase("watch").WithWindow(0x1A2B)
	child.Info("polling", "attempt", 3)
	root.Info("root message")

	entries := decodeLines(t, buf.Bytes())
	if len(entries) != 2 {
		t.Fatalf("expected 2 log lines, got %d", len(entries))
	}

	got := entries[0]
	want := map[string]any{
		"run_id":  "run-1",
		"phase":   "watch",
		"hwnd":    "0x1A2B",
		"attempt": float64(3),
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %v, want %v", k, got[k], v)
		}
	}

	if _, ok := entries[1]["run_id"]; ok {
		t.Error("root logger should not inherit child attributes")
	}
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf, LevelInfo)

	if logger.With() != logger {
		t.Error("With() without args should return the same logger")
	}

	// A non-string key is skipped rather than corrupting the pairs.
	logger.With("url", "C:\\tmp", 42, "ignored").Info("queued")

	entries := decodeLines(t, buf.Bytes())
	if len(entries) != 1 {
		t.Fatalf("expected 1 log line, got %d", len(entries))
	}
	if entries[0]["url"] != "C:\\tmp" {
		t.Errorf("url = %v, want C:\\tmp", entries[0]["url"])
	}
}

func TestNopLogger(t *testing.T) {
	logger := NopLogger()
	logger.Error("discarded")
	if err := logger.Close(); err != nil {
		t.Errorf("Close() = %v, want nil", err)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"Warn", LevelWarn},
		{"error", LevelError},
		{"verbose", LevelInfo},
		{"", LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.want {
				t.Errorf("ParseLevel(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidLevels(t *testing.T) {
	levels := ValidLevels()
	if len(levels) != 4 {
		t.Fatalf("len(ValidLevels()) = %d, want 4", len(levels))
	}
}

func TestClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tabmerge.log")

	logger, err := NewLoggerWithRotation(path, LevelInfo, RotationConfig{})
	if err != nil {
		t.Fatalf("NewLoggerWithRotation failed: %v", err)
	}
	logger.Info("before close")

	if err := logger.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}
	// Second close is a no-op.
	if err := logger.Close(); err != nil {
		t.Errorf("second Close() = %v, want nil", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(content), "before close") {
		t.Errorf("log file missing entry, got %q", content)
	}
}
