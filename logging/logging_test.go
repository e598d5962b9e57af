package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"DEBUG", zapcore.DebugLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"verbose", zapcore.InfoLevel},
	}
	for _, tc := range testCases {
		if got := ParseLevel(tc.in); got != tc.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestNewWritesJSONFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "wl.log")
	l, err := New(Config{Level: "info", Format: "json", Output: file})
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}
	l.Info("loaded", zap.String("source", "link"))
	l.Debug("hidden")
	_ = l.Sync()

	content, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("cannot read log file: %v", err)
	}
	got := string(content)
	if !strings.Contains(got, `"message":"loaded"`) || !strings.Contains(got, `"source":"link"`) {
		t.Errorf("log file = %q, want the info entry", got)
	}
	if strings.Contains(got, "hidden") {
		t.Errorf("log file = %q, debug entry should be filtered", got)
	}
}

func TestGlobalDefaultsToNop(t *testing.T) {
	if L() == nil {
		t.Fatal("L() returned nil before Set")
	}
	Set(nil)
	if L() == nil {
		t.Fatal("Set(nil) replaced the logger")
	}
}
