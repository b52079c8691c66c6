package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestValidateLevel(t *testing.T) {
	for _, level := range []string{"", "debug", "info", "warn", "error"} {
		if err := ValidateLevel(level); err != nil {
			t.Errorf("ValidateLevel(%q) error = %v", level, err)
		}
	}
	if err := ValidateLevel("trace"); err == nil {
		t.Error("ValidateLevel(trace) error = nil, want error")
	}
}

func TestNewLevels(t *testing.T) {
	tests := []struct {
		opts Options
		want zapcore.Level
	}{
		{Options{}, zapcore.InfoLevel},
		{Options{Level: "warn"}, zapcore.WarnLevel},
		{Options{Level: "error", Verbose: true}, zapcore.DebugLevel},
		{Options{Level: "debug", JSON: true}, zapcore.DebugLevel},
	}

	for _, tt := range tests {
		logger, err := New(tt.opts)
		if err != nil {
			t.Fatalf("New(%+v) error = %v", tt.opts, err)
		}
		if !logger.Core().Enabled(tt.want) {
			t.Errorf("New(%+v) does not log at %v", tt.opts, tt.want)
		}
		if tt.want > zapcore.DebugLevel && logger.Core().Enabled(tt.want-1) {
			t.Errorf("New(%+v) logs below %v", tt.opts, tt.want)
		}
	}

	if _, err := New(Options{Level: "loud"}); err == nil {
		t.Error("New(loud) error = nil, want error")
	}
}

func TestNewWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keyglow.log")

	logger, err := New(Options{File: path})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	logger.Info("hello from test")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), "hello from test") {
		t.Errorf("log file = %q, want it to contain the message", data)
	}
}
