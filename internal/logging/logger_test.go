package logging

import (
	"os"
	"path/filepath"
	"testing"
)

// resetState clears package-level configuration between tests, since
// Configure/Get hold process-wide state.
func resetState(t *testing.T) {
	t.Helper()
	Close()
	configMu.Lock()
	configured = false
	debugMode = false
	logsDir = ""
	configMu.Unlock()
}

func TestGetIsNoOpBeforeConfigure(t *testing.T) {
	resetState(t)
	defer resetState(t)

	log := Get(CategoryBoot)
	log.Info("should not panic or write anywhere: %d", 1)
}

func TestConfigureWithDebugFalseStaysNoOp(t *testing.T) {
	resetState(t)
	defer resetState(t)

	ws := t.TempDir()
	if err := Configure(ws, false); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if IsDebugMode() {
		t.Fatalf("expected debug mode to be false")
	}
	if _, err := os.Stat(filepath.Join(ws, ".ariadne", "logs")); err == nil {
		t.Fatalf("expected no logs directory to be created when debug is false")
	}
}

func TestConfigureWithDebugTrueCreatesLogFile(t *testing.T) {
	resetState(t)
	defer resetState(t)

	ws := t.TempDir()
	if err := Configure(ws, true); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if !IsDebugMode() {
		t.Fatalf("expected debug mode to be true")
	}

	log := Get(CategoryAgent)
	log.Info("hello %s", "world")

	entries, err := os.ReadDir(filepath.Join(ws, ".ariadne", "logs"))
	if err != nil {
		t.Fatalf("read logs dir: %v", err)
	}
	if len(entries) == 0 {
		t.Fatalf("expected at least one log file to exist")
	}
}

func TestGetReturnsSameLoggerForSameCategory(t *testing.T) {
	resetState(t)
	defer resetState(t)

	ws := t.TempDir()
	Configure(ws, true)

	a := Get(CategoryEval)
	b := Get(CategoryEval)
	if a != b {
		t.Fatalf("expected Get to return the same *Logger instance for repeated calls")
	}
}
