package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/RyanBlaney/sonido-ascan/config"
	"github.com/RyanBlaney/sonido-ascan/logging"
)

func resetGlobalLogger(t *testing.T) {
	t.Cleanup(func() {
		logging.SetGlobalLogger(&logging.NoOpLogger{})
	})
}

func TestSetupLoggingWritesFile(t *testing.T) {
	resetGlobalLogger(t)
	cfg := config.DefaultViewerConfig()
	cfg.LogPath = filepath.Join(t.TempDir(), "logs", "ascanview.log")

	var fallback bytes.Buffer
	closeLog := setupLogging(cfg, &fallback)
	logging.Info("hello")
	closeLog()

	data, err := os.ReadFile(cfg.LogPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"hello"`) {
		t.Errorf("Expected log line in file, got %q", data)
	}
	if fallback.Len() != 0 {
		t.Errorf("Expected no fallback output, got %q", fallback.String())
	}
}

func TestSetupLoggingFallsBackWhenFileUnavailable(t *testing.T) {
	resetGlobalLogger(t)
	dir := t.TempDir()
	blocker := filepath.Join(dir, "not-a-dir")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := config.DefaultViewerConfig()
	cfg.LogPath = filepath.Join(blocker, "sub", "ascanview.log")

	var fallback bytes.Buffer
	closeLog := setupLogging(cfg, &fallback)
	defer closeLog()

	out := fallback.String()
	if !strings.Contains(out, "[WARN] File logging disabled") {
		t.Errorf("Expected fallback warning, got %q", out)
	}
	if _, ok := logging.GetGlobalLogger().(*logging.NoOpLogger); !ok {
		t.Errorf("Expected no-op logger, got %T", logging.GetGlobalLogger())
	}
}

func TestSetupLoggingDisabled(t *testing.T) {
	resetGlobalLogger(t)
	cfg := config.DefaultViewerConfig()
	cfg.LogPath = ""

	var fallback bytes.Buffer
	setupLogging(cfg, &fallback)()

	if _, ok := logging.GetGlobalLogger().(*logging.NoOpLogger); !ok {
		t.Errorf("Expected no-op logger, got %T", logging.GetGlobalLogger())
	}
	if fallback.Len() != 0 {
		t.Errorf("unexpected fallback output %q", fallback.String())
	}
}
