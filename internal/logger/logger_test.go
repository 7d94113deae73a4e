package logger

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInit(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(false, configDir); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	logDir := filepath.Join(configDir, "logs")
	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		t.Errorf("log directory was not created: %s", logDir)
	}

	if !Initialized() {
		t.Error("expected logger to be initialized")
	}

	Debug("debug message")
	Info("info message")
	Warn("warn message")
	Error("error message")
}

func TestInitDebugMode(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(true, configDir); err != nil {
		t.Fatalf("failed to initialize logger in debug mode: %v", err)
	}
	if !Initialized() {
		t.Error("expected logger to be initialized")
	}

	Debug("debug message in debug mode")
	Warn("warn message in debug mode")
}

func TestLogHelpersBeforeInit(t *testing.T) {
	global = nil

	// Must not panic without a sink.
	Debug("debug message")
	Info("info message")
	Warn("warn message")
	Error("error message")

	if Initialized() {
		t.Error("expected logger to be uninitialized")
	}
}

func TestInitUnwritableDirectory(t *testing.T) {
	base := t.TempDir()
	if err := os.Chmod(base, 0o500); err != nil {
		t.Fatalf("failed to chmod temp dir: %v", err)
	}
	defer os.Chmod(base, 0o755)

	if os.Geteuid() == 0 {
		t.Skip("running as root, directory permissions are not enforced")
	}

	if err := Init(false, filepath.Join(base, "config")); err == nil {
		t.Error("expected error for unwritable config directory")
	}
}
