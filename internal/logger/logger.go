// Package logger owns the process-wide log sink: a rotating file under the
// config directory, mirrored to stderr when debug logging is on. The
// package-level helpers are safe to call before Init; they drop messages
// until a sink exists.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/jtwaugh/taskweave/internal/constants"
)

var global *log.Logger

// Init sets up the shared logger. Debug lowers the level from warn to debug,
// reports callers, and mirrors output to stderr; otherwise logging goes only
// to the rotating file and the terminal stays quiet.
func Init(debug bool, configDir string) error {
	dir := filepath.Join(configDir, "logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	var out io.Writer = rotatingFile(dir)
	level := log.WarnLevel
	if debug {
		out = io.MultiWriter(os.Stderr, out)
		level = log.DebugLevel
	}

	global = log.NewWithOptions(out, log.Options{
		Prefix:          constants.AppName,
		Level:           level,
		ReportTimestamp: true,
		ReportCaller:    debug,
	})
	return nil
}

// Initialized reports whether Init has produced a sink.
func Initialized() bool {
	return global != nil
}

func rotatingFile(dir string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   filepath.Join(dir, constants.AppName+".log"),
		MaxSize:    5, // megabytes
		MaxBackups: 4,
		MaxAge:     30, // days
		Compress:   true,
	}
}

func Debug(msg string, keyvals ...interface{}) {
	if global != nil {
		global.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...interface{}) {
	if global != nil {
		global.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...interface{}) {
	if global != nil {
		global.Warn(msg, keyvals...)
	}
}

func Error(msg string, keyvals ...interface{}) {
	if global != nil {
		global.Error(msg, keyvals...)
	}
}
