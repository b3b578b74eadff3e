// Package logger provides the process-wide structured logger.
//
// Nothing is written until Init or InitWriter is called; before that every
// logger handed out discards its records, so library packages can log
// unconditionally.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	slogLogger *slog.Logger
	levelVar   = new(slog.LevelVar)
	logFile    *os.File
	mu         sync.Mutex
	initDone   bool
)

// SetDebug toggles between debug and info level.
func SetDebug(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	if enabled {
		levelVar.Set(slog.LevelDebug)
	} else {
		levelVar.Set(slog.LevelInfo)
	}
}

// Init opens path for appending and routes all logging there.
// Calling Init again after a successful call is a no-op.
func Init(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if initDone {
		return nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	logFile = f
	slogLogger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: levelVar}))
	initDone = true

	slogLogger.Debug("Logger initialized", "path", path)
	return nil
}

// InitWriter routes all logging to w (typically os.Stderr).
func InitWriter(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	if initDone {
		return
	}
	slogLogger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: levelVar}))
	initDone = true
}

// ComponentLogger returns a logger with the component attribute pre-attached.
//
//	log := logger.ComponentLogger("project")
//	log.Debug("decoded", "windows", len(p.Windows))
func ComponentLogger(component string) *slog.Logger {
	mu.Lock()
	defer mu.Unlock()

	if slogLogger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slogLogger.With(slog.String("component", component))
}

// Close closes the log file, if any.
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	slogLogger = nil
	initDone = false
}

// Reset restores the uninitialized state. Used by tests.
func Reset() {
	Close()

	mu.Lock()
	defer mu.Unlock()
	levelVar = new(slog.LevelVar)
}
