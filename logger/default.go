package logger

import (
	"github.com/philipp01105/hlog/core"
	"github.com/philipp01105/hlog/handler"
)

// defaultManager is the process-wide manager behind the package-level
// functions. Libraries should take a *Logger or *Manager instead of
// reaching for it directly.
var defaultManager = NewManager()

// DefaultManager returns the process-wide manager
func DefaultManager() *Manager {
	return defaultManager
}

// GetLogger returns the named logger from the process-wide manager,
// creating it on first use. The empty name returns the root.
func GetLogger(name string) *Logger {
	return defaultManager.GetLogger(name)
}

// Root returns the process-wide root logger
func Root() *Logger {
	return defaultManager.Root()
}

// Disable sets the process-wide disable threshold: all logging at or below
// level is suppressed on every logger until lowered again
func Disable(level core.Level) {
	defaultManager.SetDisableThreshold(level)
}

// Shutdown flushes and closes every still-registered handler; call it once
// at process termination
func Shutdown() error {
	return handler.Shutdown()
}

// Package-level convenience functions logging through the root logger.
// Each gates first and calls the internal log method directly so caller
// information points at the user's call site.

// Debug logs a debug message on the root logger
func Debug(msg string, args ...any) {
	r := defaultManager.Root()
	if !r.Enabled(core.DebugLevel) {
		return
	}
	r.log(core.DebugLevel, msg, args, nil, "", nil, callerSkip)
}

// Info logs an info message on the root logger
func Info(msg string, args ...any) {
	r := defaultManager.Root()
	if !r.Enabled(core.InfoLevel) {
		return
	}
	r.log(core.InfoLevel, msg, args, nil, "", nil, callerSkip)
}

// Warning logs a warning message on the root logger
func Warning(msg string, args ...any) {
	r := defaultManager.Root()
	if !r.Enabled(core.WarningLevel) {
		return
	}
	r.log(core.WarningLevel, msg, args, nil, "", nil, callerSkip)
}

// Error logs an error message on the root logger
func Error(msg string, args ...any) {
	r := defaultManager.Root()
	if !r.Enabled(core.ErrorLevel) {
		return
	}
	r.log(core.ErrorLevel, msg, args, nil, "", nil, callerSkip)
}

// Critical logs a critical message on the root logger
func Critical(msg string, args ...any) {
	r := defaultManager.Root()
	if !r.Enabled(core.CriticalLevel) {
		return
	}
	r.log(core.CriticalLevel, msg, args, nil, "", nil, callerSkip)
}
