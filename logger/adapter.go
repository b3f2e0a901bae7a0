package logger

import (
	"fmt"

	"github.com/philipp01105/hlog/core"
)

// Adapter binds a fixed set of extra attributes to a logger: every call
// made through it carries the bound context merged into the record, while
// the wrapped logger itself is never mutated. The adapter has no level or
// cache of its own; gating always consults the target logger.
type Adapter struct {
	logger *Logger
	extra  map[string]any
}

// NewAdapter wraps a logger with bound context. The context is validated
// against the record's reserved attribute names here, at configuration
// time, so per-call merging can never fail on it; the map is copied.
func NewAdapter(l *Logger, extra map[string]any) (*Adapter, error) {
	bound := make(map[string]any, len(extra))
	for k, v := range extra {
		if core.IsReservedKey(k) {
			return nil, fmt.Errorf("extra key %q collides with a record attribute", k)
		}
		bound[k] = v
	}
	return &Adapter{logger: l, extra: bound}, nil
}

// Logger returns the wrapped logger
func (a *Adapter) Logger() *Logger {
	return a.logger
}

// With returns a new adapter with additional bound context layered on top
// of this one's; new keys take precedence on collision.
func (a *Adapter) With(extra map[string]any) (*Adapter, error) {
	merged := make(map[string]any, len(a.extra)+len(extra))
	for k, v := range a.extra {
		merged[k] = v
	}
	for k, v := range extra {
		if core.IsReservedKey(k) {
			return nil, fmt.Errorf("extra key %q collides with a record attribute", k)
		}
		merged[k] = v
	}
	return &Adapter{logger: a.logger, extra: merged}, nil
}

// Enabled delegates the gating check to the wrapped logger
func (a *Adapter) Enabled(level core.Level) bool {
	return a.logger.Enabled(level)
}

// Log emits through the wrapped logger with the bound context attached
func (a *Adapter) Log(level core.Level, msg string, args ...any) {
	if !a.logger.Enabled(level) {
		return
	}
	a.logger.log(level, msg, args, nil, "", a.extra, callerSkip)
}

// LogExtra emits with per-call extra attributes merged over the bound
// context; call-site keys win on collision. Reserved-key collisions in the
// per-call map are returned as configuration errors.
func (a *Adapter) LogExtra(level core.Level, msg string, extra map[string]any, args ...any) error {
	if !a.logger.Enabled(level) {
		return nil
	}
	merged := make(map[string]any, len(a.extra)+len(extra))
	for k, v := range a.extra {
		merged[k] = v
	}
	for k, v := range extra {
		merged[k] = v
	}
	return a.logger.log(level, msg, args, nil, "", merged, callerSkip)
}

// Debug logs a message at DebugLevel with the bound context
func (a *Adapter) Debug(msg string, args ...any) {
	if !a.logger.Enabled(core.DebugLevel) {
		return
	}
	a.logger.log(core.DebugLevel, msg, args, nil, "", a.extra, callerSkip)
}

// Info logs a message at InfoLevel with the bound context
func (a *Adapter) Info(msg string, args ...any) {
	if !a.logger.Enabled(core.InfoLevel) {
		return
	}
	a.logger.log(core.InfoLevel, msg, args, nil, "", a.extra, callerSkip)
}

// Warning logs a message at WarningLevel with the bound context
func (a *Adapter) Warning(msg string, args ...any) {
	if !a.logger.Enabled(core.WarningLevel) {
		return
	}
	a.logger.log(core.WarningLevel, msg, args, nil, "", a.extra, callerSkip)
}

// Error logs a message at ErrorLevel with the bound context
func (a *Adapter) Error(msg string, args ...any) {
	if !a.logger.Enabled(core.ErrorLevel) {
		return
	}
	a.logger.log(core.ErrorLevel, msg, args, nil, "", a.extra, callerSkip)
}

// Critical logs a message at CriticalLevel with the bound context
func (a *Adapter) Critical(msg string, args ...any) {
	if !a.logger.Enabled(core.CriticalLevel) {
		return
	}
	a.logger.log(core.CriticalLevel, msg, args, nil, "", a.extra, callerSkip)
}
