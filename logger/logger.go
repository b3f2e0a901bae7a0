package logger

import (
	"runtime/debug"

	"go.uber.org/atomic"

	"github.com/philipp01105/hlog/core"
	"github.com/philipp01105/hlog/handler"
)

// callerSkip is the fixed frame depth from runtime.Caller inside
// core.GetCaller back to the user's call site. Every public entry point
// goes through exactly one intermediate frame (the unexported log method)
// to keep this constant true.
const callerSkip = 3

// Logger is one named node in the hierarchy. Loggers are created through a
// Manager (or the package-level GetLogger) and shared by all callers;
// configuration changes go through the manager's lock while the dispatch
// fast path reads atomics.
type Logger struct {
	core.Filterer

	name    string
	manager *Manager

	parent    atomic.Pointer[Logger]
	level     atomic.Int32
	propagate atomic.Bool
	disabled  atomic.Bool

	// handlers is copy-on-write: mutations build a fresh slice under the
	// manager lock, the dispatch walk loads the pointer lock-free
	handlers atomic.Pointer[[]handler.Handler]

	// cache maps queried level to the gating answer; guarded by the
	// manager lock, invalidated wholesale on any level/disable change
	// anywhere in the registry
	cache map[core.Level]bool
}

// NewLogger creates a detached node with level NOTSET and propagation
// enabled. It is the default LoggerFactory; code normally obtains loggers
// from a Manager instead, which wires the parent chain.
func NewLogger(name string) *Logger {
	l := &Logger{name: name}
	l.propagate.Store(true)
	return l
}

// Name returns the logger's dot-separated hierarchical name
func (l *Logger) Name() string {
	return l.name
}

// Parent returns the logger's parent, or nil for the root
func (l *Logger) Parent() *Logger {
	return l.parent.Load()
}

// Manager returns the manager owning this logger
func (l *Logger) Manager() *Manager {
	return l.manager
}

// Child returns the logger for a dot-separated suffix below this one
func (l *Logger) Child(suffix string) *Logger {
	if l.manager == nil {
		return nil
	}
	name := suffix
	if l.name != "" {
		name = l.name + "." + suffix
	}
	return l.manager.GetLogger(name)
}

// Level returns the logger's own level, NOTSET meaning "inherit"
func (l *Logger) Level() core.Level {
	return core.Level(l.level.Load())
}

// SetLevel sets the logger's level. Because a cached gating answer anywhere
// in the tree may depend on this node, every cache in the registry is
// invalidated before the lock is released.
func (l *Logger) SetLevel(level core.Level) {
	m := l.manager
	if m == nil {
		l.level.Store(int32(level))
		return
	}
	m.mu.Lock()
	l.level.Store(int32(level))
	m.clearCacheLocked()
	m.mu.Unlock()
}

// EffectiveLevel walks the parent chain and returns the first explicitly
// set level, or NOTSET when no ancestor has one.
func (l *Logger) EffectiveLevel() core.Level {
	for c := l; c != nil; c = c.parent.Load() {
		if lv := core.Level(c.level.Load()); lv != core.NOTSET {
			return lv
		}
	}
	return core.NOTSET
}

// Propagate reports whether dispatch continues past this node's handlers
func (l *Logger) Propagate() bool {
	return l.propagate.Load()
}

// SetPropagate controls whether dispatch continues to the parent's handlers
func (l *Logger) SetPropagate(propagate bool) {
	l.propagate.Store(propagate)
}

// Disabled reports whether the logger is disabled
func (l *Logger) Disabled() bool {
	return l.disabled.Load()
}

// SetDisabled disables or re-enables the logger. A disabled logger emits
// nothing regardless of threshold configuration.
func (l *Logger) SetDisabled(disabled bool) {
	m := l.manager
	if m == nil {
		l.disabled.Store(disabled)
		return
	}
	m.mu.Lock()
	l.disabled.Store(disabled)
	m.clearCacheLocked()
	m.mu.Unlock()
}

// AddHandler attaches a handler to this node
func (l *Logger) AddHandler(h handler.Handler) {
	m := l.manager
	if m != nil {
		m.mu.Lock()
		defer m.mu.Unlock()
	}
	cur := l.handlersSnapshot()
	next := make([]handler.Handler, len(cur)+1)
	copy(next, cur)
	next[len(cur)] = h
	l.handlers.Store(&next)
}

// RemoveHandler detaches a previously attached handler. The handler is not
// closed; it may still be attached elsewhere.
func (l *Logger) RemoveHandler(h handler.Handler) {
	m := l.manager
	if m != nil {
		m.mu.Lock()
		defer m.mu.Unlock()
	}
	cur := l.handlersSnapshot()
	for i, existing := range cur {
		if existing == h {
			next := make([]handler.Handler, 0, len(cur)-1)
			next = append(next, cur[:i]...)
			next = append(next, cur[i+1:]...)
			l.handlers.Store(&next)
			return
		}
	}
}

// Handlers returns a copy of the node's handler list in attachment order
func (l *Logger) Handlers() []handler.Handler {
	cur := l.handlersSnapshot()
	out := make([]handler.Handler, len(cur))
	copy(out, cur)
	return out
}

func (l *Logger) handlersSnapshot() []handler.Handler {
	p := l.handlers.Load()
	if p == nil {
		return nil
	}
	return *p
}

// Enabled is the gating check run on every log call site. The first two
// steps are plain atomic reads so a disabled, high-volume call site pays
// almost nothing; only a cache miss walks the ancestor chain, and the
// cache read itself serializes behind the manager lock so it can never
// observe a stale entry paired with a new level.
func (l *Logger) Enabled(level core.Level) bool {
	if l.disabled.Load() {
		return false
	}
	m := l.manager
	if m == nil {
		return l.EffectiveLevel() <= level
	}
	if core.Level(m.disable.Load()) >= level {
		return false
	}

	m.mu.Lock()
	if v, ok := l.cache[level]; ok {
		m.mu.Unlock()
		return v
	}
	v := l.EffectiveLevel() <= level
	if l.cache == nil {
		l.cache = make(map[core.Level]bool, 8)
	}
	l.cache[level] = v
	m.mu.Unlock()
	return v
}

// Log emits a record at an arbitrary level. The message is a printf
// template; arguments are carried on the record and applied lazily by
// whichever formatter renders it.
func (l *Logger) Log(level core.Level, msg string, args ...any) {
	if !l.Enabled(level) {
		return
	}
	l.log(level, msg, args, nil, "", nil, callerSkip)
}

// LogExtra emits a record carrying extra attributes. Extra keys colliding
// with the record's own attribute names are a configuration error returned
// to the caller; nothing is emitted in that case.
func (l *Logger) LogExtra(level core.Level, msg string, extra map[string]any, args ...any) error {
	if !l.Enabled(level) {
		return nil
	}
	return l.log(level, msg, args, nil, "", extra, callerSkip)
}

// Debug logs a message at DebugLevel
func (l *Logger) Debug(msg string, args ...any) {
	if !l.Enabled(core.DebugLevel) {
		return
	}
	l.log(core.DebugLevel, msg, args, nil, "", nil, callerSkip)
}

// Info logs a message at InfoLevel
func (l *Logger) Info(msg string, args ...any) {
	if !l.Enabled(core.InfoLevel) {
		return
	}
	l.log(core.InfoLevel, msg, args, nil, "", nil, callerSkip)
}

// Warning logs a message at WarningLevel
func (l *Logger) Warning(msg string, args ...any) {
	if !l.Enabled(core.WarningLevel) {
		return
	}
	l.log(core.WarningLevel, msg, args, nil, "", nil, callerSkip)
}

// Error logs a message at ErrorLevel
func (l *Logger) Error(msg string, args ...any) {
	if !l.Enabled(core.ErrorLevel) {
		return
	}
	l.log(core.ErrorLevel, msg, args, nil, "", nil, callerSkip)
}

// Critical logs a message at CriticalLevel
func (l *Logger) Critical(msg string, args ...any) {
	if !l.Enabled(core.CriticalLevel) {
		return
	}
	l.log(core.CriticalLevel, msg, args, nil, "", nil, callerSkip)
}

// Exception logs an error at ErrorLevel with the error and the current
// stack captured on the record
func (l *Logger) Exception(err error, msg string, args ...any) {
	if !l.Enabled(core.ErrorLevel) {
		return
	}
	l.log(core.ErrorLevel, msg, args, err, string(debug.Stack()), nil, callerSkip)
}

// log builds the record via the manager's factory and hands it to dispatch.
// All public entry points call it from exactly one frame up so skip stays
// uniform.
func (l *Logger) log(level core.Level, msg string, args []any, err error, stack string, extra map[string]any, skip int) error {
	caller := core.GetCaller(skip)
	factory := core.RecordFactory(core.NewRecord)
	if l.manager != nil {
		factory = l.manager.recordFactoryFn()
	}
	r, ferr := factory(l.name, level, caller, msg, args, err, stack, extra)
	if ferr != nil {
		return ferr
	}
	l.Handle(r)
	return nil
}

// Handle dispatches a record that already passed the gating check: the
// node's own filters first, then the ancestor walk. Exposed so records
// built elsewhere (bridges, factories) can be injected.
func (l *Logger) Handle(r *core.Record) {
	if l.disabled.Load() {
		return
	}
	if !l.Accept(r) {
		return
	}
	l.callHandlers(r)
}

// callHandlers performs the ancestor walk. At each node every handler whose
// threshold passes gets the record (each re-filtered and re-gated by the
// handler itself); the walk stops at the first node with propagation off or
// past the root. If no handler emitted, the manager's last resort takes
// over.
func (l *Logger) callHandlers(r *core.Record) {
	invoked := 0
	for c := l; c != nil; {
		for _, h := range c.handlersSnapshot() {
			if h.Level() <= r.Level {
				if handled, _ := h.Handle(r); handled {
					invoked++
				}
			}
		}
		if !c.propagate.Load() {
			break
		}
		c = c.parent.Load()
	}
	if invoked == 0 && l.manager != nil {
		l.manager.noHandlers(r)
	}
}
