package logger

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/atomic"

	"github.com/philipp01105/hlog/core"
	"github.com/philipp01105/hlog/handler"
)

// LoggerFactory constructs Logger instances for a Manager. Replaceable so
// callers can hand out pre-configured nodes; the manager still owns naming,
// parent wiring, and registration.
type LoggerFactory func(name string) *Logger

// placeholder stands in for a name that has registered descendants but has
// not itself been created as a real logger. It records those descendants so
// they can be reparented the moment the real logger appears.
type placeholder struct {
	children map[*Logger]struct{}
}

func newPlaceholder(l *Logger) *placeholder {
	return &placeholder{children: map[*Logger]struct{}{l: {}}}
}

// Manager owns a logger tree: the root node, the full name-to-node map
// (placeholders included), the global disable threshold, and the pluggable
// factories. One lock serializes all structural mutation and cache
// invalidation; the dispatch fast paths never take it.
type Manager struct {
	mu    sync.Mutex
	root  *Logger
	nodes map[string]any // *Logger or *placeholder

	disable         atomic.Int32
	warnedNoHandler atomic.Bool

	facMu         sync.RWMutex
	loggerFactory LoggerFactory
	recordFactory core.RecordFactory
	lastResort    handler.Handler
}

// NewManager creates a manager with a root logger at WarningLevel and a
// stderr last-resort handler thresholded at WarningLevel.
func NewManager() *Manager {
	m := &Manager{
		nodes:         make(map[string]any),
		loggerFactory: NewLogger,
		recordFactory: core.NewRecord,
	}
	m.root = NewLogger("")
	m.root.manager = m
	m.root.level.Store(int32(core.WarningLevel))

	lr := handler.NewWriterHandler(nil, nil)
	lr.SetLevel(core.WarningLevel)
	m.lastResort = lr
	return m
}

// Root returns the root logger. It is always a real node, never a
// placeholder, and is resolved without touching the registry map.
func (m *Manager) Root() *Logger {
	return m.root
}

// GetLogger returns the logger for name, creating it (and placeholder
// entries for any missing ancestors) on first use. Calling it twice with
// the same name returns the identical instance. The empty name resolves to
// the root directly.
func (m *Manager) GetLogger(name string) *Logger {
	if name == "" {
		return m.root
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	switch node := m.nodes[name].(type) {
	case *Logger:
		return node
	case *placeholder:
		// A real logger replaces the placeholder in-place; children
		// currently pointing at the placeholder's position are rewired
		// below without losing their own subtrees
		l := m.newNodeLocked(name)
		m.nodes[name] = l
		m.fixupChildrenLocked(node, l)
		m.fixupParentsLocked(l)
		return l
	default:
		l := m.newNodeLocked(name)
		m.nodes[name] = l
		m.fixupParentsLocked(l)
		return l
	}
}

func (m *Manager) newNodeLocked(name string) *Logger {
	m.facMu.RLock()
	factory := m.loggerFactory
	m.facMu.RUnlock()
	l := factory(name)
	l.name = name
	l.manager = m
	return l
}

// fixupParentsLocked resolves the new node's parent: the nearest registered
// real ancestor, or the root. Prefixes with neither a real node nor a
// placeholder get a placeholder recording the new node as a waiting child.
func (m *Manager) fixupParentsLocked(l *Logger) {
	name := l.name
	var rv *Logger
	for i := strings.LastIndexByte(name, '.'); i > 0 && rv == nil; i = strings.LastIndexByte(name[:i-1], '.') {
		prefix := name[:i]
		switch node := m.nodes[prefix].(type) {
		case nil:
			m.nodes[prefix] = newPlaceholder(l)
		case *Logger:
			rv = node
		case *placeholder:
			node.children[l] = struct{}{}
		}
	}
	if rv == nil {
		rv = m.root
	}
	l.parent.Store(rv)
}

// fixupChildrenLocked reparents the placeholder's waiting children onto the
// new node, but only those whose current parent sits above it; a child
// already attached deeper in the new node's subtree keeps its parent.
func (m *Manager) fixupChildrenLocked(ph *placeholder, l *Logger) {
	name := l.name
	for c := range ph.children {
		p := c.parent.Load()
		if p != nil && !strings.HasPrefix(p.name, name) {
			l.parent.Store(p)
			c.parent.Store(l)
		}
	}
}

// clearCacheLocked wipes the gating cache on every real node in the
// registry. This is a correctness requirement, not an optimization: a
// cached answer is a function of the entire ancestor chain plus the global
// threshold, so a change anywhere can invalidate any descendant's entries.
func (m *Manager) clearCacheLocked() {
	m.root.cache = nil
	for _, n := range m.nodes {
		if l, ok := n.(*Logger); ok {
			l.cache = nil
		}
	}
}

// SetDisableThreshold disables all logging at or below level, across every
// logger in the registry, until lowered again. Zero disables nothing.
func (m *Manager) SetDisableThreshold(level core.Level) {
	m.mu.Lock()
	m.disable.Store(int32(level))
	m.clearCacheLocked()
	m.mu.Unlock()
}

// DisableThreshold returns the global disable threshold
func (m *Manager) DisableThreshold() core.Level {
	return core.Level(m.disable.Load())
}

// SetLoggerFactory replaces the factory used for new logger nodes
func (m *Manager) SetLoggerFactory(f LoggerFactory) {
	if f == nil {
		f = NewLogger
	}
	m.facMu.Lock()
	m.loggerFactory = f
	m.facMu.Unlock()
}

// SetRecordFactory replaces the factory used to build records
func (m *Manager) SetRecordFactory(f core.RecordFactory) {
	if f == nil {
		f = core.NewRecord
	}
	m.facMu.Lock()
	m.recordFactory = f
	m.facMu.Unlock()
}

func (m *Manager) recordFactoryFn() core.RecordFactory {
	m.facMu.RLock()
	f := m.recordFactory
	m.facMu.RUnlock()
	return f
}

// SetLastResort replaces the last-resort handler; nil turns the fallback
// off entirely.
func (m *Manager) SetLastResort(h handler.Handler) {
	m.facMu.Lock()
	m.lastResort = h
	m.facMu.Unlock()
}

// LastResort returns the last-resort handler, or nil when unset
func (m *Manager) LastResort() handler.Handler {
	m.facMu.RLock()
	h := m.lastResort
	m.facMu.RUnlock()
	return h
}

// WarnedNoHandler reports whether some dispatch walk has already completed
// with zero handlers invoked. The flag is sticky: set at most once for the
// life of the manager.
func (m *Manager) WarnedNoHandler() bool {
	return m.warnedNoHandler.Load()
}

// noHandlers is the tail of a dispatch walk that invoked nothing. The last
// resort emits directly, bypassing filters, when the record clears its
// threshold; otherwise a one-time warning goes to the side channel.
func (m *Manager) noHandlers(r *core.Record) {
	lr := m.LastResort()
	if lr != nil {
		if r.Level >= lr.Level() {
			m.warnedNoHandler.CompareAndSwap(false, true)
			if err := lr.Emit(r); err != nil {
				core.ReportError(err, r)
			}
		}
		return
	}
	if m.warnedNoHandler.CompareAndSwap(false, true) {
		core.ReportError(fmt.Errorf("no handlers could be found for logger %q", r.Name), r)
	}
}
