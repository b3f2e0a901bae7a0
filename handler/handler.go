package handler

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"weak"

	"go.uber.org/atomic"
	"go.uber.org/multierr"

	"github.com/philipp01105/hlog/core"
	"github.com/philipp01105/hlog/formatter"
)

// Handler is a sink-facing dispatch unit with its own level threshold,
// filter chain, formatter, and exclusive emit lock. Handlers live in a flat
// registry independent of the logger tree; any logger may attach any
// handler.
type Handler interface {
	// Handle gates the record by level, applies the handler's filters, and
	// emits under the handler's lock. It reports whether the record was
	// emitted. Emit failures are routed to the error side channel and
	// additionally returned for direct callers; the dispatch walk ignores
	// them.
	Handle(r *core.Record) (bool, error)

	// Emit writes the record under the handler's lock, bypassing the level
	// gate and filters. The last-resort path uses it directly.
	Emit(r *core.Record) error

	// Level returns the handler's threshold; NOTSET accepts everything
	Level() core.Level

	// SetLevel sets the handler's threshold
	SetLevel(level core.Level)

	// AddFilter appends a filter to the handler's chain
	AddFilter(f core.Filter)

	// RemoveFilter removes a previously added filter
	RemoveFilter(f core.Filter)

	// SetFormatter replaces the handler's formatter
	SetFormatter(f formatter.Formatter)

	// Flush forces buffered output out; idempotent
	Flush() error

	// Close releases sink resources; idempotent
	Close() error
}

// Sink holds the callbacks a concrete handler provides to Base. Emit is
// required; Flush and Close default to no-ops.
type Sink struct {
	Emit  func(r *core.Record) error
	Flush func() error
	Close func() error
}

// Base implements everything of Handler except the sink itself: level
// gating, filtering, the exclusive emit lock, formatter plumbing, and
// registration in the shutdown registry. Concrete handlers embed a *Base
// built around their Sink.
type Base struct {
	core.Filterer

	mu    sync.Mutex // exclusive emit lock, held only around the sink calls
	level atomic.Int32

	fmtMu sync.RWMutex
	fmtr  formatter.Formatter
	wf    formatter.WriterFormatter

	sink   Sink
	closed atomic.Bool
	regID  uint64
}

// NewBase creates the embeddable handler core around a sink and registers
// it for shutdown. The threshold starts at NOTSET, accepting everything.
func NewBase(sink Sink) *Base {
	b := &Base{sink: sink}
	registerForShutdown(b)
	return b
}

// Level returns the handler's threshold
func (b *Base) Level() core.Level {
	return core.Level(b.level.Load())
}

// SetLevel sets the handler's threshold
func (b *Base) SetLevel(level core.Level) {
	b.level.Store(int32(level))
}

// SetFormatter replaces the handler's formatter
func (b *Base) SetFormatter(f formatter.Formatter) {
	b.fmtMu.Lock()
	b.fmtr = f
	b.wf, _ = f.(formatter.WriterFormatter)
	b.fmtMu.Unlock()
}

// defaultFormatter renders records when a handler has none of its own
var defaultFormatter = formatter.NewTextFormatter(formatter.Config{})

// Formatter returns the handler's formatter, or the package default
func (b *Base) Formatter() formatter.Formatter {
	b.fmtMu.RLock()
	f := b.fmtr
	b.fmtMu.RUnlock()
	if f == nil {
		return defaultFormatter
	}
	return f
}

// FormatTo renders the record with the handler's formatter, writing
// directly to w when the formatter supports it. Sinks call this from their
// emit; the emit lock is already held there.
func (b *Base) FormatTo(r *core.Record, w io.Writer) error {
	b.fmtMu.RLock()
	f, wf := b.fmtr, b.wf
	b.fmtMu.RUnlock()
	if wf != nil {
		return wf.FormatTo(r, w)
	}
	if f == nil {
		return defaultFormatter.FormatTo(r, w)
	}
	data, err := f.Format(r)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Handle is the dispatch entry point described on the Handler interface
func (b *Base) Handle(r *core.Record) (bool, error) {
	if b.closed.Load() {
		return false, nil
	}
	if core.Level(b.level.Load()) > r.Level {
		return false, nil
	}
	if !b.Accept(r) {
		return false, nil
	}
	err := b.Emit(r)
	if err != nil {
		core.ReportError(err, r)
	}
	return true, err
}

// Emit runs the sink's emit under the exclusive lock. A panicking sink is
// converted into an error; nothing on this path reaches the log call site.
func (b *Base) Emit(r *core.Record) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.emitLocked(r)
}

func (b *Base) emitLocked(r *core.Record) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("emit panicked: %v", p)
		}
	}()
	return b.sink.Emit(r)
}

// Flush runs the sink's flush under the lock; idempotent and safe after
// Close.
func (b *Base) Flush() error {
	if b.sink.Flush == nil {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sink.Flush()
}

// Close releases the sink once and removes the handler from the shutdown
// registry. Later calls return nil.
func (b *Base) Close() error {
	if !b.closed.CompareAndSwap(false, true) {
		return nil
	}
	deregisterForShutdown(b.regID)
	if b.sink.Close == nil {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sink.Close()
}

// shutdownRegistry tracks every live handler through weak pointers so a
// handler discarded by its owner is not kept alive solely for shutdown.
var shutdownRegistry = struct {
	sync.Mutex
	handlers map[uint64]weak.Pointer[Base]
	nextID   uint64
}{handlers: make(map[uint64]weak.Pointer[Base])}

func registerForShutdown(b *Base) {
	shutdownRegistry.Lock()
	shutdownRegistry.nextID++
	b.regID = shutdownRegistry.nextID
	shutdownRegistry.handlers[b.regID] = weak.Make(b)
	shutdownRegistry.Unlock()
}

func deregisterForShutdown(id uint64) {
	shutdownRegistry.Lock()
	delete(shutdownRegistry.handlers, id)
	shutdownRegistry.Unlock()
}

// liveHandlers snapshots the registry in reverse registration order, the
// order shutdown visits handlers in. Collected handlers are skipped.
func liveHandlers() []*Base {
	shutdownRegistry.Lock()
	ids := make([]uint64, 0, len(shutdownRegistry.handlers))
	for id := range shutdownRegistry.handlers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })
	ptrs := make([]weak.Pointer[Base], len(ids))
	for i, id := range ids {
		ptrs[i] = shutdownRegistry.handlers[id]
	}
	shutdownRegistry.Unlock()

	bases := make([]*Base, 0, len(ptrs))
	for _, p := range ptrs {
		if b := p.Value(); b != nil {
			bases = append(bases, b)
		}
	}
	return bases
}

// Shutdown flushes and closes every still-registered handler, best effort:
// a failure on one handler does not prevent the remaining handlers from
// receiving the same sequence. Errors are aggregated and returned.
func Shutdown() error {
	var errs error
	for _, b := range liveHandlers() {
		errs = multierr.Append(errs, shutdownOne(b))
	}
	return errs
}

func shutdownOne(b *Base) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = multierr.Append(err, fmt.Errorf("shutdown panicked: %v", p))
		}
	}()
	err = multierr.Append(err, b.Flush())
	err = multierr.Append(err, b.Close())
	return err
}

// FlushAll flushes every still-registered handler and aggregates errors
func FlushAll() error {
	var errs error
	for _, b := range liveHandlers() {
		errs = multierr.Append(errs, b.Flush())
	}
	return errs
}
