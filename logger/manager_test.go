package logger

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipp01105/hlog/core"
	"github.com/philipp01105/hlog/handler"
)

// captureHandler records every record it emits, for dispatch tests
type captureHandler struct {
	*handler.FuncHandler
	mu      sync.Mutex
	records []*core.Record
}

func newCaptureHandler() *captureHandler {
	c := &captureHandler{}
	c.FuncHandler = handler.NewFuncHandler(func(r *core.Record) error {
		c.mu.Lock()
		c.records = append(c.records, r)
		c.mu.Unlock()
		return nil
	})
	return c
}

func (c *captureHandler) all() []*core.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*core.Record(nil), c.records...)
}

func (c *captureHandler) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.records)
}

func TestManager_GetLoggerIdempotent(t *testing.T) {
	m := NewManager()
	a := m.GetLogger("app.db")
	b := m.GetLogger("app.db")
	require.Same(t, a, b, "same name must return the identical instance")
}

func TestManager_EmptyNameIsRoot(t *testing.T) {
	m := NewManager()
	require.Same(t, m.Root(), m.GetLogger(""))
}

func TestManager_ParentChain(t *testing.T) {
	m := NewManager()
	abc := m.GetLogger("a.b.c")

	// only a.b.c exists; both prefixes are placeholders, so the parent is root
	require.Same(t, m.Root(), abc.Parent())

	// materializing a.b splices it between a.b.c and the root
	ab := m.GetLogger("a.b")
	require.Same(t, ab, abc.Parent())
	require.Same(t, m.Root(), ab.Parent())

	// materializing a splices again, one level up
	a := m.GetLogger("a")
	require.Same(t, a, ab.Parent())
	require.Same(t, m.Root(), a.Parent())
	require.Same(t, ab, abc.Parent(), "grandchild keeps its nearer parent")
}

func TestManager_PlaceholderCollectsSiblings(t *testing.T) {
	m := NewManager()
	x := m.GetLogger("svc.http")
	y := m.GetLogger("svc.grpc")
	require.Same(t, m.Root(), x.Parent())
	require.Same(t, m.Root(), y.Parent())

	svc := m.GetLogger("svc")
	assert.Same(t, svc, x.Parent())
	assert.Same(t, svc, y.Parent())
}

func TestManager_RootDefaultsToWarning(t *testing.T) {
	m := NewManager()
	assert.Equal(t, core.WarningLevel, m.Root().Level())
	assert.Equal(t, core.WarningLevel, m.Root().EffectiveLevel())
}

func TestLogger_EffectiveLevelInheritance(t *testing.T) {
	m := NewManager()
	a := m.GetLogger("a")
	ab := m.GetLogger("a.b")

	// NOTSET everywhere below the root: both inherit WARNING
	assert.Equal(t, core.WarningLevel, a.EffectiveLevel())
	assert.Equal(t, core.WarningLevel, ab.EffectiveLevel())

	ab.SetLevel(core.DebugLevel)
	assert.Equal(t, core.DebugLevel, ab.EffectiveLevel())
	assert.Equal(t, core.WarningLevel, a.EffectiveLevel(), "sibling chain untouched")

	a.SetLevel(core.ErrorLevel)
	assert.Equal(t, core.ErrorLevel, a.EffectiveLevel())
	assert.Equal(t, core.DebugLevel, ab.EffectiveLevel(), "own level wins over the ancestor")
}

func TestLogger_EnabledTracksMutations(t *testing.T) {
	m := NewManager()
	l := m.GetLogger("a.b")

	// first query populates the cache
	assert.False(t, l.Enabled(core.InfoLevel))
	assert.True(t, l.Enabled(core.WarningLevel))

	// an ancestor change must invalidate the cached answers
	m.GetLogger("a").SetLevel(core.DebugLevel)
	assert.True(t, l.Enabled(core.InfoLevel))

	m.GetLogger("a").SetLevel(core.CriticalLevel)
	assert.False(t, l.Enabled(core.WarningLevel))
}

func TestManager_DisableThreshold(t *testing.T) {
	m := NewManager()
	l := m.GetLogger("noisy")
	l.SetLevel(core.DebugLevel)

	require.True(t, l.Enabled(core.InfoLevel))

	m.SetDisableThreshold(core.InfoLevel)
	assert.False(t, l.Enabled(core.DebugLevel))
	assert.False(t, l.Enabled(core.InfoLevel), "the threshold itself is suppressed too")
	assert.True(t, l.Enabled(core.WarningLevel))
	assert.Equal(t, core.InfoLevel, m.DisableThreshold())

	m.SetDisableThreshold(core.NOTSET)
	assert.True(t, l.Enabled(core.InfoLevel))
}

func TestManager_CustomLoggerFactory(t *testing.T) {
	m := NewManager()
	m.SetLoggerFactory(func(name string) *Logger {
		l := NewLogger(name)
		l.SetLevel(core.DebugLevel)
		return l
	})

	l := m.GetLogger("tuned")
	assert.Equal(t, core.DebugLevel, l.Level())
	assert.Same(t, m, l.Manager(), "manager wiring overrides whatever the factory left")

	m.SetLoggerFactory(nil)
	assert.Equal(t, core.NOTSET, m.GetLogger("plain").Level())
}

func TestManager_CustomRecordFactory(t *testing.T) {
	m := NewManager()
	m.SetLastResort(nil)
	m.SetRecordFactory(func(name string, level core.Level, caller core.CallerInfo, msg string, args []any, err error, stack string, extra map[string]any) (*core.Record, error) {
		r, ferr := core.NewRecord(name, level, caller, msg, args, err, stack, extra)
		if ferr != nil {
			return nil, ferr
		}
		if r.Extra == nil {
			r.Extra = map[string]any{}
		}
		r.Extra["region"] = "eu-west-1"
		return r, nil
	})

	capture := newCaptureHandler()
	defer capture.Close()
	l := m.GetLogger("svc")
	l.AddHandler(capture)
	l.Warning("stamped")

	records := capture.all()
	require.Len(t, records, 1)
	assert.Equal(t, "eu-west-1", records[0].Extra["region"])
}

func TestManager_LastResort(t *testing.T) {
	m := NewManager()
	lr := newCaptureHandler()
	defer lr.Close()
	lr.SetLevel(core.WarningLevel)
	m.SetLastResort(lr)

	l := m.GetLogger("orphan")
	l.SetLevel(core.DebugLevel)

	// below the last resort's threshold nothing happens at all
	l.Debug("too quiet")
	assert.Equal(t, 0, lr.count())
	assert.False(t, m.WarnedNoHandler())

	// at or above the threshold the record is emitted directly
	l.Error("loud enough")
	require.Equal(t, 1, lr.count())
	assert.Equal(t, "loud enough", lr.all()[0].Message)
	assert.True(t, m.WarnedNoHandler())
}

func TestManager_LastResortBypassesItsFilters(t *testing.T) {
	m := NewManager()
	lr := newCaptureHandler()
	defer lr.Close()
	lr.AddFilter(core.FilterFunc(func(r *core.Record) bool { return false }))
	m.SetLastResort(lr)

	m.GetLogger("orphan").Error("still delivered")
	assert.Equal(t, 1, lr.count(), "the fallback must not be filtered away")
}

func TestManager_NoLastResortWarnsOnce(t *testing.T) {
	reports := 0
	core.SetErrorHandler(func(err error, r *core.Record) { reports++ })
	defer core.SetErrorHandler(nil)

	m := NewManager()
	m.SetLastResort(nil)

	l := m.GetLogger("orphan")
	l.Error("first")
	l.Error("second")

	assert.Equal(t, 1, reports, "the missing-handler warning fires once per manager")
	assert.True(t, m.WarnedNoHandler())
}

func TestLogger_Child(t *testing.T) {
	m := NewManager()
	app := m.GetLogger("app")
	db := app.Child("db")
	require.NotNil(t, db)
	assert.Equal(t, "app.db", db.Name())
	assert.Same(t, db, m.GetLogger("app.db"))

	// a child of the root carries no leading dot
	assert.Equal(t, "worker", m.Root().Child("worker").Name())
}
