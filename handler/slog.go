package handler

import (
	"context"
	"log/slog"
	"time"

	"github.com/philipp01105/hlog/core"
)

// SlogHandler is an adapter that implements slog.Handler on top of an hlog
// Handler, so the dispatch core can serve as a drop-in backend for log/slog.
type SlogHandler struct {
	handler Handler
	level   core.Level
	extra   map[string]any
	group   string
}

// NewSlogHandler creates a new slog.Handler adapter wrapping the given Handler.
func NewSlogHandler(h Handler, level core.Level) *SlogHandler {
	return &SlogHandler{
		handler: h,
		level:   level,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (s *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return slogLevelToCore(level) >= s.level
}

// Handle converts a slog.Record into a core.Record and passes it to the
// wrapped handler.
func (s *SlogHandler) Handle(_ context.Context, record slog.Record) error {
	t := record.Time
	if t.IsZero() {
		t = time.Now()
	}

	var extra map[string]any
	if len(s.extra) > 0 || record.NumAttrs() > 0 {
		extra = make(map[string]any, len(s.extra)+record.NumAttrs())
		for k, v := range s.extra {
			extra[k] = v
		}
		record.Attrs(func(a slog.Attr) bool {
			k, v := slogAttr(s.group, a)
			extra[k] = v
			return true
		})
	}

	r := &core.Record{
		Time:    t,
		Level:   slogLevelToCore(record.Level),
		Message: record.Message,
		Extra:   extra,
	}
	_, err := s.handler.Handle(r)
	return err
}

// WithAttrs returns a new SlogHandler with additional attributes.
func (s *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	extra := make(map[string]any, len(s.extra)+len(attrs))
	for k, v := range s.extra {
		extra[k] = v
	}
	for _, a := range attrs {
		k, v := slogAttr(s.group, a)
		extra[k] = v
	}
	return &SlogHandler{
		handler: s.handler,
		level:   s.level,
		extra:   extra,
		group:   s.group,
	}
}

// WithGroup returns a new SlogHandler with the given group name.
func (s *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return s
	}
	newGroup := name
	if s.group != "" {
		newGroup = s.group + "." + name
	}
	extra := make(map[string]any, len(s.extra))
	for k, v := range s.extra {
		extra[k] = v
	}
	return &SlogHandler{
		handler: s.handler,
		level:   s.level,
		extra:   extra,
		group:   newGroup,
	}
}

// slogLevelToCore converts a slog.Level to a core.Level.
func slogLevelToCore(level slog.Level) core.Level {
	switch {
	case level >= slog.LevelError:
		return core.ErrorLevel
	case level >= slog.LevelWarn:
		return core.WarningLevel
	case level >= slog.LevelInfo:
		return core.InfoLevel
	default:
		return core.DebugLevel
	}
}

// slogAttr converts a slog.Attr into an extra-attribute pair, prepending
// the group prefix if present. Group attrs are flattened with a dotted key.
func slogAttr(group string, a slog.Attr) (string, any) {
	key := a.Key
	if group != "" {
		key = group + "." + a.Key
	}

	a.Value = a.Value.Resolve()

	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		if len(attrs) > 0 {
			return slogAttr(key, attrs[0])
		}
	}
	return key, a.Value.Any()
}
