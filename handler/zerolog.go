package handler

import (
	"github.com/rs/zerolog"

	"github.com/philipp01105/hlog/core"
)

// ZerologHandler bridges accepted records into a zerolog.Logger. Encoding
// is the backend's concern; the handler's formatter is unused.
type ZerologHandler struct {
	*Base
	logger zerolog.Logger
}

// NewZerologHandler creates a handler that emits through the given zerolog
// logger
func NewZerologHandler(zl zerolog.Logger) *ZerologHandler {
	h := &ZerologHandler{logger: zl}
	h.Base = NewBase(Sink{Emit: h.emit})
	return h
}

func (h *ZerologHandler) emit(r *core.Record) error {
	ev := h.logger.WithLevel(zerologLevel(r.Level))
	if r.Name != "" {
		ev = ev.Str("logger", r.Name)
	}
	if len(r.Extra) > 0 {
		ev = ev.Fields(map[string]any(r.Extra))
	}
	if r.Err != nil {
		ev = ev.Err(r.Err)
	}
	ev.Msg(r.FormattedMessage())
	return nil
}

// zerologLevel maps core levels onto zerolog's scale. WithLevel(Fatal)
// logs without exiting, so CRITICAL is safe to forward.
func zerologLevel(level core.Level) zerolog.Level {
	switch {
	case level <= core.DebugLevel:
		return zerolog.DebugLevel
	case level <= core.InfoLevel:
		return zerolog.InfoLevel
	case level <= core.WarningLevel:
		return zerolog.WarnLevel
	case level <= core.ErrorLevel:
		return zerolog.ErrorLevel
	default:
		return zerolog.FatalLevel
	}
}
