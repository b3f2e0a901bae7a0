package handler

import (
	"sort"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/philipp01105/hlog/core"
)

// ZapHandler bridges accepted records into a zap.Logger. Encoding is the
// backend's concern; the handler's formatter is unused.
type ZapHandler struct {
	*Base
	logger *zap.Logger
}

// NewZapHandler creates a handler that emits through the given zap logger
func NewZapHandler(l *zap.Logger) *ZapHandler {
	h := &ZapHandler{logger: l}
	h.Base = NewBase(Sink{Emit: h.emit, Flush: l.Sync})
	return h
}

func (h *ZapHandler) emit(r *core.Record) error {
	fields := make([]zap.Field, 0, len(r.Extra)+2)
	if r.Name != "" {
		fields = append(fields, zap.String("logger", r.Name))
	}
	if len(r.Extra) > 0 {
		keys := make([]string, 0, len(r.Extra))
		for k := range r.Extra {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fields = append(fields, zap.Any(k, r.Extra[k]))
		}
	}
	if r.Err != nil {
		fields = append(fields, zap.Error(r.Err))
	}
	h.logger.Log(zapLevel(r.Level), r.FormattedMessage(), fields...)
	return nil
}

// zapLevel maps core levels onto zap's scale. CRITICAL maps to DPanic
// rather than Fatal so a bridged record can never exit the process.
func zapLevel(level core.Level) zapcore.Level {
	switch {
	case level <= core.DebugLevel:
		return zapcore.DebugLevel
	case level <= core.InfoLevel:
		return zapcore.InfoLevel
	case level <= core.WarningLevel:
		return zapcore.WarnLevel
	case level <= core.ErrorLevel:
		return zapcore.ErrorLevel
	default:
		return zapcore.DPanicLevel
	}
}
