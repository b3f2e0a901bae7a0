package handler

import (
	"io"
	"os"

	"github.com/philipp01105/hlog/core"
	"github.com/philipp01105/hlog/formatter"
)

// WriterHandler writes formatted records to an io.Writer. The writer is
// borrowed, not owned: Close flushes but never closes it, so handing in
// os.Stderr or a writer shared with other code is safe.
type WriterHandler struct {
	*Base
	w io.Writer
}

// NewWriterHandler creates a handler around w (default: os.Stderr) using
// the given formatter (default: TextFormatter).
func NewWriterHandler(w io.Writer, f formatter.Formatter) *WriterHandler {
	if w == nil {
		w = os.Stderr
	}
	h := &WriterHandler{w: w}
	h.Base = NewBase(Sink{Emit: h.emit, Flush: h.flush})
	if f != nil {
		h.SetFormatter(f)
	}
	return h
}

func (h *WriterHandler) emit(r *core.Record) error {
	return h.FormatTo(r, h.w)
}

func (h *WriterHandler) flush() error {
	if f, ok := h.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// FuncHandler adapts a bare emit function into a full Handler, inheriting
// level gating, filtering, and the emit lock from Base.
type FuncHandler struct {
	*Base
}

// NewFuncHandler creates a handler whose sink is the given function
func NewFuncHandler(emit func(r *core.Record) error) *FuncHandler {
	return &FuncHandler{Base: NewBase(Sink{Emit: emit})}
}
