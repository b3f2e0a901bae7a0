package handler

import (
	"go.uber.org/multierr"

	"github.com/philipp01105/hlog/core"
)

// MultiHandler fans records out to several child handlers through a single
// attachment point. Each child applies its own level gate, filters, and
// emit lock; a failing child never stops its siblings.
type MultiHandler struct {
	*Base
	children []Handler
}

// NewMultiHandler creates a multi-handler over the given children
func NewMultiHandler(children ...Handler) *MultiHandler {
	h := &MultiHandler{children: children}
	h.Base = NewBase(Sink{Emit: h.emit, Flush: h.flush, Close: h.closeChildren})
	return h
}

func (h *MultiHandler) emit(r *core.Record) error {
	// Children report their own failures through the side channel
	for _, c := range h.children {
		c.Handle(r)
	}
	return nil
}

func (h *MultiHandler) flush() error {
	var errs error
	for _, c := range h.children {
		errs = multierr.Append(errs, c.Flush())
	}
	return errs
}

func (h *MultiHandler) closeChildren() error {
	var errs error
	for _, c := range h.children {
		errs = multierr.Append(errs, c.Close())
	}
	return errs
}
