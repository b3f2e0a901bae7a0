package handler

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/philipp01105/hlog/core"
)

func TestMultiHandler_FansOut(t *testing.T) {
	var a, b bytes.Buffer
	h := NewMultiHandler(NewWriterHandler(&a, nil), NewWriterHandler(&b, nil))
	defer h.Close()

	handled, err := h.Handle(record(core.InfoLevel, "fanout"))
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if !handled {
		t.Fatal("Handle() = false")
	}
	if !strings.Contains(a.String(), "fanout") || !strings.Contains(b.String(), "fanout") {
		t.Errorf("record did not reach both children: a=%q b=%q", a.String(), b.String())
	}
}

func TestMultiHandler_ChildrenGateIndependently(t *testing.T) {
	var a, b bytes.Buffer
	ha := NewWriterHandler(&a, nil)
	ha.SetLevel(core.ErrorLevel)
	hb := NewWriterHandler(&b, nil)
	h := NewMultiHandler(ha, hb)
	defer h.Close()

	if _, err := h.Handle(record(core.InfoLevel, "selective")); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if a.Len() != 0 {
		t.Errorf("ERROR-gated child received an INFO record: %s", a.String())
	}
	if !strings.Contains(b.String(), "selective") {
		t.Errorf("ungated child missed the record: %s", b.String())
	}
}

func TestMultiHandler_FailingChildDoesNotStopSiblings(t *testing.T) {
	core.SetErrorHandler(func(err error, r *core.Record) {})
	defer core.SetErrorHandler(nil)

	var after bytes.Buffer
	bad := NewFuncHandler(func(r *core.Record) error { return errors.New("down") })
	good := NewWriterHandler(&after, nil)
	h := NewMultiHandler(bad, good)
	defer h.Close()

	handled, err := h.Handle(record(core.InfoLevel, "survives"))
	if err != nil {
		t.Fatalf("Handle() error = %v, children report their own failures", err)
	}
	if !handled {
		t.Fatal("Handle() = false")
	}
	if !strings.Contains(after.String(), "survives") {
		t.Error("sibling after the failing child did not receive the record")
	}
}

func TestMultiHandler_CloseAggregates(t *testing.T) {
	e := errors.New("close failed")
	bad := &FuncHandler{Base: NewBase(Sink{
		Emit:  func(r *core.Record) error { return nil },
		Close: func() error { return e },
	})}
	var closedOther bool
	other := &FuncHandler{Base: NewBase(Sink{
		Emit:  func(r *core.Record) error { return nil },
		Close: func() error { closedOther = true; return nil },
	})}

	h := NewMultiHandler(bad, other)
	err := h.Close()
	if !errors.Is(err, e) {
		t.Errorf("Close() = %v, want the child error", err)
	}
	if !closedOther {
		t.Error("second child not closed after first child's failure")
	}
}
