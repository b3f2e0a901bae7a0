package core

import (
	"bytes"
	"strings"
	"testing"
)

func TestFilterFunc_Adapter(t *testing.T) {
	var seen *Record
	f := FilterFunc(func(r *Record) bool {
		seen = r
		return r.Level >= WarningLevel
	})

	r := &Record{Level: ErrorLevel}
	if !f.Filter(r) {
		t.Error("error record should pass")
	}
	if seen != r {
		t.Error("filter did not receive the record")
	}
	if f.Filter(&Record{Level: DebugLevel}) {
		t.Error("debug record should be rejected")
	}
}

func TestNameFilter(t *testing.T) {
	f := NewNameFilter("a.b")

	cases := []struct {
		name string
		want bool
	}{
		{"a.b", true},
		{"a.b.c", true},
		{"a.b.c.d", true},
		{"a.bc", false},
		{"a", false},
		{"x.a.b", false},
	}
	for _, tc := range cases {
		if got := f.Filter(&Record{Name: tc.name}); got != tc.want {
			t.Errorf("NameFilter(a.b).Filter(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}

	if !NewNameFilter("").Filter(&Record{Name: "anything"}) {
		t.Error("empty-name filter should accept everything")
	}
}

func TestFilterer_AllMustPass(t *testing.T) {
	var ft Filterer
	ft.AddFilter(FilterFunc(func(r *Record) bool { return true }))
	ft.AddFilter(FilterFunc(func(r *Record) bool { return r.Level >= InfoLevel }))

	if !ft.Accept(&Record{Level: InfoLevel}) {
		t.Error("record passing all filters should be accepted")
	}
	if ft.Accept(&Record{Level: DebugLevel}) {
		t.Error("one rejecting filter must reject the record")
	}
}

func TestFilterer_RemoveFilter(t *testing.T) {
	var ft Filterer
	nf := NewNameFilter("x")
	ft.AddFilter(nf)

	if ft.Accept(&Record{Name: "y"}) {
		t.Fatal("filter not installed")
	}
	ft.RemoveFilter(nf)
	if !ft.Accept(&Record{Name: "y"}) {
		t.Error("removed filter still rejecting")
	}
}

func TestFilterer_PanickingFilterRejectsAndReports(t *testing.T) {
	var buf bytes.Buffer
	SetErrorOutput(&buf)
	defer SetErrorOutput(nil)

	var ft Filterer
	ft.AddFilter(FilterFunc(func(r *Record) bool { panic("bad filter") }))

	if ft.Accept(&Record{Name: "n"}) {
		t.Error("panicking filter should count as a rejection")
	}
	if !strings.Contains(buf.String(), "bad filter") {
		t.Errorf("panic not reported through the side channel, got: %s", buf.String())
	}
}

func TestReportError_CustomHandler(t *testing.T) {
	var got error
	SetErrorHandler(func(err error, r *Record) { got = err })
	defer SetErrorHandler(nil)

	var ft Filterer
	ft.AddFilter(FilterFunc(func(r *Record) bool { panic("x") }))
	ft.Accept(&Record{})

	if got == nil {
		t.Error("custom error handler not invoked")
	}
}
