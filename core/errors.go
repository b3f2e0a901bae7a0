package core

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// ErrorHandler receives failures from the dispatch path: sink write errors,
// formatter errors, panicking filters. The record that was being processed
// is passed when available and may be nil. Implementations must not log
// through the core again.
type ErrorHandler func(err error, r *Record)

var errorSink = struct {
	sync.RWMutex
	fn  ErrorHandler
	out io.Writer
}{
	out: os.Stderr,
}

// SetErrorHandler installs a process-wide handler for dispatch failures.
// Passing nil restores the default, which writes a single line to the
// error output writer.
func SetErrorHandler(fn ErrorHandler) {
	errorSink.Lock()
	errorSink.fn = fn
	errorSink.Unlock()
}

// SetErrorOutput redirects the default error handler's output. Passing nil
// restores os.Stderr.
func SetErrorOutput(w io.Writer) {
	errorSink.Lock()
	if w == nil {
		w = os.Stderr
	}
	errorSink.out = w
	errorSink.Unlock()
}

// ReportError routes a dispatch failure to the configured side channel.
// Nothing on this path may panic or return an error to the log call site;
// the worst outcome of any logging failure is a dropped record.
func ReportError(err error, r *Record) {
	if err == nil {
		return
	}
	errorSink.RLock()
	fn, out := errorSink.fn, errorSink.out
	errorSink.RUnlock()
	if fn != nil {
		func() {
			defer func() { _ = recover() }()
			fn(err, r)
		}()
		return
	}
	if r != nil {
		fmt.Fprintf(out, "hlog: %v (logger %q)\n", err, r.Name)
	} else {
		fmt.Fprintf(out, "hlog: %v\n", err)
	}
}
