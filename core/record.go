package core

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"sync"
	"time"
)

// CallerInfo contains information about the call site of a log call
type CallerInfo struct {
	File      string
	ShortFile string
	Line      int
	Function  string
	Defined   bool
}

// GetCaller retrieves caller information
func GetCaller(skip int) CallerInfo {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return CallerInfo{}
	}

	fn := runtime.FuncForPC(pc)
	var funcName string
	if fn != nil {
		funcName = fn.Name()
	}

	return CallerInfo{
		File:      file,
		ShortFile: filepath.Base(file),
		Line:      line,
		Function:  funcName,
		Defined:   true,
	}
}

// Record is an immutable snapshot of one logging event. It is created once
// per accepted log call, read by filters and handlers, and discarded after
// dispatch. Message holds the raw template; Args are applied lazily by the
// formatter, never here.
type Record struct {
	Name      string
	Level     Level
	Message   string
	Args      []any
	Time      time.Time
	Caller    CallerInfo
	PID       int
	Goroutine uint64
	Err       error
	Stack     string
	Extra     map[string]any
}

// FormattedMessage applies the positional arguments to the message template.
// Records with no arguments return the template untouched.
func (r *Record) FormattedMessage() string {
	if len(r.Args) == 0 {
		return r.Message
	}
	return fmt.Sprintf(r.Message, r.Args...)
}

// reservedKeys are the record's own attribute names. Extra attributes must
// not collide with them; the collision is a configuration error surfaced to
// the caller at merge time, not at dispatch time.
var reservedKeys = map[string]struct{}{
	"name":      {},
	"level":     {},
	"levelname": {},
	"msg":       {},
	"message":   {},
	"args":      {},
	"time":      {},
	"file":      {},
	"line":      {},
	"func":      {},
	"pid":       {},
	"goroutine": {},
	"err":       {},
	"stack":     {},
}

// IsReservedKey reports whether key is one of the record's own attribute
// names and therefore unusable as an extra-attribute key
func IsReservedKey(key string) bool {
	_, ok := reservedKeys[key]
	return ok
}

// RecordFactory builds a Record from the inputs of an accepted log call.
// Replaceable per Manager; implementations must be deterministic given
// identical inputs, timestamp and goroutine identity aside.
type RecordFactory func(name string, level Level, caller CallerInfo, msg string, args []any, err error, stack string, extra map[string]any) (*Record, error)

// pid is captured once; it cannot change for the life of the process.
var pid = os.Getpid()

// NewRecord is the default RecordFactory.
func NewRecord(name string, level Level, caller CallerInfo, msg string, args []any, err error, stack string, extra map[string]any) (*Record, error) {
	r := &Record{
		Name:      name,
		Level:     level,
		Message:   msg,
		Args:      args,
		Time:      Now(),
		Caller:    caller,
		PID:       pid,
		Goroutine: GoroutineID(),
		Err:       err,
		Stack:     stack,
	}
	if len(extra) > 0 {
		r.Extra = make(map[string]any, len(extra))
		for k, v := range extra {
			if _, clash := reservedKeys[k]; clash {
				return nil, fmt.Errorf("extra key %q collides with a record attribute", k)
			}
			r.Extra[k] = v
		}
	}
	return r, nil
}

var goroutineSpace = []byte("goroutine ")

// littleBuf pools the small stack buffers used to read the goroutine header.
var littleBuf = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, 64)
		return &buf
	},
}

// GoroutineID parses the current goroutine id out of the runtime.Stack
// header ("goroutine 4707 [...").
func GoroutineID() uint64 {
	bp := littleBuf.Get().(*[]byte)
	defer littleBuf.Put(bp)
	b := *bp
	b = b[:runtime.Stack(b, false)]
	b = bytes.TrimPrefix(b, goroutineSpace)
	i := bytes.IndexByte(b, ' ')
	if i < 0 {
		return 0
	}
	n, err := strconv.ParseUint(string(b[:i]), 10, 64)
	if err != nil {
		return 0
	}
	return n
}
