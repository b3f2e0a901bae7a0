package formatter

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/philipp01105/hlog/core"
)

// TextFormatter formats log records as human-readable text
type TextFormatter struct {
	Config
}

// NewTextFormatter creates a new text formatter
func NewTextFormatter(cfg Config) *TextFormatter {
	if cfg.TimestampFormat == "" {
		cfg.TimestampFormat = time.RFC3339
	}
	return &TextFormatter{Config: cfg}
}

// Format formats a record as text
func (f *TextFormatter) Format(r *core.Record) ([]byte, error) {
	buf := getBuffer()
	defer putBuffer(buf)

	f.formatToBuffer(r, buf)

	// Copy buffer content to return
	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result, nil
}

// FormatTo formats a record and writes it directly to the writer
func (f *TextFormatter) FormatTo(r *core.Record, w io.Writer) error {
	buf := getBuffer()

	f.formatToBuffer(r, buf)

	_, err := w.Write(buf.Bytes())
	putBuffer(buf)
	return err
}

// formatToBuffer writes the formatted record into the given buffer
func (f *TextFormatter) formatToBuffer(r *core.Record, buf *bytes.Buffer) {
	// Timestamp - use AppendFormat to avoid string allocation
	buf.Write(r.Time.AppendFormat(buf.AvailableBuffer(), f.TimestampFormat))

	// Level names come from the runtime name table; custom levels print
	// their registered name
	buf.WriteString(" [")
	buf.WriteString(core.LevelName(r.Level))
	buf.WriteString("] ")

	if r.Name != "" {
		buf.WriteString(r.Name)
		buf.WriteString(": ")
	}

	// Caller info if enabled
	if f.IncludeCaller && r.Caller.Defined {
		buf.WriteByte('[')
		buf.WriteString(r.Caller.ShortFile)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(r.Caller.Line))
		buf.WriteString("] ")
	}

	// Positional arguments are applied here, lazily
	buf.WriteString(r.FormattedMessage())

	for _, key := range sortedKeys(r.Extra) {
		buf.WriteByte(' ')
		buf.WriteString(key)
		buf.WriteByte('=')
		appendTextValue(buf, r.Extra[key])
	}

	if r.Err != nil {
		buf.WriteString(" err=")
		buf.WriteString(r.Err.Error())
	}

	buf.WriteByte('\n')

	if r.Stack != "" {
		buf.WriteString(r.Stack)
		if r.Stack[len(r.Stack)-1] != '\n' {
			buf.WriteByte('\n')
		}
	}
}

// appendTextValue writes a scalar value without going through fmt for the
// common types
func appendTextValue(buf *bytes.Buffer, v any) {
	switch val := v.(type) {
	case string:
		buf.WriteString(val)
	case int:
		buf.Write(strconv.AppendInt(buf.AvailableBuffer(), int64(val), 10))
	case int64:
		buf.Write(strconv.AppendInt(buf.AvailableBuffer(), val, 10))
	case uint64:
		buf.Write(strconv.AppendUint(buf.AvailableBuffer(), val, 10))
	case float64:
		buf.Write(strconv.AppendFloat(buf.AvailableBuffer(), val, 'f', -1, 64))
	case bool:
		buf.Write(strconv.AppendBool(buf.AvailableBuffer(), val))
	case time.Duration:
		buf.WriteString(val.String())
	case time.Time:
		buf.Write(val.AppendFormat(buf.AvailableBuffer(), time.RFC3339))
	case error:
		buf.WriteString(val.Error())
	default:
		fmt.Fprintf(buf, "%v", val)
	}
}
