package handler

import (
	"errors"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/philipp01105/hlog/core"
	"github.com/philipp01105/hlog/formatter"
)

// FileHandler writes formatted records to a rotating log file
type FileHandler struct {
	*Base
	out *lumberjack.Logger
}

// FileConfig holds configuration for the file handler
type FileConfig struct {
	// Filename is the path to the log file (required)
	Filename string
	// MaxSizeMB is the maximum size in megabytes before rotation (default 100)
	MaxSizeMB int
	// MaxBackups is the maximum number of old log files to retain (0 = keep all)
	MaxBackups int
	// MaxAgeDays is the maximum age in days before old files are deleted (0 = keep forever)
	MaxAgeDays int
	// Compress enables gzip compression of rotated files
	Compress bool
	// Formatter to use (default: TextFormatter)
	Formatter formatter.Formatter
}

// NewFileHandler creates a new file handler. A missing filename is a
// configuration error reported here, not deferred to the first write.
func NewFileHandler(cfg FileConfig) (*FileHandler, error) {
	if cfg.Filename == "" {
		return nil, errors.New("filename is required")
	}

	out := &lumberjack.Logger{
		Filename:   cfg.Filename,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}

	h := &FileHandler{out: out}
	h.Base = NewBase(Sink{Emit: h.emit, Close: out.Close})
	if cfg.Formatter != nil {
		h.SetFormatter(cfg.Formatter)
	}
	return h, nil
}

func (h *FileHandler) emit(r *core.Record) error {
	return h.FormatTo(r, h.out)
}

// Rotate forces an immediate rotation of the underlying file
func (h *FileHandler) Rotate() error {
	return h.out.Rotate()
}
