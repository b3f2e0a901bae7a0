package config

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"

	"github.com/philipp01105/hlog/core"
	"github.com/philipp01105/hlog/formatter"
	"github.com/philipp01105/hlog/handler"
	"github.com/philipp01105/hlog/logger"
)

// Config describes a one-shot root setup. Zero values mean "default": a
// text formatter writing to stderr, root level untouched.
type Config struct {
	// Level is a level name applied to the root when a handler is attached
	Level string
	// Format selects the built-in formatter (default "text")
	Format string `validate:"omitempty,oneof=text json"`
	// Filename routes output to a rotating file instead of Writer
	Filename string
	// MaxSizeMB is the rotation size threshold in megabytes
	MaxSizeMB int `validate:"gte=0"`
	// MaxBackups is the number of rotated files to retain
	MaxBackups int `validate:"gte=0"`
	// MaxAgeDays is the retention age for rotated files
	MaxAgeDays int `validate:"gte=0"`
	// Compress enables gzip compression of rotated files
	Compress bool
	// Writer is the output stream when Filename is unset (default stderr)
	Writer io.Writer `validate:"-"`
	// IncludeCaller adds call-site information to the output
	IncludeCaller bool
	// TimestampFormat overrides the formatter's time layout
	TimestampFormat string
	// Force detaches and closes any handlers already on the root first
	Force bool
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Apply configures the process-wide root logger. It does nothing when the
// root already has handlers, unless Force is set; this keeps it safe to
// call from several places without stacking duplicate handlers.
func Apply(cfg Config) error {
	return ApplyTo(logger.DefaultManager(), cfg)
}

// ApplyTo is Apply against an explicit manager. All failure modes are
// configuration errors reported synchronously; nothing is deferred to the
// first log call.
func ApplyTo(m *logger.Manager, cfg Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if cfg.Filename != "" && cfg.Writer != nil {
		return errors.New("filename and writer are mutually exclusive")
	}

	var level core.Level
	if cfg.Level != "" {
		var err error
		level, err = core.ParseLevel(cfg.Level)
		if err != nil {
			return err
		}
	}

	root := m.Root()
	if cfg.Force {
		for _, h := range root.Handlers() {
			root.RemoveHandler(h)
			h.Close()
		}
	}
	if len(root.Handlers()) > 0 {
		return nil
	}

	fcfg := formatter.Config{
		IncludeCaller:   cfg.IncludeCaller,
		TimestampFormat: cfg.TimestampFormat,
	}
	var f formatter.Formatter
	if cfg.Format == "json" {
		f = formatter.NewJSONFormatter(fcfg)
	} else {
		f = formatter.NewTextFormatter(fcfg)
	}

	var h handler.Handler
	if cfg.Filename != "" {
		fh, err := handler.NewFileHandler(handler.FileConfig{
			Filename:   cfg.Filename,
			MaxSizeMB:  cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAgeDays: cfg.MaxAgeDays,
			Compress:   cfg.Compress,
			Formatter:  f,
		})
		if err != nil {
			return err
		}
		h = fh
	} else {
		h = handler.NewWriterHandler(cfg.Writer, f)
	}

	root.AddHandler(h)
	if cfg.Level != "" {
		root.SetLevel(level)
	}
	return nil
}
