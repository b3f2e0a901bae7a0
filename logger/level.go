package logger

import (
	"github.com/philipp01105/hlog/core"
)

// Level Re-export type and constants for convenience
type Level = core.Level

const (
	NOTSET        = core.NOTSET
	DebugLevel    = core.DebugLevel
	InfoLevel     = core.InfoLevel
	WarningLevel  = core.WarningLevel
	ErrorLevel    = core.ErrorLevel
	CriticalLevel = core.CriticalLevel
)

// ParseLevel converts a level name to its Level; unknown names are an error
func ParseLevel(name string) (Level, error) {
	return core.ParseLevel(name)
}

// RegisterLevelName associates a name with a level in both directions
func RegisterLevelName(level Level, name string) {
	core.RegisterLevelName(level, name)
}
