package core

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// Level represents the severity of a log record. Higher values are more
// severe. NOTSET on a logger means "inherit the level from an ancestor".
type Level int

const (
	// NOTSET makes a logger defer to its nearest ancestor with a level set
	NOTSET Level = 0
	// DebugLevel for detailed debugging information
	DebugLevel Level = 10
	// InfoLevel for general informational messages
	InfoLevel Level = 20
	// WarningLevel for warning messages (default root level)
	WarningLevel Level = 30
	// ErrorLevel for error messages
	ErrorLevel Level = 40
	// CriticalLevel for unrecoverable errors
	CriticalLevel Level = 50
)

// levelNames is the bidirectional name table. Custom levels registered at
// runtime live alongside the canonical ones; both directions are kept
// consistent under the same lock.
var levelNames = struct {
	sync.RWMutex
	toName  map[Level]string
	toLevel map[string]Level
}{
	toName: map[Level]string{
		NOTSET:        "NOTSET",
		DebugLevel:    "DEBUG",
		InfoLevel:     "INFO",
		WarningLevel:  "WARNING",
		ErrorLevel:    "ERROR",
		CriticalLevel: "CRITICAL",
	},
	toLevel: map[string]Level{
		"NOTSET":   NOTSET,
		"DEBUG":    DebugLevel,
		"INFO":     InfoLevel,
		"WARNING":  WarningLevel,
		"ERROR":    ErrorLevel,
		"CRITICAL": CriticalLevel,
	},
}

// RegisterLevelName associates a name with a level in both directions.
// Registering a name for a level that already has a different name replaces
// the old mapping entirely, so a subsequent ParseLevel of the old name fails.
func RegisterLevelName(level Level, name string) {
	levelNames.Lock()
	defer levelNames.Unlock()

	if old, ok := levelNames.toName[level]; ok && old != name {
		delete(levelNames.toLevel, old)
	}
	if prev, ok := levelNames.toLevel[name]; ok && prev != level {
		delete(levelNames.toName, prev)
	}
	levelNames.toName[level] = name
	levelNames.toLevel[name] = level
}

// LevelName returns the registered name for a level, or "Level N" when the
// level has no registered name.
func LevelName(level Level) string {
	levelNames.RLock()
	name, ok := levelNames.toName[level]
	levelNames.RUnlock()
	if ok {
		return name
	}
	return "Level " + strconv.Itoa(int(level))
}

// ParseLevel converts a level name to its Level. Unknown names are an error,
// never silently mapped to a default.
func ParseLevel(name string) (Level, error) {
	levelNames.RLock()
	level, ok := levelNames.toLevel[name]
	if !ok {
		level, ok = levelNames.toLevel[strings.ToUpper(name)]
	}
	levelNames.RUnlock()
	if !ok {
		return NOTSET, fmt.Errorf("unknown level name: %q", name)
	}
	return level, nil
}

// String returns the string representation of the level
func (l Level) String() string {
	return LevelName(l)
}
