// Package zlog provides verbose, section-structured logging for the
// compiler pipeline.
//
// It is a direct generalization of KromDaniel-regengo's internal/compiler
// Logger (Section + Log, silent unless enabled): the same call shape, but
// backed by github.com/projectdiscovery/gologger instead of raw
// fmt.Fprintf, so pipeline traces get levels, colors, and timestamps for
// free in any binary that already imports gologger (the CLI).
package zlog

import (
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/levels"
)

// Logger emits phase-scoped trace messages for one compilation. It is not
// safe for concurrent use, matching the single-threaded compiler model.
type Logger struct {
	enabled bool
	section string
}

// New creates a Logger. When enabled is false every method is a no-op.
func New(enabled bool) *Logger {
	if enabled {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelDebug)
	}
	return &Logger{enabled: enabled}
}

// Enabled reports whether verbose logging is active.
func (l *Logger) Enabled() bool {
	return l != nil && l.enabled
}

// Section starts a new phase (front-end, elimination, coalescing, emission)
// and remembers its name so subsequent Log calls are visibly grouped.
func (l *Logger) Section(name string) {
	if !l.Enabled() {
		return
	}
	l.section = name
	gologger.Debug().Msgf("=== %s ===", name)
}

// Log records a formatted trace line under the current section.
func (l *Logger) Log(format string, args ...interface{}) {
	if !l.Enabled() {
		return
	}
	if l.section != "" {
		gologger.Debug().Msgf("["+l.section+"] "+format, args...)
		return
	}
	gologger.Debug().Msgf(format, args...)
}

// Warn records a warning that does not abort compilation.
func (l *Logger) Warn(format string, args ...interface{}) {
	if !l.Enabled() {
		return
	}
	gologger.Warning().Msgf(format, args...)
}
