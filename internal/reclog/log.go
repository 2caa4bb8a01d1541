// Package reclog is a small Logger/Helper/level-filter facade grown in
// the shape of github.com/saferwall/pe/log, which the reconcat
// orchestrator and struct readers call the same way pe's File calls its
// own logger: r.logger.Warnf(...), gated behind NewFilter(NewStdLogger(...), level).
package reclog

import (
	"fmt"
	"io"
	"log"
	"os"
)

// Level orders log severities; NewFilter drops anything below its
// configured minimum.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger is the sink every Helper call eventually reaches.
type Logger interface {
	Log(level Level, msg string) error
}

type stdLogger struct {
	std *log.Logger
}

// NewStdLogger returns a Logger that writes "LEVEL msg" lines to w via
// the standard library's log.Logger.
func NewStdLogger(w io.Writer) Logger {
	return &stdLogger{std: log.New(w, "", log.LstdFlags)}
}

func (s *stdLogger) Log(level Level, msg string) error {
	s.std.Printf("%s %s", level, msg)
	return nil
}

type filterLogger struct {
	next Logger
	min  Level
}

// NewFilter wraps next so only entries at or above min are forwarded.
func NewFilter(next Logger, min Level) Logger {
	return &filterLogger{next: next, min: min}
}

func (f *filterLogger) Log(level Level, msg string) error {
	if level < f.min {
		return nil
	}
	return f.next.Log(level, msg)
}

// Helper provides leveled printf-style convenience methods over a Logger.
type Helper struct {
	logger Logger
}

// NewHelper wraps logger in a Helper. A nil logger is replaced with a
// filtered stderr logger at LevelWarn, so callers that skip configuring
// one still get diagnostics without drowning in debug noise.
func NewHelper(logger Logger) *Helper {
	if logger == nil {
		logger = NewFilter(NewStdLogger(os.Stderr), LevelWarn)
	}
	return &Helper{logger: logger}
}

func (h *Helper) Debugf(format string, args ...interface{}) {
	h.logger.Log(LevelDebug, fmt.Sprintf(format, args...))
}

func (h *Helper) Infof(format string, args ...interface{}) {
	h.logger.Log(LevelInfo, fmt.Sprintf(format, args...))
}

func (h *Helper) Warnf(format string, args ...interface{}) {
	h.logger.Log(LevelWarn, fmt.Sprintf(format, args...))
}

func (h *Helper) Errorf(format string, args ...interface{}) {
	h.logger.Log(LevelError, fmt.Sprintf(format, args...))
}
