package converter

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// Logger is an interface for logging.
// CUSTOMIZATION: Implement this interface with your preferred logging library.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// Level is a logging threshold.
type Level int

// Log levels, lowest first.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps a configured log level name to a Level. Unknown names map
// to LevelInfo.
func ParseLevel(name string) Level {
	switch strings.ToLower(name) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// NewLogger returns a Logger writing "[LEVEL] message" lines to out, dropping
// anything below level.
func NewLogger(out io.Writer, level Level) Logger {
	return &defaultLogger{out: out, level: level}
}

// NopLogger returns a Logger that discards everything.
func NopLogger() Logger {
	return NewLogger(io.Discard, LevelError+1)
}

// defaultLogger is a simple leveled logger. Writes are serialized so the
// watcher and the converter can share one.
type defaultLogger struct {
	mu    sync.Mutex
	out   io.Writer
	level Level
}

func (l *defaultLogger) log(level Level, msg string, args ...interface{}) {
	if level < l.level {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.out, "[%s] %s\n", level, fmt.Sprintf(msg, args...))
}

func (l *defaultLogger) Debug(msg string, args ...interface{}) {
	l.log(LevelDebug, msg, args...)
}

func (l *defaultLogger) Info(msg string, args ...interface{}) {
	l.log(LevelInfo, msg, args...)
}

func (l *defaultLogger) Warn(msg string, args ...interface{}) {
	l.log(LevelWarn, msg, args...)
}

func (l *defaultLogger) Error(msg string, args ...interface{}) {
	l.log(LevelError, msg, args...)
}
