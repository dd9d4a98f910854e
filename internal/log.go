package internal

import (
	"log"
	"os"
)

// LogLevel orders logging verbosity from ERROR (always shown) to TRACE.
type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
	LogLevelTrace
)

// levelNames maps LOG_LEVEL environment values to levels.
var levelNames = map[string]LogLevel{
	"ERROR": LogLevelError,
	"WARN":  LogLevelWarn,
	"INFO":  LogLevelInfo,
	"DEBUG": LogLevelDebug,
	"TRACE": LogLevelTrace,
}

// Logger is the leveled logger shared across the loaders, engines, and
// servers. Dataset loaders report row counts at INFO; the retriever logs
// skipped collections at WARN so a partial failure stays visible without
// failing the request.
type Logger struct {
	level LogLevel
}

// NewLogger returns a logger that emits messages at or below level.
func NewLogger(level LogLevel) *Logger {
	return &Logger{level: level}
}

// NewDefaultLogger reads LOG_LEVEL from the environment, defaulting to INFO
// when unset or unrecognized.
func NewDefaultLogger() *Logger {
	if level, ok := levelNames[os.Getenv("LOG_LEVEL")]; ok {
		return &Logger{level: level}
	}
	return &Logger{level: LogLevelInfo}
}

func (l *Logger) Error(format string, args ...interface{}) {
	if l.level >= LogLevelError {
		log.Printf("[ERROR] "+format, args...)
	}
}

func (l *Logger) Warn(format string, args ...interface{}) {
	if l.level >= LogLevelWarn {
		log.Printf("[WARN] "+format, args...)
	}
}

func (l *Logger) Info(format string, args ...interface{}) {
	if l.level >= LogLevelInfo {
		log.Printf("[INFO] "+format, args...)
	}
}

func (l *Logger) Debug(format string, args ...interface{}) {
	if l.level >= LogLevelDebug {
		log.Printf("[DEBUG] "+format, args...)
	}
}

func (l *Logger) Trace(format string, args ...interface{}) {
	if l.level >= LogLevelTrace {
		log.Printf("[TRACE] "+format, args...)
	}
}

// GetLevel returns the configured level.
func (l *Logger) GetLevel() LogLevel {
	return l.level
}

// DefaultLogger is the process-wide logger used when no instance is injected.
var DefaultLogger = NewDefaultLogger()
