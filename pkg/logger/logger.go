package logger

import (
	"io"
	"log"
	"os"
	"strings"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Logger is a leveled printf-style logger shared by every service component.
type Logger struct {
	level Level
	debug *log.Logger
	info  *log.Logger
	warn  *log.Logger
	error *log.Logger
}

func New() *Logger {
	return NewWithLevel("info")
}

func NewWithLevel(level string) *Logger {
	return newLogger(ParseLevel(level), os.Stdout, os.Stderr)
}

func newLogger(level Level, out, errOut io.Writer) *Logger {
	flags := log.Ldate | log.Ltime | log.Lmicroseconds
	return &Logger{
		level: level,
		debug: log.New(out, "DEBUG: ", flags),
		info:  log.New(out, "INFO: ", flags),
		warn:  log.New(out, "WARN: ", flags),
		error: log.New(errOut, "ERROR: ", flags),
	}
}

func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
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

func (l *Logger) Debug(format string, v ...interface{}) {
	if l.level <= LevelDebug {
		l.debug.Printf(format, v...)
	}
}

func (l *Logger) Info(format string, v ...interface{}) {
	if l.level <= LevelInfo {
		l.info.Printf(format, v...)
	}
}

func (l *Logger) Warn(format string, v ...interface{}) {
	if l.level <= LevelWarn {
		l.warn.Printf(format, v...)
	}
}

func (l *Logger) Error(format string, v ...interface{}) {
	l.error.Printf(format, v...)
}
