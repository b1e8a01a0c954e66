package utils

import (
	"fmt"
	"io"
	"log"
	"os"
)

// Logger is a leveled wrapper over the standard logger. The terminal
// belongs to the chat view while the app runs, so output goes to a file
// when one is configured and nowhere otherwise.
type Logger struct {
	*log.Logger
	level string
	f     *os.File
}

// NewLogger opens path for appending and logs into it. An empty path
// yields a logger that discards everything.
func NewLogger(level, path string) (*Logger, error) {
	if path == "" {
		return &Logger{Logger: log.New(io.Discard, "", log.LstdFlags), level: level}, nil
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return &Logger{Logger: log.New(f, "", log.LstdFlags), level: level, f: f}, nil
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	if l.f == nil {
		return nil
	}
	return l.f.Close()
}

func (l *Logger) Debugf(format string, args ...any) {
	if l.level == "debug" {
		l.Printf("DEBUG: "+format, args...)
	}
}

func (l *Logger) Infof(format string, args ...any) {
	l.Printf("INFO: "+format, args...)
}

func (l *Logger) Warnf(format string, args ...any) {
	l.Printf("WARN: "+format, args...)
}

func (l *Logger) Errorf(format string, args ...any) {
	l.Printf("ERROR: "+format, args...)
}
