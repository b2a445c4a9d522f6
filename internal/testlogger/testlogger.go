// Package testlogger adapts a testing.T to the Printf logger used by the
// engine and records what was logged so tests can assert on it.
package testlogger

import (
	"fmt"
	"strings"
	"sync"
)

// TestLogger is the part of testing.T the Logger needs.
type TestLogger interface {
	Logf(format string, v ...interface{})
}

// Logger forwards to a TestLogger and keeps every message.
// It is safe for concurrent use.
type Logger struct {
	logger TestLogger

	mu    sync.Mutex
	lines []string
}

// New creates a Logger writing to logger.
func New(logger TestLogger) *Logger {
	return &Logger{logger: logger}
}

// Printf logs a message. A trailing newline is removed.
func (l *Logger) Printf(format string, v ...interface{}) {
	s := strings.TrimSuffix(fmt.Sprintf(format, v...), "\n")
	l.mu.Lock()
	l.lines = append(l.lines, s)
	l.mu.Unlock()
	l.logger.Logf("%s", s)
}

// Lines returns the messages logged so far.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.lines...)
}

// Contains reports whether any logged message contains substr.
func (l *Logger) Contains(substr string) bool {
	for _, line := range l.Lines() {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}
