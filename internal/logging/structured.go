// Package logging provides structured JSON logging for intentwave
// components.
package logging

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Level represents log severity
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Event represents a structured log event
type Event struct {
	Timestamp string                 `json:"ts"`
	Level     Level                  `json:"level"`
	Component string                 `json:"component"`
	Event     string                 `json:"event"`
	Session   string                 `json:"session,omitempty"`
	Wave      int                    `json:"wave,omitempty"`
	Intent    string                 `json:"intent,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
	Duration  int64                  `json:"duration_ms,omitempty"`
	Error     string                 `json:"error,omitempty"`
	Extra     map[string]interface{} `json:"extra,omitempty"`
}

// Logger provides structured logging
type Logger struct {
	component string
	session   string
	wave      int
	intent    string
	requestID string
}

// New creates a new logger for a component
func New(component string) *Logger {
	return &Logger{
		component: component,
		session:   os.Getenv("INTENTWAVE_SESSION_ID"),
	}
}

// WithSession sets the planning-session context
func (l *Logger) WithSession(session string) *Logger {
	next := *l
	next.session = session
	return &next
}

// WithWave sets the wave-index context
func (l *Logger) WithWave(wave int) *Logger {
	next := *l
	next.wave = wave
	return &next
}

// WithIntent sets the intent-id context
func (l *Logger) WithIntent(intent string) *Logger {
	next := *l
	next.intent = intent
	return &next
}

// WithRequestID sets the per-dispatch-attempt request-id context, so a
// single intent's retried/escalated attempts can each be traced
// independently in the log stream.
func (l *Logger) WithRequestID(requestID string) *Logger {
	next := *l
	next.requestID = requestID
	return &next
}

// log emits a structured log event
func (l *Logger) log(level Level, event string, extra map[string]interface{}, err error) {
	e := Event{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     level,
		Component: l.component,
		Event:     event,
		Session:   l.session,
		Wave:      l.wave,
		Intent:    l.intent,
		RequestID: l.requestID,
		Extra:     extra,
	}

	if err != nil {
		e.Error = err.Error()
	}

	data, _ := json.Marshal(e)
	fmt.Fprintln(os.Stderr, string(data))
}

// Debug logs a debug event
func (l *Logger) Debug(event string, extra map[string]interface{}) {
	l.log(LevelDebug, event, extra, nil)
}

// Info logs an info event
func (l *Logger) Info(event string, extra map[string]interface{}) {
	l.log(LevelInfo, event, extra, nil)
}

// Warn logs a warning event
func (l *Logger) Warn(event string, extra map[string]interface{}, err error) {
	l.log(LevelWarn, event, extra, err)
}

// Error logs an error event
func (l *Logger) Error(event string, extra map[string]interface{}, err error) {
	l.log(LevelError, event, extra, err)
}

// TimedEvent logs an event with duration, used for wave/solver timings.
func (l *Logger) TimedEvent(event string, start time.Time, extra map[string]interface{}) {
	e := Event{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     LevelInfo,
		Component: l.component,
		Event:     event,
		Session:   l.session,
		Wave:      l.wave,
		Intent:    l.intent,
		RequestID: l.requestID,
		Duration:  time.Since(start).Milliseconds(),
		Extra:     extra,
	}

	data, _ := json.Marshal(e)
	fmt.Fprintln(os.Stderr, string(data))
}
