package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"
)

func TestLoggerCreation(t *testing.T) {
	os.Setenv("INTENTWAVE_SESSION_ID", "sess-1")
	defer os.Unsetenv("INTENTWAVE_SESSION_ID")

	logger := New("test-component")

	if logger.component != "test-component" {
		t.Errorf("expected component 'test-component', got '%s'", logger.component)
	}
	if logger.session != "sess-1" {
		t.Errorf("expected session 'sess-1', got '%s'", logger.session)
	}
}

func TestLoggerWithSession(t *testing.T) {
	logger := New("component").WithSession("sess-2")

	if logger.session != "sess-2" {
		t.Errorf("expected session 'sess-2', got '%s'", logger.session)
	}
}

func TestLoggerWithWave(t *testing.T) {
	logger := New("component").WithWave(3)

	if logger.wave != 3 {
		t.Errorf("expected wave 3, got %d", logger.wave)
	}
}

func TestLoggerWithIntent(t *testing.T) {
	logger := New("component").WithIntent("intent-7")

	if logger.intent != "intent-7" {
		t.Errorf("expected intent 'intent-7', got '%s'", logger.intent)
	}
}

func TestEventSerialization(t *testing.T) {
	event := Event{
		Timestamp: "2024-01-01T00:00:00Z",
		Level:     LevelInfo,
		Component: "test",
		Event:     "test_event",
		Session:   "sess",
		Wave:      2,
		Intent:    "i1",
		Duration:  100,
		Error:     "",
		Extra: map[string]interface{}{
			"key": "value",
		},
	}

	data, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("failed to marshal event: %v", err)
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("failed to unmarshal event: %v", err)
	}

	if parsed["level"] != "info" {
		t.Errorf("expected level 'info', got '%v'", parsed["level"])
	}
	if parsed["component"] != "test" {
		t.Errorf("expected component 'test', got '%v'", parsed["component"])
	}
	if parsed["duration_ms"].(float64) != 100 {
		t.Errorf("expected duration_ms 100, got '%v'", parsed["duration_ms"])
	}
	if parsed["wave"].(float64) != 2 {
		t.Errorf("expected wave 2, got '%v'", parsed["wave"])
	}
}

func TestLoggerInfoEmitsJSON(t *testing.T) {
	oldStderr := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w

	New("executor").WithSession("s1").WithWave(1).WithIntent("x").
		Info("intent_started", map[string]interface{}{"model": "agent-mid"})

	w.Close()
	os.Stderr = oldStderr

	var buf bytes.Buffer
	buf.ReadFrom(r)

	var event Event
	if err := json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &event); err != nil {
		t.Fatalf("failed to parse output as JSON: %v (output: %s)", err, buf.String())
	}

	if event.Level != LevelInfo {
		t.Errorf("expected level 'info', got '%s'", event.Level)
	}
	if event.Session != "s1" || event.Wave != 1 || event.Intent != "x" {
		t.Errorf("unexpected context fields: %+v", event)
	}
}

func TestLoggerErrorIncludesErrMessage(t *testing.T) {
	oldStderr := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w

	New("executor").Error("intent_completed", nil, errBoom)

	w.Close()
	os.Stderr = oldStderr

	var buf bytes.Buffer
	buf.ReadFrom(r)

	var event Event
	if err := json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &event); err != nil {
		t.Fatalf("failed to parse output: %v", err)
	}
	if event.Error != errBoom.Error() {
		t.Errorf("expected error '%s', got '%s'", errBoom.Error(), event.Error)
	}
}

func TestTimedEvent(t *testing.T) {
	oldStderr := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w

	New("solver").TimedEvent("solve_complete", time.Now().Add(-50*time.Millisecond), nil)

	w.Close()
	os.Stderr = oldStderr

	var buf bytes.Buffer
	buf.ReadFrom(r)

	var event Event
	if err := json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &event); err != nil {
		t.Fatalf("failed to parse output: %v", err)
	}
	if event.Duration < 40 {
		t.Errorf("expected duration >= 40ms, got %d", event.Duration)
	}
}

type loggingTestErr struct{ msg string }

func (e *loggingTestErr) Error() string { return e.msg }

var errBoom = &loggingTestErr{"boom"}
