package executor

// EventType names one of the eight progress-event kinds the Wave
// Executor MUST support (spec §6).
type EventType string

const (
	EventWaveStarted      EventType = "wave_started"
	EventWaveCompleted    EventType = "wave_completed"
	EventIntentStarted    EventType = "intent_started"
	EventIntentCompleted  EventType = "intent_completed"
	EventIntentRetried    EventType = "intent_retried"
	EventIntentEscalated  EventType = "intent_escalated"
	EventIntentHumanReview EventType = "intent_human_review"
	EventExecutionCompleted EventType = "execution_completed"
)

// Event is a single progress-stream record. Only the fields relevant to
// its Type are populated; the rest are left at their zero value. ID is a
// monotonically sortable ULID, useful for consumers that persist or
// order the raw stream.
type Event struct {
	ID   string    `json:"id,omitempty"`
	Type EventType `json:"type"`

	Wave        int     `json:"wave,omitempty"`
	IntentCount int     `json:"intent_count,omitempty"`
	Status      string  `json:"status,omitempty"`
	Score       float64 `json:"score,omitempty"`
	Duration    float64 `json:"duration,omitempty"`

	IntentID string `json:"intent_id,omitempty"`
	Profile  string `json:"profile,omitempty"`
	Model    string `json:"model,omitempty"`
	Attempt  int    `json:"attempt,omitempty"`
	Reason   string `json:"reason,omitempty"`

	FromModel string `json:"from_model,omitempty"`
	ToModel   string `json:"to_model,omitempty"`

	Attempts  int    `json:"attempts,omitempty"`
	LastError string `json:"last_error,omitempty"`

	Verdict     string `json:"verdict,omitempty"`
	Passed      int    `json:"passed,omitempty"`
	Failed      int    `json:"failed,omitempty"`
	HumanReview int    `json:"human_review,omitempty"`
}

// Emitter receives progress events. Implementations MUST serialize
// delivery (spec §5: "progress callbacks are invoked from a single
// logical stream"); Executor guarantees it never calls Emit
// concurrently from two goroutines (it holds a lock around each call),
// so a slow Emit blocks the goroutine that called it and every other
// goroutine waiting to emit, per the spec's suspension-point list.
type Emitter interface {
	Emit(Event)
}

// EmitterFunc adapts a plain function to the Emitter interface.
type EmitterFunc func(Event)

func (f EmitterFunc) Emit(e Event) { f(e) }

// ChannelEmitter serializes events onto a buffered channel, grounded on
// the background-worker-with-event-emission pattern described in spec
// §9 ("a bounded worker pool emitting onto an event channel"). Emit
// blocks once the channel is full, which is the spec's sanctioned
// backpressure point for a slow consumer.
type ChannelEmitter chan Event

func (c ChannelEmitter) Emit(e Event) { c <- e }

// NewChannelEmitter allocates a ChannelEmitter with the given buffer.
func NewChannelEmitter(buffer int) ChannelEmitter {
	return make(ChannelEmitter, buffer)
}

// NullEmitter discards every event; useful when a caller has no
// observer wired up.
type NullEmitter struct{}

func (NullEmitter) Emit(Event) {}
