package observability

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// Event types recorded by the triage pipelines.
const (
	EventEmailAnalyzed = "email.analyzed"
	EventDraftComposed = "draft.composed"
)

// Event is one line of the triage event log.
type Event struct {
	Time    time.Time      `json:"time"`
	Level   string         `json:"level"` // INFO, WARN, ERROR
	Type    string         `json:"type"`
	Message string         `json:"msg"`
	Data    map[string]any `json:"data,omitempty"`
}

// AnalysisOutcome is the payload of an email.analyzed event.
type AnalysisOutcome struct {
	Sentiment string
	Priority  string
	TaskCount int
}

// DraftOutcome is the payload of a draft.composed event.
type DraftOutcome struct {
	Tone      string
	KeyPoints int
	Truncated bool
}

// NewPipelineEvent builds an event for the given pipeline event type. Known
// types get a human-readable message; unknown types fall back to the type
// string itself.
func NewPipelineEvent(at time.Time, eventType string, data map[string]any) Event {
	message := eventType
	switch eventType {
	case EventEmailAnalyzed:
		message = "email analyzed"
	case EventDraftComposed:
		message = "draft composed"
	}
	return Event{
		Time:    at,
		Level:   "INFO",
		Type:    eventType,
		Message: message,
		Data:    data,
	}
}

// NewAnalysisEvent builds the event recorded after each analysis run.
func NewAnalysisEvent(at time.Time, outcome AnalysisOutcome) Event {
	return NewPipelineEvent(at, EventEmailAnalyzed, map[string]any{
		"sentiment":  outcome.Sentiment,
		"priority":   outcome.Priority,
		"task_count": outcome.TaskCount,
	})
}

// NewDraftEvent builds the event recorded after each compose run.
func NewDraftEvent(at time.Time, outcome DraftOutcome) Event {
	return NewPipelineEvent(at, EventDraftComposed, map[string]any{
		"tone":       outcome.Tone,
		"key_points": outcome.KeyPoints,
		"truncated":  outcome.Truncated,
	})
}

// AnalysisOutcomeOf decodes an email.analyzed payload. It reports false for
// any other event type. Missing fields decode to zero values.
func AnalysisOutcomeOf(event Event) (AnalysisOutcome, bool) {
	if event.Type != EventEmailAnalyzed {
		return AnalysisOutcome{}, false
	}
	var outcome AnalysisOutcome
	outcome.Sentiment, _ = event.Data["sentiment"].(string)
	outcome.Priority, _ = event.Data["priority"].(string)
	outcome.TaskCount = intFromAny(event.Data["task_count"])
	return outcome, true
}

// DraftOutcomeOf decodes a draft.composed payload. It reports false for any
// other event type.
func DraftOutcomeOf(event Event) (DraftOutcome, bool) {
	if event.Type != EventDraftComposed {
		return DraftOutcome{}, false
	}
	var outcome DraftOutcome
	outcome.Tone, _ = event.Data["tone"].(string)
	outcome.KeyPoints = intFromAny(event.Data["key_points"])
	outcome.Truncated, _ = event.Data["truncated"].(bool)
	return outcome, true
}

// intFromAny tolerates both forms a count takes: int when the event was
// built in process, float64 after a JSON round trip.
func intFromAny(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	default:
		return 0
	}
}

// EventFilter narrows a read to a time window and a set of event types.
// Zero values match everything.
type EventFilter struct {
	Since *time.Time
	Until *time.Time
	Types []string
}

// matches reports whether an event falls inside the window and, when Types
// is non-empty, carries one of the listed types.
func (f EventFilter) matches(event Event) bool {
	if f.Since != nil && event.Time.Before(*f.Since) {
		return false
	}
	if f.Until != nil && event.Time.After(*f.Until) {
		return false
	}
	if len(f.Types) == 0 {
		return true
	}
	for _, t := range f.Types {
		if event.Type == t {
			return true
		}
	}
	return false
}

// EventLog stores triage events durably and reads them back filtered.
type EventLog interface {
	Write(event Event) error
	Read(filter EventFilter) ([]Event, error)
	Close() error
}

// jsonlEventLog appends events to a JSONL file, one JSON object per line.
type jsonlEventLog struct {
	path string
	file *os.File
	enc  *json.Encoder
	mu   sync.Mutex
}

// NewJSONLEventLog creates an EventLog backed by a JSONL file at the given path.
func NewJSONLEventLog(path string) (EventLog, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening event log: %w", err)
	}
	return &jsonlEventLog{
		path: path,
		file: f,
		enc:  json.NewEncoder(f),
	}, nil
}

// Write appends one JSON-encoded event line to the log file.
func (l *jsonlEventLog) Write(event Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.enc.Encode(event); err != nil {
		return fmt.Errorf("writing event: %w", err)
	}
	return nil
}

// Read scans the log file and returns the events matching the filter.
// Malformed lines are skipped so a damaged log still yields its good events.
func (l *jsonlEventLog) Read(filter EventFilter) ([]Event, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening event log for reading: %w", err)
	}
	defer func() { _ = f.Close() }()

	var events []Event
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var event Event
		if err := json.Unmarshal(line, &event); err != nil {
			continue
		}

		if filter.matches(event) {
			events = append(events, event)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning event log: %w", err)
	}

	return events, nil
}

// Close closes the underlying log file.
func (l *jsonlEventLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.file.Close(); err != nil {
		return fmt.Errorf("closing event log: %w", err)
	}
	return nil
}
