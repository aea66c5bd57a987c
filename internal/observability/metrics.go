package observability

import (
	"fmt"
	"time"
)

// Metrics holds calculated triage metrics derived from the event log.
type Metrics struct {
	EmailsAnalyzed    int            `json:"emails_analyzed"`
	DraftsComposed    int            `json:"drafts_composed"`
	BySentiment       map[string]int `json:"by_sentiment"`
	ByPriority        map[string]int `json:"by_priority"`
	ByTone            map[string]int `json:"by_tone"`
	TasksExtracted    int            `json:"tasks_extracted"`
	TruncatedPreviews int            `json:"truncated_previews"`
	EventCount        int            `json:"event_count"`
	OldestEvent       *time.Time     `json:"oldest_event,omitempty"`
	NewestEvent       *time.Time     `json:"newest_event,omitempty"`
}

// MetricsCalculator derives metrics from the event log.
type MetricsCalculator interface {
	Calculate(since time.Time) (*Metrics, error)
}

// metricsCalculator implements MetricsCalculator by reading from an EventLog.
type metricsCalculator struct {
	eventLog EventLog
}

// NewMetricsCalculator creates a new MetricsCalculator that reads from the given EventLog.
func NewMetricsCalculator(eventLog EventLog) MetricsCalculator {
	return &metricsCalculator{eventLog: eventLog}
}

// Calculate reads all events since the given time and aggregates them into metrics.
func (mc *metricsCalculator) Calculate(since time.Time) (*Metrics, error) {
	events, err := mc.eventLog.Read(EventFilter{Since: &since})
	if err != nil {
		return nil, fmt.Errorf("reading events for metrics: %w", err)
	}

	m := &Metrics{
		BySentiment: make(map[string]int),
		ByPriority:  make(map[string]int),
		ByTone:      make(map[string]int),
	}

	m.EventCount = len(events)

	for i, event := range events {
		if i == 0 {
			t := event.Time
			m.OldestEvent = &t
		}
		t := event.Time
		m.NewestEvent = &t

		if analysis, ok := AnalysisOutcomeOf(event); ok {
			m.EmailsAnalyzed++
			if analysis.Sentiment != "" {
				m.BySentiment[analysis.Sentiment]++
			}
			if analysis.Priority != "" {
				m.ByPriority[analysis.Priority]++
			}
			m.TasksExtracted += analysis.TaskCount
		} else if draft, ok := DraftOutcomeOf(event); ok {
			m.DraftsComposed++
			if draft.Tone != "" {
				m.ByTone[draft.Tone]++
			}
			if draft.Truncated {
				m.TruncatedPreviews++
			}
		}
	}

	return m, nil
}
