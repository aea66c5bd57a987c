package observability

import (
	"fmt"
	"time"
)

// AlertSeverity represents the urgency of an alert.
type AlertSeverity string

const (
	SeverityHigh   AlertSeverity = "high"
	SeverityMedium AlertSeverity = "medium"
	SeverityLow    AlertSeverity = "low"
)

// Alert conditions evaluated against the analysis event stream.
const (
	ConditionInboxRunningHot           = "inbox_running_hot"
	ConditionSentimentTrendingNegative = "sentiment_trending_negative"
	ConditionAnalysisVolumeExceeded    = "analysis_volume_exceeded"
)

// minShareSample is the minimum number of analyzed emails in the window
// before the share-based conditions are evaluated. A couple of emails does
// not make a trend.
const minShareSample = 5

// Alert represents a triggered alert condition.
type Alert struct {
	ID          string        `json:"id"`
	Condition   string        `json:"condition"`
	Severity    AlertSeverity `json:"severity"`
	Message     string        `json:"message"`
	TriggeredAt time.Time     `json:"triggered_at"`
}

// AlertThresholds configures when alerts should fire.
type AlertThresholds struct {
	HighPriorityShare float64 `yaml:"high_priority_share" json:"high_priority_share"`
	NegativeShare     float64 `yaml:"negative_share" json:"negative_share"`
	MaxDailyAnalyses  int     `yaml:"max_daily_analyses" json:"max_daily_analyses"`
	WindowHours       int     `yaml:"window_hours" json:"window_hours"`
}

// DefaultAlertThresholds returns sensible defaults for alert thresholds.
func DefaultAlertThresholds() AlertThresholds {
	return AlertThresholds{
		HighPriorityShare: 0.5,
		NegativeShare:     0.4,
		MaxDailyAnalyses:  200,
		WindowHours:       24,
	}
}

// AlertEngine evaluates alert conditions against the event log.
type AlertEngine interface {
	Evaluate() ([]Alert, error)
}

// alertEngine implements AlertEngine by reading events and checking thresholds.
type alertEngine struct {
	eventLog   EventLog
	thresholds AlertThresholds
}

// NewAlertEngine creates a new AlertEngine with the given EventLog and thresholds.
func NewAlertEngine(eventLog EventLog, thresholds AlertThresholds) AlertEngine {
	return &alertEngine{
		eventLog:   eventLog,
		thresholds: thresholds,
	}
}

// Evaluate reads analysis events within the configured window and checks
// all alert conditions, returning any triggered alerts.
func (ae *alertEngine) Evaluate() ([]Alert, error) {
	now := time.Now().UTC()
	since := now.Add(-time.Duration(ae.thresholds.WindowHours) * time.Hour)

	events, err := ae.eventLog.Read(EventFilter{Since: &since, Types: []string{EventEmailAnalyzed}})
	if err != nil {
		return nil, fmt.Errorf("reading analysis events: %w", err)
	}

	analyzed := len(events)
	highPriority := 0
	negative := 0
	for _, event := range events {
		outcome, ok := AnalysisOutcomeOf(event)
		if !ok {
			continue
		}
		if outcome.Priority == "high" {
			highPriority++
		}
		if outcome.Sentiment == "negative" {
			negative++
		}
	}

	var alerts []Alert

	if analyzed >= minShareSample {
		share := float64(highPriority) / float64(analyzed)
		if share > ae.thresholds.HighPriorityShare {
			alerts = append(alerts, Alert{
				ID:          "high-priority-share",
				Condition:   ConditionInboxRunningHot,
				Severity:    SeverityHigh,
				Message:     fmt.Sprintf("%d of %d analyzed emails in the last %dh are high priority", highPriority, analyzed, ae.thresholds.WindowHours),
				TriggeredAt: now,
			})
		}

		share = float64(negative) / float64(analyzed)
		if share > ae.thresholds.NegativeShare {
			alerts = append(alerts, Alert{
				ID:          "negative-share",
				Condition:   ConditionSentimentTrendingNegative,
				Severity:    SeverityMedium,
				Message:     fmt.Sprintf("%d of %d analyzed emails in the last %dh carry negative sentiment", negative, analyzed, ae.thresholds.WindowHours),
				TriggeredAt: now,
			})
		}
	}

	if ae.thresholds.MaxDailyAnalyses > 0 && analyzed > ae.thresholds.MaxDailyAnalyses {
		alerts = append(alerts, Alert{
			ID:          "analysis-volume",
			Condition:   ConditionAnalysisVolumeExceeded,
			Severity:    SeverityLow,
			Message:     fmt.Sprintf("%d emails analyzed in the last %dh, exceeding the maximum of %d", analyzed, ae.thresholds.WindowHours, ae.thresholds.MaxDailyAnalyses),
			TriggeredAt: now,
		})
	}

	return alerts, nil
}
