package observability

import (
	"path/filepath"
	"testing"
	"time"
)

// seedAnalysisEvents writes count analysis events into a fresh log, with the
// given number of high-priority and negative-sentiment ones.
func seedAnalysisEvents(t *testing.T, count, highPriority, negative int) EventLog {
	t.Helper()
	path := filepath.Join(t.TempDir(), "events.jsonl")
	log, err := NewJSONLEventLog(path)
	if err != nil {
		t.Fatalf("creating event log: %v", err)
	}
	t.Cleanup(func() { _ = log.Close() })

	now := time.Now().UTC()
	for i := 0; i < count; i++ {
		priority := "low"
		if i < highPriority {
			priority = "high"
		}
		sentiment := "neutral"
		if i < negative {
			sentiment = "negative"
		}
		event := NewAnalysisEvent(now.Add(-time.Duration(i+1)*time.Minute), AnalysisOutcome{
			Sentiment: sentiment,
			Priority:  priority,
		})
		if err := log.Write(event); err != nil {
			t.Fatalf("writing event: %v", err)
		}
	}
	return log
}

func findAlert(alerts []Alert, condition string) *Alert {
	for i := range alerts {
		if alerts[i].Condition == condition {
			return &alerts[i]
		}
	}
	return nil
}

func TestAlertEngine_HighPriorityShare(t *testing.T) {
	log := seedAnalysisEvents(t, 10, 8, 0)
	alerts, err := NewAlertEngine(log, DefaultAlertThresholds()).Evaluate()
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	alert := findAlert(alerts, ConditionInboxRunningHot)
	if alert == nil {
		t.Fatalf("expected inbox_running_hot alert, got %+v", alerts)
	}
	if alert.Severity != SeverityHigh {
		t.Errorf("severity = %q, want high", alert.Severity)
	}
}

func TestAlertEngine_NegativeShare(t *testing.T) {
	log := seedAnalysisEvents(t, 10, 0, 6)
	alerts, err := NewAlertEngine(log, DefaultAlertThresholds()).Evaluate()
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	alert := findAlert(alerts, ConditionSentimentTrendingNegative)
	if alert == nil {
		t.Fatalf("expected sentiment_trending_negative alert, got %+v", alerts)
	}
	if alert.Severity != SeverityMedium {
		t.Errorf("severity = %q, want medium", alert.Severity)
	}
}

func TestAlertEngine_VolumeExceeded(t *testing.T) {
	thresholds := DefaultAlertThresholds()
	thresholds.MaxDailyAnalyses = 3

	log := seedAnalysisEvents(t, 5, 0, 0)
	alerts, err := NewAlertEngine(log, thresholds).Evaluate()
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	alert := findAlert(alerts, ConditionAnalysisVolumeExceeded)
	if alert == nil {
		t.Fatalf("expected analysis_volume_exceeded alert, got %+v", alerts)
	}
	if alert.Severity != SeverityLow {
		t.Errorf("severity = %q, want low", alert.Severity)
	}
}

func TestAlertEngine_QuietInboxNoAlerts(t *testing.T) {
	log := seedAnalysisEvents(t, 10, 1, 1)
	alerts, err := NewAlertEngine(log, DefaultAlertThresholds()).Evaluate()
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(alerts) != 0 {
		t.Errorf("alerts = %+v, want none", alerts)
	}
}

func TestAlertEngine_SmallSampleSkipsShareConditions(t *testing.T) {
	// Three emails, all high priority and negative. Below the minimum sample
	// the share conditions stay quiet.
	log := seedAnalysisEvents(t, 3, 3, 3)
	alerts, err := NewAlertEngine(log, DefaultAlertThresholds()).Evaluate()
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(alerts) != 0 {
		t.Errorf("alerts = %+v, want none below minimum sample", alerts)
	}
}

func TestAlertEngine_EventsOutsideWindowIgnored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	log, err := NewJSONLEventLog(path)
	if err != nil {
		t.Fatalf("creating event log: %v", err)
	}
	defer log.Close()

	old := time.Now().UTC().Add(-48 * time.Hour)
	for i := 0; i < 10; i++ {
		event := NewAnalysisEvent(old.Add(time.Duration(i)*time.Minute), AnalysisOutcome{
			Sentiment: "negative",
			Priority:  "high",
		})
		if err := log.Write(event); err != nil {
			t.Fatalf("writing event: %v", err)
		}
	}

	alerts, err := NewAlertEngine(log, DefaultAlertThresholds()).Evaluate()
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(alerts) != 0 {
		t.Errorf("alerts = %+v, want none for stale events", alerts)
	}
}
