package observability

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestSlackNotifier_NoAlertsNoRequest(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewSlackNotifier(srv.URL)
	if err := n.Notify(nil); err != nil {
		t.Fatalf("Notify(nil): %v", err)
	}
	if err := n.Notify([]Alert{}); err != nil {
		t.Fatalf("Notify(empty): %v", err)
	}
	if called {
		t.Fatal("expected no HTTP request without alerts")
	}
}

func TestSlackNotifier_SendsAlerts(t *testing.T) {
	var receivedBody []byte
	var receivedContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedContentType = r.Header.Get("Content-Type")
		var err error
		receivedBody, err = io.ReadAll(r.Body)
		if err != nil {
			t.Fatalf("reading request body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	alerts := []Alert{
		{
			ID:          "high-priority-share",
			Condition:   ConditionInboxRunningHot,
			Severity:    SeverityHigh,
			Message:     "8 of 10 analyzed emails in the last 24h are high priority",
			TriggeredAt: time.Date(2026, 3, 10, 10, 30, 0, 0, time.UTC),
		},
		{
			ID:          "negative-share",
			Condition:   ConditionSentimentTrendingNegative,
			Severity:    SeverityMedium,
			Message:     "6 of 10 analyzed emails in the last 24h carry negative sentiment",
			TriggeredAt: time.Date(2026, 3, 10, 10, 30, 0, 0, time.UTC),
		},
	}

	if err := NewSlackNotifier(srv.URL).Notify(alerts); err != nil {
		t.Fatalf("Notify: %v", err)
	}

	if receivedContentType != "application/json" {
		t.Errorf("Content-Type = %q", receivedContentType)
	}

	var msg slackMessage
	if err := json.Unmarshal(receivedBody, &msg); err != nil {
		t.Fatalf("decoding slack message: %v", err)
	}

	// Header, overview, then a divider and a section per alert.
	if len(msg.Blocks) != 6 {
		t.Fatalf("block count = %d, want 6", len(msg.Blocks))
	}
	if msg.Blocks[0].Type != "header" || msg.Blocks[0].Text.Text != "InboxPilot Alert Summary" {
		t.Errorf("header block = %+v", msg.Blocks[0])
	}
	if msg.Blocks[1].Type != "section" || msg.Blocks[1].Text.Text != "2 triage conditions firing (1 high, 1 medium)." {
		t.Errorf("overview block = %+v", msg.Blocks[1])
	}
	if msg.Blocks[2].Type != "divider" || msg.Blocks[4].Type != "divider" {
		t.Errorf("divider blocks = %q, %q", msg.Blocks[2].Type, msg.Blocks[4].Type)
	}
	if !strings.Contains(msg.Blocks[3].Text.Text, "Work the high priority threads") {
		t.Errorf("first alert block lacks triage guidance: %q", msg.Blocks[3].Text.Text)
	}
	if !strings.Contains(msg.Blocks[5].Text.Text, "relationship risk") {
		t.Errorf("second alert block lacks triage guidance: %q", msg.Blocks[5].Text.Text)
	}
}

func TestAlertOverview_SingularCondition(t *testing.T) {
	alerts := []Alert{{Condition: ConditionAnalysisVolumeExceeded, Severity: SeverityLow}}
	if got := alertOverview(alerts); got != "1 triage condition firing (1 low)." {
		t.Errorf("overview = %q", got)
	}
}

func TestConditionHint_CoversAllConditions(t *testing.T) {
	for _, condition := range []string{
		ConditionInboxRunningHot,
		ConditionSentimentTrendingNegative,
		ConditionAnalysisVolumeExceeded,
	} {
		if conditionHint(condition) == "" {
			t.Errorf("no guidance for %q", condition)
		}
	}
	if hint := conditionHint("something_else"); hint != "" {
		t.Errorf("unexpected guidance %q for unknown condition", hint)
	}
}

func TestSlackNotifier_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	alerts := []Alert{{ID: "x", Condition: ConditionInboxRunningHot, Severity: SeverityHigh, Message: "m", TriggeredAt: time.Now()}}
	if err := NewSlackNotifier(srv.URL).Notify(alerts); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}
