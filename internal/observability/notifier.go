package observability

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Notifier sends alert notifications to external channels.
type Notifier interface {
	Notify(alerts []Alert) error
}

// slackNotifier sends alert notifications to a Slack webhook.
type slackNotifier struct {
	webhookURL string
	client     *http.Client
}

// NewSlackNotifier creates a Notifier that sends alerts to the given Slack webhook URL.
func NewSlackNotifier(webhookURL string) Notifier {
	return &slackNotifier{
		webhookURL: webhookURL,
		client:     &http.Client{},
	}
}

type slackMessage struct {
	Blocks []slackBlock `json:"blocks"`
}

type slackBlock struct {
	Type string     `json:"type"`
	Text *slackText `json:"text,omitempty"`
}

type slackText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Notify sends the given alerts to the configured Slack webhook.
// It returns nil without making a request if the alerts slice is empty.
func (s *slackNotifier) Notify(alerts []Alert) error {
	if len(alerts) == 0 {
		return nil
	}

	msg := buildAlertMessage(alerts)

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshaling slack message: %w", err)
	}

	resp, err := s.client.Post(s.webhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("posting to slack webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("slack webhook returned status %d", resp.StatusCode)
	}

	return nil
}

// buildAlertMessage assembles the block layout: a header, a one-line triage
// overview, then a divider and a section per alert with its triage guidance.
func buildAlertMessage(alerts []Alert) slackMessage {
	blocks := []slackBlock{
		{
			Type: "header",
			Text: &slackText{Type: "plain_text", Text: "InboxPilot Alert Summary"},
		},
		{
			Type: "section",
			Text: &slackText{Type: "mrkdwn", Text: alertOverview(alerts)},
		},
	}

	for _, alert := range alerts {
		blocks = append(blocks, slackBlock{Type: "divider"})

		text := fmt.Sprintf("%s *[%s]* %s",
			severityMarker(alert.Severity),
			strings.ToUpper(string(alert.Severity)),
			alert.Message,
		)
		if hint := conditionHint(alert.Condition); hint != "" {
			text += "\n" + hint
		}
		text += fmt.Sprintf("\n_%s_", alert.TriggeredAt.Format("2006-01-02 15:04 UTC"))

		blocks = append(blocks, slackBlock{
			Type: "section",
			Text: &slackText{Type: "mrkdwn", Text: text},
		})
	}

	return slackMessage{Blocks: blocks}
}

// alertOverview summarizes how many triage conditions fired at each severity.
func alertOverview(alerts []Alert) string {
	counts := map[AlertSeverity]int{}
	for _, alert := range alerts {
		counts[alert.Severity]++
	}

	var parts []string
	for _, severity := range []AlertSeverity{SeverityHigh, SeverityMedium, SeverityLow} {
		if n := counts[severity]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, severity))
		}
	}

	noun := "conditions"
	if len(alerts) == 1 {
		noun = "condition"
	}
	return fmt.Sprintf("%d triage %s firing (%s).", len(alerts), noun, strings.Join(parts, ", "))
}

// conditionHint suggests a next step for each triage condition.
func conditionHint(condition string) string {
	switch condition {
	case ConditionInboxRunningHot:
		return "Work the high priority threads before drafting anything new."
	case ConditionSentimentTrendingNegative:
		return "Review the negative threads for relationship risk."
	case ConditionAnalysisVolumeExceeded:
		return "Raise max_daily_analyses or batch the analysis runs."
	default:
		return ""
	}
}

func severityMarker(severity AlertSeverity) string {
	switch severity {
	case SeverityHigh:
		return "\U0001f534"
	case SeverityMedium:
		return "\U0001f7e1"
	case SeverityLow:
		return "\U0001f535"
	default:
		return "❓"
	}
}
