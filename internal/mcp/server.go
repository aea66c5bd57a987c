// Package mcp provides an MCP (Model Context Protocol) server that exposes
// InboxPilot's triage engine as MCP tools for AI assistants.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"time"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/inboxpilot/inboxpilot/internal/core"
	"github.com/inboxpilot/inboxpilot/internal/observability"
	"github.com/inboxpilot/inboxpilot/pkg/models"
)

// Server wraps the triage engine and exposes it as MCP tools.
type Server struct {
	server      *gomcp.Server
	engine      core.TriageEngine
	metricsCalc observability.MetricsCalculator
	alertEngine observability.AlertEngine
}

// NewServer creates a new MCP server with the given dependencies.
// metricsCalc and alertEngine may be nil if observability is disabled.
func NewServer(engine core.TriageEngine, metricsCalc observability.MetricsCalculator, alertEngine observability.AlertEngine, version string) *Server {
	if version == "" {
		version = "dev"
	}

	s := &Server{
		engine:      engine,
		metricsCalc: metricsCalc,
		alertEngine: alertEngine,
	}

	s.server = gomcp.NewServer(
		&gomcp.Implementation{Name: "inboxpilot", Version: version},
		nil,
	)

	s.registerTools()

	return s
}

// Run starts the MCP server on the given transport, blocking until the client
// disconnects or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &gomcp.StdioTransport{})
}

// MCPServer returns the underlying mcp.Server for testing purposes.
func (s *Server) MCPServer() *gomcp.Server {
	return s.server
}

// --- Tool input/output types ---

type analyzeEmailInput struct {
	Content       string `json:"content" jsonschema:"required,the raw email content to triage"`
	ThreadHistory string `json:"thread_history,omitempty" jsonschema:"prior thread content, considered for summary context"`
	Persona       string `json:"persona,omitempty" jsonschema:"name used to personalize the recommended reply greeting"`
}

type taskOutput struct {
	Description string `json:"description"`
	Due         string `json:"due,omitempty"`
	Owner       string `json:"owner,omitempty"`
}

type analyzeEmailOutput struct {
	Summary           string       `json:"summary"`
	Sentiment         string       `json:"sentiment"`
	Priority          string       `json:"priority"`
	Tags              []string     `json:"tags"`
	SubjectSuggestion string       `json:"subject_suggestion"`
	Tasks             []taskOutput `json:"tasks"`
	FollowUp          string       `json:"follow_up"`
	ReplySubject      string       `json:"reply_subject"`
	ReplyBody         string       `json:"reply_body"`
}

type composeEmailInput struct {
	Audience     string   `json:"audience,omitempty" jsonschema:"who the draft addresses (e.g. team, a client name)"`
	Objective    string   `json:"objective,omitempty" jsonschema:"what the draft should achieve; drives the subject line"`
	Tone         string   `json:"tone,omitempty" jsonschema:"writing style (professional, friendly, concise, assertive, warm)"`
	KeyPoints    []string `json:"key_points,omitempty" jsonschema:"bullet points to include in the body"`
	CallToAction string   `json:"call_to_action,omitempty" jsonschema:"closing ask appended after the bullets"`
	Signature    string   `json:"signature,omitempty" jsonschema:"custom signature, replacing the tone default"`
}

type composeEmailOutput struct {
	Subject    string `json:"subject"`
	Preview    string `json:"preview"`
	Body       string `json:"body"`
	CadenceTip string `json:"cadence_tip"`
}

type getMetricsInput struct {
	Since string `json:"since,omitempty" jsonschema:"time window for metrics (e.g. 7d, 30d, 24h). Defaults to 7d."`
}

type metricsOutput struct {
	EmailsAnalyzed    int            `json:"emails_analyzed"`
	DraftsComposed    int            `json:"drafts_composed"`
	BySentiment       map[string]int `json:"by_sentiment"`
	ByPriority        map[string]int `json:"by_priority"`
	ByTone            map[string]int `json:"by_tone"`
	TasksExtracted    int            `json:"tasks_extracted"`
	TruncatedPreviews int            `json:"truncated_previews"`
	EventCount        int            `json:"event_count"`
	OldestEvent       string         `json:"oldest_event,omitempty"`
	NewestEvent       string         `json:"newest_event,omitempty"`
}

type getAlertsInput struct{}

type alertOutput struct {
	ID          string `json:"id"`
	Condition   string `json:"condition"`
	Severity    string `json:"severity"`
	Message     string `json:"message"`
	TriggeredAt string `json:"triggered_at"`
}

type getAlertsOutput struct {
	Alerts []alertOutput `json:"alerts"`
	Count  int           `json:"count"`
}

// --- Tool registration ---

func (s *Server) registerTools() {
	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "analyze_email",
		Description: "Triage raw email content. Returns sentiment, priority, extracted tasks, tags, a summary, a follow-up plan, and a recommended reply.",
	}, s.handleAnalyzeEmail)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "compose_email",
		Description: "Draft an outbound email from structured intent fields: audience, objective, tone, key points, call to action, signature.",
	}, s.handleComposeEmail)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_metrics",
		Description: "Get aggregated triage metrics from the event log: analyzed/composed counts, sentiment, priority, and tone distributions.",
	}, s.handleGetMetrics)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_alerts",
		Description: "Evaluate and return active alerts (high-priority share, negative sentiment share, analysis volume).",
	}, s.handleGetAlerts)
}

// --- Tool handlers ---

func (s *Server) handleAnalyzeEmail(_ context.Context, _ *gomcp.CallToolRequest, input analyzeEmailInput) (*gomcp.CallToolResult, analyzeEmailOutput, error) {
	result, err := s.engine.Analyze(models.AnalysisRequest{
		Content:       input.Content,
		ThreadHistory: input.ThreadHistory,
		Persona:       input.Persona,
	})
	if err != nil {
		var missing *core.MissingInputError
		if errors.As(err, &missing) {
			return errorResult(fmt.Sprintf("%s is required", missing.Field)), analyzeEmailOutput{}, nil
		}
		return errorResult(fmt.Sprintf("analyzing email: %s", err)), analyzeEmailOutput{}, nil
	}

	out := analyzeEmailOutput{
		Summary:           result.Summary,
		Sentiment:         string(result.Sentiment),
		Priority:          string(result.Priority),
		Tags:              result.Tags,
		SubjectSuggestion: result.SubjectSuggestion,
		Tasks:             make([]taskOutput, len(result.Tasks)),
		FollowUp:          result.FollowUp,
		ReplySubject:      result.RecommendedReply.Subject,
		ReplyBody:         result.RecommendedReply.Body,
	}
	for i, t := range result.Tasks {
		out.Tasks[i] = taskOutput{Description: t.Description, Due: t.Due, Owner: t.Owner}
	}

	return nil, out, nil
}

func (s *Server) handleComposeEmail(_ context.Context, _ *gomcp.CallToolRequest, input composeEmailInput) (*gomcp.CallToolResult, composeEmailOutput, error) {
	tone := models.Tone(input.Tone)
	if input.Tone != "" && !models.ValidTone(tone) {
		return errorResult(fmt.Sprintf("invalid tone %q: must be one of professional, friendly, concise, assertive, warm", input.Tone)), composeEmailOutput{}, nil
	}

	result, err := s.engine.ComposeDraft(models.ComposeRequest{
		Audience:     input.Audience,
		Objective:    input.Objective,
		Tone:         tone,
		KeyPoints:    input.KeyPoints,
		CallToAction: input.CallToAction,
		Signature:    input.Signature,
	})
	if err != nil {
		return errorResult(fmt.Sprintf("composing draft: %s", err)), composeEmailOutput{}, nil
	}

	out := composeEmailOutput{
		Subject:    result.Subject,
		Preview:    result.Preview,
		Body:       result.Body,
		CadenceTip: result.CadenceTip,
	}
	return nil, out, nil
}

func (s *Server) handleGetMetrics(_ context.Context, _ *gomcp.CallToolRequest, input getMetricsInput) (*gomcp.CallToolResult, metricsOutput, error) {
	if s.metricsCalc == nil {
		return errorResult("metrics calculator not available (observability may be disabled)"), emptyMetricsOutput(), nil
	}

	sinceStr := input.Since
	if sinceStr == "" {
		sinceStr = "7d"
	}

	sinceTime, err := parseSince(sinceStr)
	if err != nil {
		return errorResult(fmt.Sprintf("parsing since duration: %s", err)), emptyMetricsOutput(), nil
	}

	metrics, err := s.metricsCalc.Calculate(sinceTime)
	if err != nil {
		return errorResult(fmt.Sprintf("calculating metrics: %s", err)), emptyMetricsOutput(), nil
	}

	out := metricsOutput{
		EmailsAnalyzed:    metrics.EmailsAnalyzed,
		DraftsComposed:    metrics.DraftsComposed,
		BySentiment:       metrics.BySentiment,
		ByPriority:        metrics.ByPriority,
		ByTone:            metrics.ByTone,
		TasksExtracted:    metrics.TasksExtracted,
		TruncatedPreviews: metrics.TruncatedPreviews,
		EventCount:        metrics.EventCount,
	}
	if metrics.OldestEvent != nil {
		out.OldestEvent = metrics.OldestEvent.Format(time.RFC3339)
	}
	if metrics.NewestEvent != nil {
		out.NewestEvent = metrics.NewestEvent.Format(time.RFC3339)
	}

	return nil, out, nil
}

func (s *Server) handleGetAlerts(_ context.Context, _ *gomcp.CallToolRequest, _ getAlertsInput) (*gomcp.CallToolResult, getAlertsOutput, error) {
	if s.alertEngine == nil {
		return errorResult("alert engine not available (observability may be disabled)"), getAlertsOutput{}, nil
	}

	alerts, err := s.alertEngine.Evaluate()
	if err != nil {
		return errorResult(fmt.Sprintf("evaluating alerts: %s", err)), getAlertsOutput{}, nil
	}

	out := getAlertsOutput{
		Alerts: make([]alertOutput, len(alerts)),
		Count:  len(alerts),
	}
	for i, a := range alerts {
		out.Alerts[i] = alertOutput{
			ID:          a.ID,
			Condition:   a.Condition,
			Severity:    string(a.Severity),
			Message:     a.Message,
			TriggeredAt: a.TriggeredAt.Format(time.RFC3339),
		}
	}

	return nil, out, nil
}

// --- Helpers ---

func emptyMetricsOutput() metricsOutput {
	return metricsOutput{
		BySentiment: make(map[string]int),
		ByPriority:  make(map[string]int),
		ByTone:      make(map[string]int),
	}
}

func errorResult(msg string) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: msg}},
		IsError: true,
	}
}

// parseSince parses a human-friendly duration string like "7d", "30d", or "24h"
// into the corresponding time in the past.
func parseSince(s string) (time.Time, error) {
	now := time.Now().UTC()

	if len(s) < 2 {
		return time.Time{}, fmt.Errorf("invalid duration %q", s)
	}

	suffix := s[len(s)-1]
	numStr := s[:len(s)-1]
	var num int
	if _, err := fmt.Sscanf(numStr, "%d", &num); err != nil {
		return time.Time{}, fmt.Errorf("invalid duration %q: %w", s, err)
	}

	switch suffix {
	case 'd':
		return now.AddDate(0, 0, -num), nil
	case 'h':
		return now.Add(-time.Duration(num) * time.Hour), nil
	default:
		return time.Time{}, fmt.Errorf("unsupported duration suffix %q (use d or h)", string(suffix))
	}
}
