package core

import (
	"fmt"
	"strings"

	"github.com/inboxpilot/inboxpilot/pkg/models"
)

// Request modes understood by the triage engine.
const (
	ModeAnalyze = "analyze"
	ModeCompose = "compose"
)

// MissingInputError reports a required text field that was absent or blank.
type MissingInputError struct {
	Field string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("missing required input: %s", e.Field)
}

// UnsupportedModeError reports a request mode the engine does not recognize.
type UnsupportedModeError struct {
	Mode string
}

func (e *UnsupportedModeError) Error() string {
	return fmt.Sprintf("unsupported mode: %q", e.Mode)
}

// EventLogger lets the engine record events without depending on the
// observability package directly.
type EventLogger interface {
	LogEvent(eventType string, data map[string]any) error
}

// Request is the mode-discriminated input of the engine boundary. Exactly
// one of Analyze or Compose is consulted, depending on Mode.
type Request struct {
	Mode    string
	Analyze *models.AnalysisRequest
	Compose *models.ComposeRequest
}

// Response carries the payload matching the request mode.
type Response struct {
	Analysis *models.AnalysisResult
	Draft    *models.ComposeResult
}

// TriageEngine runs the analysis and compose pipelines. Both are pure
// functions of their inputs; any number of calls may run concurrently.
type TriageEngine interface {
	Analyze(req models.AnalysisRequest) (*models.AnalysisResult, error)
	ComposeDraft(req models.ComposeRequest) (*models.ComposeResult, error)
	Handle(req Request) (*Response, error)
}

// triageEngine implements TriageEngine by chaining the rule-based
// components.
type triageEngine struct {
	extractor   SignalExtractor
	synthesizer ContentSynthesizer
	replier     ReplyComposer
	outbound    OutboundComposer
	events      EventLogger
}

// NewTriageEngine creates a TriageEngine from its components. events may be
// nil when observability is disabled.
func NewTriageEngine(extractor SignalExtractor, synthesizer ContentSynthesizer, replier ReplyComposer, outbound OutboundComposer, events EventLogger) TriageEngine {
	return &triageEngine{
		extractor:   extractor,
		synthesizer: synthesizer,
		replier:     replier,
		outbound:    outbound,
		events:      events,
	}
}

// NewDefaultTriageEngine creates a TriageEngine with the standard rule-based
// components and no event logging.
func NewDefaultTriageEngine() TriageEngine {
	return NewTriageEngine(NewSignalExtractor(), NewContentSynthesizer(), NewReplyComposer(), NewOutboundComposer(), nil)
}

// Analyze runs the analysis pipeline: signal extraction, content synthesis,
// then reply composition. Blank content is rejected before any heuristic
// runs.
func (e *triageEngine) Analyze(req models.AnalysisRequest) (*models.AnalysisResult, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, &MissingInputError{Field: "content"}
	}

	signals := e.extractor.Extract(req.Content)
	synthesis := e.synthesizer.Synthesize(req.Content, req.ThreadHistory, signals)
	reply := e.replier.Compose(signals, synthesis.Summary, req.Persona)

	result := &models.AnalysisResult{
		Summary:           synthesis.Summary,
		Sentiment:         signals.Sentiment,
		Priority:          signals.Priority,
		Tags:              synthesis.Tags,
		SubjectSuggestion: synthesis.SubjectSuggestion,
		Tasks:             signals.Tasks,
		FollowUp:          synthesis.FollowUp,
		RecommendedReply:  reply,
	}

	e.logEvent("email.analyzed", map[string]any{
		"sentiment":  string(result.Sentiment),
		"priority":   string(result.Priority),
		"task_count": len(result.Tasks),
	})

	return result, nil
}

// ComposeDraft runs the compose pipeline. It is total over its inputs; an
// empty objective simply falls back to the template subject.
func (e *triageEngine) ComposeDraft(req models.ComposeRequest) (*models.ComposeResult, error) {
	result := e.outbound.Compose(req)

	e.logEvent("draft.composed", map[string]any{
		"tone":       string(req.Tone),
		"key_points": len(req.KeyPoints),
		"truncated":  strings.HasSuffix(result.Preview, "..."),
	})

	return &result, nil
}

// Handle dispatches a mode-discriminated request to the matching pipeline.
func (e *triageEngine) Handle(req Request) (*Response, error) {
	switch req.Mode {
	case ModeAnalyze:
		var analyzeReq models.AnalysisRequest
		if req.Analyze != nil {
			analyzeReq = *req.Analyze
		}
		result, err := e.Analyze(analyzeReq)
		if err != nil {
			return nil, err
		}
		return &Response{Analysis: result}, nil
	case ModeCompose:
		var composeReq models.ComposeRequest
		if req.Compose != nil {
			composeReq = *req.Compose
		}
		result, err := e.ComposeDraft(composeReq)
		if err != nil {
			return nil, err
		}
		return &Response{Draft: result}, nil
	default:
		return nil, &UnsupportedModeError{Mode: req.Mode}
	}
}

// logEvent records an event if an event logger is wired in.
func (e *triageEngine) logEvent(eventType string, data map[string]any) {
	if e.events == nil {
		return
	}
	_ = e.events.LogEvent(eventType, data)
}
