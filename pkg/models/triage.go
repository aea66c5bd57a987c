package models

// Tone represents the writing style used when assembling an email draft.
// The set of tones is closed; the template catalog carries exactly one
// entry per value.
type Tone string

const (
	ToneProfessional Tone = "professional"
	ToneFriendly     Tone = "friendly"
	ToneConcise      Tone = "concise"
	ToneAssertive    Tone = "assertive"
	ToneWarm         Tone = "warm"
)

// Tones lists every valid Tone in a fixed order.
func Tones() []Tone {
	return []Tone{ToneProfessional, ToneFriendly, ToneConcise, ToneAssertive, ToneWarm}
}

// ValidTone reports whether t is one of the five known tones.
func ValidTone(t Tone) bool {
	switch t {
	case ToneProfessional, ToneFriendly, ToneConcise, ToneAssertive, ToneWarm:
		return true
	}
	return false
}

// Sentiment represents the classified emotional leaning of email content.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// Priority represents the classified urgency of email content.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Task is a single actionable item extracted from one line of email content.
// Due and Owner are best-effort captures and may be empty; Description is
// never empty.
type Task struct {
	Description string `json:"description" yaml:"description"`
	Due         string `json:"due,omitempty" yaml:"due,omitempty"`
	Owner       string `json:"owner,omitempty" yaml:"owner,omitempty"`
}

// RecommendedReply is the suggested response produced by the analysis pipeline.
type RecommendedReply struct {
	Subject string `json:"subject" yaml:"subject"`
	Body    string `json:"body" yaml:"body"`
}

// AnalysisRequest carries the inputs of the analysis pipeline. Content is
// required; ThreadHistory and Persona are optional refinements.
type AnalysisRequest struct {
	Content       string `json:"content" yaml:"content"`
	ThreadHistory string `json:"thread_history,omitempty" yaml:"thread_history,omitempty"`
	Persona       string `json:"persona,omitempty" yaml:"persona,omitempty"`
}

// AnalysisResult is the full triage payload for one email. It is fully
// determined by the request; the pipeline keeps no hidden state.
type AnalysisResult struct {
	Summary           string           `json:"summary" yaml:"summary"`
	Sentiment         Sentiment        `json:"sentiment" yaml:"sentiment"`
	Priority          Priority         `json:"priority" yaml:"priority"`
	Tags              []string         `json:"tags" yaml:"tags"`
	SubjectSuggestion string           `json:"subject_suggestion" yaml:"subject_suggestion"`
	Tasks             []Task           `json:"tasks" yaml:"tasks"`
	FollowUp          string           `json:"follow_up" yaml:"follow_up"`
	RecommendedReply  RecommendedReply `json:"recommended_reply" yaml:"recommended_reply"`
}

// ComposeRequest carries the structured intent fields for an outbound draft.
type ComposeRequest struct {
	Audience     string   `json:"audience" yaml:"audience"`
	Objective    string   `json:"objective" yaml:"objective"`
	Tone         Tone     `json:"tone" yaml:"tone"`
	KeyPoints    []string `json:"key_points" yaml:"key_points"`
	CallToAction string   `json:"call_to_action,omitempty" yaml:"call_to_action,omitempty"`
	Signature    string   `json:"signature,omitempty" yaml:"signature,omitempty"`
}

// ComposeResult is the outbound draft payload.
type ComposeResult struct {
	Subject    string `json:"subject" yaml:"subject"`
	Preview    string `json:"preview" yaml:"preview"`
	Body       string `json:"body" yaml:"body"`
	CadenceTip string `json:"cadence_tip" yaml:"cadence_tip"`
}

// Template is the fixed (subject, opening, closing) triple associated with a
// Tone. Templates are hand-authored constants, not derived data.
type Template struct {
	Subject string
	Opening string
	Closing string
}
