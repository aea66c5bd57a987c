package core

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/inboxpilot/inboxpilot/pkg/models"
)

var (
	// newlineRunPattern matches one or more consecutive newlines.
	newlineRunPattern = regexp.MustCompile(`\n+`)

	// waitingPhrases marks content where the sender is waiting on someone.
	waitingPhrases = []string{"wait", "await", "response", "hear back"}
)

// Synthesis holds the derived presentation fields for an analyzed email.
type Synthesis struct {
	SubjectSuggestion string
	Summary           string
	Tags              []string
	FollowUp          string
}

// ContentSynthesizer derives subject suggestion, summary, tags, and a
// follow-up recommendation from the raw content and its extracted signals.
type ContentSynthesizer interface {
	Synthesize(content, threadHistory string, signals Signals) Synthesis
}

type contentSynthesizer struct{}

// NewContentSynthesizer creates a rule-based ContentSynthesizer.
func NewContentSynthesizer() ContentSynthesizer {
	return &contentSynthesizer{}
}

// Synthesize produces all derived fields for the triage payload.
func (s *contentSynthesizer) Synthesize(content, threadHistory string, signals Signals) Synthesis {
	return Synthesis{
		SubjectSuggestion: suggestSubject(signals),
		Summary:           summarize(content, threadHistory),
		Tags:              buildTags(signals),
		FollowUp:          recommendFollowUp(content, signals),
	}
}

// suggestSubject builds a subject line from the first extracted task, or
// falls back to a canned subject keyed by priority.
func suggestSubject(signals Signals) string {
	if len(signals.Tasks) > 0 {
		tag := "Follow-up"
		if signals.Priority == models.PriorityHigh {
			tag = "Urgent"
		} else if signals.Sentiment == models.SentimentPositive {
			tag = "Update"
		}
		return fmt.Sprintf("[%s] %s", tag, signals.Tasks[0].Description)
	}

	switch signals.Priority {
	case models.PriorityHigh:
		return "[Urgent] Action required on latest request"
	case models.PriorityMedium:
		return "Next steps for your email"
	default:
		return "Thanks for the update — here's the plan"
	}
}

// summarize joins the first three sentences of the content. When nothing
// survives, the literal fallback string is used; the thread-context note is
// appended only to that fallback, never to a computed summary. That
// asymmetry matches the long-standing observed behavior of the triage
// output, so downstream consumers depend on it.
func summarize(content, threadHistory string) string {
	collapsed := newlineRunPattern.ReplaceAllString(content, " ")

	var kept []string
	for _, sentence := range splitSentences(collapsed) {
		trimmed := strings.TrimSpace(sentence)
		if trimmed == "" {
			continue
		}
		kept = append(kept, trimmed)
		if len(kept) == 3 {
			break
		}
	}

	if len(kept) > 0 {
		return strings.Join(kept, " ")
	}

	summary := "No summary available."
	if threadHistory != "" {
		words := len(strings.Fields(threadHistory))
		summary += fmt.Sprintf(" Thread context considered (%d words).", words)
	}
	return summary
}

// splitSentences splits s on boundaries after ".", "?", or "!" followed by
// whitespace.
func splitSentences(s string) []string {
	var sentences []string
	var current strings.Builder

	runes := []rune(s)
	for i, r := range runes {
		current.WriteRune(r)
		if (r == '.' || r == '?' || r == '!') && i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
			sentences = append(sentences, current.String())
			current.Reset()
		}
	}
	if current.Len() > 0 {
		sentences = append(sentences, current.String())
	}

	return sentences
}

// buildTags assembles the tag list in a fixed insertion order with
// duplicates dropped.
func buildTags(signals Signals) []string {
	tags := newTagSet()

	switch signals.Priority {
	case models.PriorityHigh:
		tags.add("Hot")
	case models.PriorityMedium:
		tags.add("Follow-up")
	default:
		tags.add("Backlog")
	}

	switch signals.Sentiment {
	case models.SentimentPositive:
		tags.add("Relationship")
	case models.SentimentNegative:
		tags.add("Risk")
	default:
		tags.add("Neutral")
	}

	if len(signals.Tasks) > 0 {
		tags.add("Action items")
	}
	for _, task := range signals.Tasks {
		if task.Owner != "" {
			tags.add("Delegation")
			break
		}
	}

	return tags.values()
}

// recommendFollowUp picks a follow-up plan, first match wins: high priority,
// then waiting-on-a-response content, then open tasks, then archive.
func recommendFollowUp(content string, signals Signals) string {
	if signals.Priority == models.PriorityHigh {
		return "Follow up within 4 business hours and confirm ownership of each task."
	}
	if containsAnyFold(content, waitingPhrases) {
		return "Schedule a reminder in 2 days to check for updates."
	}
	if len(signals.Tasks) > 0 {
		return "Log tasks in your system and share a progress update within 24 hours."
	}
	return "Archive for now, revisit over the weekend for any broader updates."
}

// tagSet is an insertion-ordered string set. Re-adding an existing tag is a
// no-op; values() returns tags in first-insertion order.
type tagSet struct {
	order []string
	seen  map[string]struct{}
}

func newTagSet() *tagSet {
	return &tagSet{seen: make(map[string]struct{})}
}

func (t *tagSet) add(tag string) {
	if _, ok := t.seen[tag]; ok {
		return
	}
	t.seen[tag] = struct{}{}
	t.order = append(t.order, tag)
}

func (t *tagSet) values() []string {
	return t.order
}
