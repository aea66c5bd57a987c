package core

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/inboxpilot/inboxpilot/pkg/models"
)

// Word lists and pattern rules driving signal extraction. They are package
// variables rather than inline literals so each rule can be audited and
// tested on its own.
var (
	positiveWords = []string{"thank", "appreciate", "great", "glad", "pleased", "happy", "excited"}
	negativeWords = []string{"concern", "issue", "problem", "delayed", "delay", "blocked", "urgent", "frustrated", "disappointed"}

	highPriorityWords     = []string{"urgent", "asap", "immediately", "priority", "important"}
	mediumPriorityPhrases = []string{"next week", "soon", "follow up"}

	taskCuePhrases = []string{"please", "can you", "could you", "action"}

	// dateTokenPattern matches numeric date tokens like "5/12".
	dateTokenPattern = regexp.MustCompile(`\d{1,2}/\d{1,2}`)

	// bulletPattern matches a leading list marker: "*", "-", or "3.".
	bulletPattern = regexp.MustCompile(`^(\*|-|\d+\.)\s*`)

	// duePhrasePattern captures a due phrase after "by": a relative phrase,
	// a numeric date token, or a word with an optional day number.
	duePhrasePattern = regexp.MustCompile(`(?i)\bby\s+(next week|tomorrow|today|\d{1,2}/\d{1,2}|[a-zA-Z]+(?: \d{1,2})?)`)

	// dueKeywordPattern captures "due June 5" / "deadline March 12" phrases.
	dueKeywordPattern = regexp.MustCompile(`(?i)\b(?:due|deadline)\s+([a-zA-Z]+ \d{1,2})`)

	// ownerPattern captures a capitalized name after "for" as a best-effort
	// owner guess.
	ownerPattern = regexp.MustCompile(`\bfor\s+([A-Z][a-zA-Z]+)`)
)

// Signals holds the classifications derived from raw email content.
type Signals struct {
	Sentiment models.Sentiment
	Priority  models.Priority
	Tasks     []models.Task
}

// SignalExtractor derives sentiment, priority, and task signals from raw
// email content. Extraction is a pure function of the content.
type SignalExtractor interface {
	Extract(content string) Signals
}

// ruleSignalExtractor implements SignalExtractor with the fixed word lists
// and pattern rules above.
type ruleSignalExtractor struct{}

// NewSignalExtractor creates a rule-based SignalExtractor.
func NewSignalExtractor() SignalExtractor {
	return &ruleSignalExtractor{}
}

// Extract runs sentiment, priority, and task classification over content.
func (e *ruleSignalExtractor) Extract(content string) Signals {
	return Signals{
		Sentiment: classifySentiment(content),
		Priority:  classifyPriority(content),
		Tasks:     extractTasks(content),
	}
}

// classifySentiment counts positive and negative word-list hits and compares
// them. Each list word contributes at most one point no matter how often it
// appears in the content. Ties (including zero hits) are neutral.
func classifySentiment(content string) models.Sentiment {
	lower := strings.ToLower(content)

	positive := 0
	for _, word := range positiveWords {
		if strings.Contains(lower, word) {
			positive++
		}
	}
	negative := 0
	for _, word := range negativeWords {
		if strings.Contains(lower, word) {
			negative++
		}
	}

	switch {
	case positive > negative:
		return models.SentimentPositive
	case negative > positive:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

// classifyPriority evaluates the priority rules in strict precedence order:
// high-urgency keywords, then numeric date tokens, then soft scheduling
// phrases, then low.
func classifyPriority(content string) models.Priority {
	lower := strings.ToLower(content)

	for _, word := range highPriorityWords {
		if strings.Contains(lower, word) {
			return models.PriorityHigh
		}
	}
	if dateTokenPattern.MatchString(content) {
		return models.PriorityMedium
	}
	for _, phrase := range mediumPriorityPhrases {
		if strings.Contains(lower, phrase) {
			return models.PriorityMedium
		}
	}
	return models.PriorityLow
}

// extractTasks scans content line by line for task candidates. A line
// qualifies if it starts with a bullet marker or contains a task cue phrase.
// Tasks keep source-line order and never have an empty description.
func extractTasks(content string) []models.Task {
	var tasks []models.Task

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if !bulletPattern.MatchString(trimmed) && !containsAnyFold(trimmed, taskCuePhrases) {
			continue
		}

		description := strings.TrimSpace(bulletPattern.ReplaceAllString(trimmed, ""))
		description = capitalizeFirst(description)
		if description == "" {
			continue
		}

		task := models.Task{Description: description}
		if m := duePhrasePattern.FindStringSubmatch(description); m != nil {
			task.Due = titleCase(m[1])
		} else if m := dueKeywordPattern.FindStringSubmatch(trimmed); m != nil {
			task.Due = titleCase(m[1])
		}
		if m := ownerPattern.FindStringSubmatch(description); m != nil {
			task.Owner = m[1]
		}

		tasks = append(tasks, task)
	}

	return tasks
}

// containsAnyFold reports whether the lower-cased s contains any of the
// given lower-case phrases.
func containsAnyFold(s string, phrases []string) bool {
	lower := strings.ToLower(s)
	for _, phrase := range phrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// capitalizeFirst upper-cases the first letter of s.
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// titleCase upper-cases the first letter of each whitespace-separated word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		words[i] = capitalizeFirst(word)
	}
	return strings.Join(words, " ")
}
