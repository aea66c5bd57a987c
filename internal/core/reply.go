package core

import (
	"fmt"
	"strings"

	"github.com/inboxpilot/inboxpilot/pkg/models"
)

// replySignoff closes every recommended reply.
const replySignoff = "Best,\nYour Email Agent"

// ReplyComposer assembles the recommended reply for an analyzed email from
// its signals, summary, and an optional persona name.
type ReplyComposer interface {
	Compose(signals Signals, summary, persona string) models.RecommendedReply
}

type replyComposer struct{}

// NewReplyComposer creates a template-driven ReplyComposer.
func NewReplyComposer() ReplyComposer {
	return &replyComposer{}
}

// Compose picks a tone from the priority signal, personalizes the template
// opening, and assembles the reply body around the summary and tracked tasks.
func (c *replyComposer) Compose(signals Signals, summary, persona string) models.RecommendedReply {
	tone := models.ToneProfessional
	if signals.Priority == models.PriorityHigh {
		tone = models.ToneAssertive
	}
	tmpl := TemplateFor(tone)

	opening := tmpl.Opening
	if persona != "" {
		opening = personalizeOpening(opening, persona)
	}

	var body strings.Builder
	body.WriteString(opening)
	body.WriteString("\n\n")
	body.WriteString(summary)

	if len(signals.Tasks) > 0 {
		body.WriteString("\n\nHere's what I'm tracking:")
		for _, task := range signals.Tasks {
			body.WriteString("\n")
			body.WriteString(taskBullet(task))
		}
	}

	body.WriteString("\n\n")
	body.WriteString(tmpl.Closing)
	body.WriteString("\n\n")
	body.WriteString(replySignoff)

	return models.RecommendedReply{
		Subject: tmpl.Subject,
		Body:    body.String(),
	}
}

// personalizeOpening rewrites a leading "Thanks"/"Thank you" into a greeting
// addressed to the persona. Only a leading occurrence is rewritten;
// mid-sentence thanks are left alone.
func personalizeOpening(opening, persona string) string {
	if rest, ok := strings.CutPrefix(opening, "Thank you"); ok {
		return fmt.Sprintf("Hi %s, thank you%s", persona, rest)
	}
	if rest, ok := strings.CutPrefix(opening, "Thanks"); ok {
		return fmt.Sprintf("Hi %s, thanks%s", persona, rest)
	}
	return opening
}

// taskBullet renders a single tracked-task line with its optional due date
// and owner.
func taskBullet(task models.Task) string {
	line := "• " + task.Description
	if task.Due != "" {
		line += fmt.Sprintf(" (due %s)", task.Due)
	}
	if task.Owner != "" {
		line += fmt.Sprintf(" — owner: %s", task.Owner)
	}
	return line
}
