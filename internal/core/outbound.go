package core

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/inboxpilot/inboxpilot/pkg/models"
)

const previewLimit = 140

// whitespaceRunPattern matches any run of whitespace, for preview collapsing.
var whitespaceRunPattern = regexp.MustCompile(`\s+`)

// subjectRules maps objective keywords to canned subjects, checked in order;
// the first matching keyword wins.
var subjectRules = []struct {
	keyword string
	subject string
}{
	{"update", "Quick project update"},
	{"intro", "Introduction and next steps"},
	{"meeting", "Proposed agenda for our meeting"},
	{"feedback", "Feedback and proposed improvements"},
}

// OutboundComposer assembles a full outbound draft from structured intent
// fields.
type OutboundComposer interface {
	Compose(req models.ComposeRequest) models.ComposeResult
}

type outboundComposer struct{}

// NewOutboundComposer creates a template-driven OutboundComposer.
func NewOutboundComposer() OutboundComposer {
	return &outboundComposer{}
}

// Compose builds the subject, body, preview, and cadence tip for a draft.
func (c *outboundComposer) Compose(req models.ComposeRequest) models.ComposeResult {
	tmpl := TemplateFor(req.Tone)
	points := cleanKeyPoints(req.KeyPoints)

	body := assembleBody(req, tmpl, points)

	return models.ComposeResult{
		Subject:    draftSubject(req.Objective, tmpl),
		Preview:    buildPreview(body),
		Body:       body,
		CadenceTip: cadenceTip(req.Tone, points),
	}
}

// cleanKeyPoints trims each raw point, drops empty ones, and strips a single
// leading "-" marker with its following whitespace.
func cleanKeyPoints(raw []string) []string {
	var points []string
	for _, p := range raw {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		p = strings.TrimSpace(strings.TrimPrefix(p, "-"))
		points = append(points, p)
	}
	return points
}

// draftSubject picks a subject from the objective-keyword table, falling
// back to the capitalized objective, or the template subject when no
// objective was given.
func draftSubject(objective string, tmpl models.Template) string {
	if objective == "" {
		return tmpl.Subject
	}
	lower := strings.ToLower(objective)
	for _, rule := range subjectRules {
		if strings.Contains(lower, rule.keyword) {
			return rule.subject
		}
	}
	return capitalizeFirst(objective)
}

// draftOpening merges the audience greeting with the template opening. With
// no audience the opening is used unmodified.
func draftOpening(audience string, tone models.Tone, tmpl models.Template) string {
	if audience == "" {
		return tmpl.Opening
	}
	greeting := "Hello"
	if tone == models.ToneFriendly || tone == models.ToneWarm {
		greeting = "Hi"
	}
	return fmt.Sprintf("%s %s, %s", greeting, audience, lowercaseLeadingThanks(tmpl.Opening))
}

// lowercaseLeadingThanks lower-cases a leading "Thank you"/"Thanks" so the
// opening reads naturally after a greeting.
func lowercaseLeadingThanks(opening string) string {
	if rest, ok := strings.CutPrefix(opening, "Thank you"); ok {
		return "thank you" + rest
	}
	if rest, ok := strings.CutPrefix(opening, "Thanks"); ok {
		return "thanks" + rest
	}
	return opening
}

// assembleBody lays out the draft: opening, objective line, key-point
// bullets, optional call to action, closing, and signature.
func assembleBody(req models.ComposeRequest, tmpl models.Template, points []string) string {
	lines := []string{draftOpening(req.Audience, req.Tone, tmpl), ""}

	if req.Objective != "" {
		lines = append(lines, "Objective: "+capitalizeFirst(req.Objective), "")
	}

	if len(points) > 0 {
		for _, p := range points {
			lines = append(lines, "• "+capitalizeFirst(p))
		}
	} else {
		lines = append(lines, "• Key details are included in the attachments.")
	}

	if req.CallToAction != "" {
		lines = append(lines, "", "Next up: "+capitalizeFirst(req.CallToAction)+".")
	}

	lines = append(lines, "", tmpl.Closing, "", draftSignature(req))

	return strings.Join(lines, "\n")
}

// draftSignature returns the supplied signature or a tone-matched default.
func draftSignature(req models.ComposeRequest) string {
	if req.Signature != "" {
		return req.Signature
	}
	if req.Tone == models.ToneFriendly || req.Tone == models.ToneWarm {
		return "All the best,\nYour Email Agent"
	}
	return "Best regards,\nYour Email Agent"
}

// buildPreview collapses the body to a single line and truncates it to the
// preview limit, marking truncation with "...".
func buildPreview(body string) string {
	collapsed := strings.TrimSpace(whitespaceRunPattern.ReplaceAllString(body, " "))
	runes := []rune(collapsed)
	if len(runes) <= previewLimit {
		return collapsed
	}
	return string(runes[:previewLimit]) + "..."
}

// cadenceTip recommends a follow-up cadence for the chosen tone, with an
// extra formatting nudge when the draft carries more than two key points.
func cadenceTip(tone models.Tone, points []string) string {
	var tip string
	switch tone {
	case models.ToneAssertive:
		tip = "Set a reminder to nudge the recipient within 1 business day."
	case models.ToneConcise:
		tip = "Share a short recap if you do not hear back within 2 days."
	default:
		tip = "Send a friendly check-in if there's no response within 3 days."
	}
	if len(points) > 2 {
		tip += " Consider bolding the key decisions to make scanning easier."
	}
	return tip
}
