package core

import (
	"strings"
	"testing"
	"unicode/utf8"

	"pgregory.net/rapid"

	"github.com/inboxpilot/inboxpilot/pkg/models"
)

// composeRequestGenerator produces arbitrary compose requests, including
// unknown tones and messy key points.
func composeRequestGenerator() *rapid.Generator[models.ComposeRequest] {
	return rapid.Custom(func(rt *rapid.T) models.ComposeRequest {
		tone := rapid.SampledFrom(models.Tones()).Draw(rt, "tone")
		if !rapid.Bool().Draw(rt, "knownTone") {
			tone = models.Tone(rapid.StringMatching(`[a-z]{0,10}`).Draw(rt, "rawTone"))
		}
		return models.ComposeRequest{
			Audience:     rapid.StringMatching(`[A-Za-z ]{0,20}`).Draw(rt, "audience"),
			Objective:    rapid.StringMatching(`[a-z ]{0,40}`).Draw(rt, "objective"),
			Tone:         tone,
			KeyPoints:    rapid.SliceOfN(rapid.StringMatching(`-? ?[a-zA-Z ]{0,30}`), 0, 6).Draw(rt, "keyPoints"),
			CallToAction: rapid.StringMatching(`[a-z ]{0,30}`).Draw(rt, "cta"),
			Signature:    rapid.StringMatching(`[A-Za-z,\n ]{0,30}`).Draw(rt, "signature"),
		}
	})
}

// Feature: inboxpilot, Property: Preview Length Law
// The preview never exceeds 143 runes, and it ends with "..." exactly when
// the collapsed body exceeds 140 runes.
func TestProperty_PreviewLengthLaw(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		req := composeRequestGenerator().Draw(rt, "req")
		result := NewOutboundComposer().Compose(req)

		if n := utf8.RuneCountInString(result.Preview); n > 143 {
			t.Fatalf("preview is %d runes: %q", n, result.Preview)
		}

		collapsed := strings.TrimSpace(whitespaceRunPattern.ReplaceAllString(result.Body, " "))
		truncated := utf8.RuneCountInString(collapsed) > previewLimit
		if truncated != strings.HasSuffix(result.Preview, "...") {
			t.Fatalf("truncation marker mismatch: collapsed %d runes, preview %q",
				utf8.RuneCountInString(collapsed), result.Preview)
		}
		if !truncated && result.Preview != collapsed {
			t.Fatalf("short preview %q differs from collapsed body %q", result.Preview, collapsed)
		}
	})
}

// Feature: inboxpilot, Property: Draft Fields Always Populated
// Every draft carries a non-empty subject, body, preview, and cadence tip.
func TestProperty_DraftFieldsAlwaysPopulated(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		req := composeRequestGenerator().Draw(rt, "req")
		result := NewOutboundComposer().Compose(req)

		if result.Subject == "" || result.Body == "" || result.Preview == "" || result.CadenceTip == "" {
			t.Fatalf("draft has empty fields: %+v", result)
		}
	})
}

// Feature: inboxpilot, Property: Cadence Nudge Tracks Key Point Count
// The formatting nudge appears exactly when more than two cleaned key points
// survive.
func TestProperty_CadenceNudgeTracksKeyPointCount(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		req := composeRequestGenerator().Draw(rt, "req")
		result := NewOutboundComposer().Compose(req)

		points := cleanKeyPoints(req.KeyPoints)
		hasNudge := strings.Contains(result.CadenceTip, "Consider bolding the key decisions")
		if hasNudge != (len(points) > 2) {
			t.Fatalf("nudge = %v with %d cleaned points (tip %q)", hasNudge, len(points), result.CadenceTip)
		}
	})
}

// Feature: inboxpilot, Property: Compose Is Deterministic
// Composing the same request twice yields byte-identical drafts.
func TestProperty_ComposeDeterministic(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		req := composeRequestGenerator().Draw(rt, "req")
		composer := NewOutboundComposer()

		first := composer.Compose(req)
		second := composer.Compose(req)
		if first != second {
			t.Fatalf("drafts differ across runs: %+v vs %+v", first, second)
		}
	})
}
