package core

import (
	"strings"
	"testing"

	"github.com/inboxpilot/inboxpilot/pkg/models"
)

func TestTemplateFor_AllTonesComplete(t *testing.T) {
	for _, tone := range models.Tones() {
		tmpl := TemplateFor(tone)
		if tmpl.Subject == "" || tmpl.Opening == "" || tmpl.Closing == "" {
			t.Errorf("template for %q has empty fields: %+v", tone, tmpl)
		}
	}
}

func TestTemplateFor_UnknownToneFallsBackToProfessional(t *testing.T) {
	got := TemplateFor(models.Tone("sarcastic"))
	want := TemplateFor(models.ToneProfessional)
	if got != want {
		t.Errorf("unknown tone template = %+v, want professional template", got)
	}
}

func TestTemplateFor_OpeningsStartWithThanks(t *testing.T) {
	// Reply personalization and outbound greetings both rewrite a leading
	// "Thank you"/"Thanks", so every catalog opening must start with one.
	for _, tone := range models.Tones() {
		opening := TemplateFor(tone).Opening
		if !strings.HasPrefix(opening, "Thank you") && !strings.HasPrefix(opening, "Thanks") {
			t.Errorf("opening for %q does not start with thanks: %q", tone, opening)
		}
	}
}

func TestTemplateFor_ConciseSubject(t *testing.T) {
	if got := TemplateFor(models.ToneConcise).Subject; got != "Quick note" {
		t.Errorf("concise subject = %q", got)
	}
}
