// Package core contains the business logic for InboxPilot: signal
// extraction, content synthesis, reply and outbound draft composition, and
// the pipelines that tie them together.
package core

import "github.com/inboxpilot/inboxpilot/pkg/models"

// TemplateFor returns the fixed (subject, opening, closing) template for the
// given tone. The tone set is closed at five values; unknown tones fall back
// to the professional template so the catalog is total.
func TemplateFor(tone models.Tone) models.Template {
	switch tone {
	case models.ToneFriendly:
		return models.Template{
			Subject: "Great to hear from you!",
			Opening: "Thanks for reaching out! Here's a quick rundown of where things stand.",
			Closing: "Talk soon, and don't hesitate to ping me with questions.",
		}
	case models.ToneConcise:
		return models.Template{
			Subject: "Quick note",
			Opening: "Thanks. Summary below.",
			Closing: "Let me know if anything is unclear.",
		}
	case models.ToneAssertive:
		return models.Template{
			Subject: "Action needed: next steps inside",
			Opening: "Thank you for flagging this. Here's what needs to happen next.",
			Closing: "Please confirm ownership of each item by end of day.",
		}
	case models.ToneWarm:
		return models.Template{
			Subject: "Lovely to hear from you",
			Opening: "Thank you so much for the thoughtful message.",
			Closing: "Wishing you a great rest of the week.",
		}
	default:
		return models.Template{
			Subject: "Following up on our conversation",
			Opening: "Thank you for the detailed note. I reviewed everything and here's where we stand.",
			Closing: "Please let me know if you need anything else from my side.",
		}
	}
}
