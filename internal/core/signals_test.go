package core

import (
	"testing"

	"github.com/inboxpilot/inboxpilot/pkg/models"
)

// --- Sentiment classification ---

func TestClassifySentiment_Positive(t *testing.T) {
	content := "Thanks so much, the demo was great and we're excited!"
	if got := classifySentiment(content); got != models.SentimentPositive {
		t.Errorf("sentiment = %q, want positive", got)
	}
}

func TestClassifySentiment_Negative(t *testing.T) {
	content := "There is a problem with the rollout and the vendor is blocked."
	if got := classifySentiment(content); got != models.SentimentNegative {
		t.Errorf("sentiment = %q, want negative", got)
	}
}

func TestClassifySentiment_TieIsNeutral(t *testing.T) {
	// One positive hit ("thank") and one negative hit ("urgent").
	content := "Thanks, but this is urgent."
	if got := classifySentiment(content); got != models.SentimentNeutral {
		t.Errorf("sentiment = %q, want neutral on a 1-1 tie", got)
	}
}

func TestClassifySentiment_NoHitsIsNeutral(t *testing.T) {
	if got := classifySentiment("Meeting moved to room 4."); got != models.SentimentNeutral {
		t.Errorf("sentiment = %q, want neutral on 0-0", got)
	}
}

func TestClassifySentiment_RepeatsCountOnce(t *testing.T) {
	// "great" repeated three times still contributes a single point, so the
	// two distinct negative words win.
	content := "great great great, but we have an issue and a delay"
	if got := classifySentiment(content); got != models.SentimentNegative {
		t.Errorf("sentiment = %q, want negative", got)
	}
}

// --- Priority classification ---

func TestClassifyPriority_HighKeywordWins(t *testing.T) {
	// "ASAP" outranks the date token and the scheduling phrase.
	content := "Need this ASAP, ideally by 5/12, otherwise next week."
	if got := classifyPriority(content); got != models.PriorityHigh {
		t.Errorf("priority = %q, want high", got)
	}
}

func TestClassifyPriority_DateToken(t *testing.T) {
	if got := classifyPriority("The review is scheduled for 5/12."); got != models.PriorityMedium {
		t.Errorf("priority = %q, want medium for date token", got)
	}
}

func TestClassifyPriority_SchedulingPhrase(t *testing.T) {
	for _, content := range []string{
		"Let's sync next week.",
		"We should handle this soon.",
		"I'll follow up with the vendor.",
	} {
		if got := classifyPriority(content); got != models.PriorityMedium {
			t.Errorf("priority(%q) = %q, want medium", content, got)
		}
	}
}

func TestClassifyPriority_Low(t *testing.T) {
	if got := classifyPriority("Sharing the notes from today."); got != models.PriorityLow {
		t.Errorf("priority = %q, want low", got)
	}
}

// --- Task extraction ---

func TestExtractTasks_BulletMarkers(t *testing.T) {
	content := "* review the budget\n- send the invite\n3. archive old threads"
	tasks := extractTasks(content)
	if len(tasks) != 3 {
		t.Fatalf("task count = %d, want 3", len(tasks))
	}

	want := []string{"Review the budget", "Send the invite", "Archive old threads"}
	for i, task := range tasks {
		if task.Description != want[i] {
			t.Errorf("task[%d].Description = %q, want %q", i, task.Description, want[i])
		}
	}
}

func TestExtractTasks_CuePhrases(t *testing.T) {
	content := "please send the deck\nCould you loop in legal\nno action needed here is wrong: action shows up\njust an FYI line"
	tasks := extractTasks(content)
	if len(tasks) != 3 {
		t.Fatalf("task count = %d, want 3", len(tasks))
	}
	if tasks[0].Description != "Please send the deck" {
		t.Errorf("task[0].Description = %q", tasks[0].Description)
	}
}

func TestExtractTasks_DueFromByPhrase(t *testing.T) {
	cases := []struct {
		line string
		due  string
	}{
		{"- ship the fix by tomorrow", "Tomorrow"},
		{"- ship the fix by next week", "Next Week"},
		{"- ship the fix by 5/12", "5/12"},
		{"- ship the fix by June 5", "June 5"},
		{"Please update the docs by Thursday.", "Thursday"},
	}
	for _, tc := range cases {
		tasks := extractTasks(tc.line)
		if len(tasks) != 1 {
			t.Fatalf("task count for %q = %d, want 1", tc.line, len(tasks))
		}
		if tasks[0].Due != tc.due {
			t.Errorf("due for %q = %q, want %q", tc.line, tasks[0].Due, tc.due)
		}
	}
}

func TestExtractTasks_DueFromKeyword(t *testing.T) {
	tasks := extractTasks("- finish the report, deadline March 12")
	if len(tasks) != 1 {
		t.Fatalf("task count = %d, want 1", len(tasks))
	}
	if tasks[0].Due != "March 12" {
		t.Errorf("due = %q, want %q", tasks[0].Due, "March 12")
	}
}

func TestExtractTasks_OwnerCapture(t *testing.T) {
	tasks := extractTasks("- schedule the security review for Dana")
	if len(tasks) != 1 {
		t.Fatalf("task count = %d, want 1", len(tasks))
	}
	if tasks[0].Owner != "Dana" {
		t.Errorf("owner = %q, want Dana", tasks[0].Owner)
	}
}

func TestExtractTasks_EmptyDescriptionDropped(t *testing.T) {
	tasks := extractTasks("-\n* \n- real task")
	if len(tasks) != 1 {
		t.Fatalf("task count = %d, want 1", len(tasks))
	}
	if tasks[0].Description != "Real task" {
		t.Errorf("task[0].Description = %q", tasks[0].Description)
	}
}

func TestExtractTasks_SourceOrderPreserved(t *testing.T) {
	content := "- first\nfiller line\n- second\nplease do the third"
	tasks := extractTasks(content)
	if len(tasks) != 3 {
		t.Fatalf("task count = %d, want 3", len(tasks))
	}
	want := []string{"First", "Second", "Please do the third"}
	for i, task := range tasks {
		if task.Description != want[i] {
			t.Errorf("task[%d].Description = %q, want %q", i, task.Description, want[i])
		}
	}
}

func TestExtract_CombinesAllSignals(t *testing.T) {
	content := "Please update the docs by Thursday.\nThanks so much, this is urgent!"
	signals := NewSignalExtractor().Extract(content)

	if signals.Sentiment != models.SentimentNeutral {
		t.Errorf("sentiment = %q, want neutral (thank vs urgent tie)", signals.Sentiment)
	}
	if signals.Priority != models.PriorityHigh {
		t.Errorf("priority = %q, want high", signals.Priority)
	}
	if len(signals.Tasks) != 1 {
		t.Fatalf("task count = %d, want 1", len(signals.Tasks))
	}
	if signals.Tasks[0].Description != "Please update the docs by Thursday." {
		t.Errorf("task description = %q", signals.Tasks[0].Description)
	}
	if signals.Tasks[0].Due != "Thursday" {
		t.Errorf("task due = %q, want Thursday", signals.Tasks[0].Due)
	}
}
