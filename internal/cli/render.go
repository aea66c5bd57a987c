package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/inboxpilot/inboxpilot/pkg/models"
)

// Style definitions for the text renderer.
var (
	labelStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230")).MarginTop(1)

	sentimentPositive = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	sentimentNeutral  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	sentimentNegative = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	priorityHigh   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	priorityMedium = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	priorityLow    = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))

	tagStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("141"))
)

// writePayload prints the payload in the requested format: a styled text
// rendering, indented JSON, or YAML.
func writePayload[T any](w io.Writer, format string, payload T, render func(T) string) error {
	switch format {
	case "text":
		fmt.Fprintln(w, render(payload))
		return nil
	case "json":
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return fmt.Errorf("formatting as JSON: %w", err)
		}
		fmt.Fprintln(w, string(data))
		return nil
	case "yaml":
		data, err := yaml.Marshal(payload)
		if err != nil {
			return fmt.Errorf("formatting as YAML: %w", err)
		}
		fmt.Fprint(w, string(data))
		return nil
	default:
		return fmt.Errorf("unsupported format %q (use text, json, or yaml)", format)
	}
}

// renderAnalysis formats the triage payload for the terminal.
func renderAnalysis(result *models.AnalysisResult) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("Sentiment:"), styleForSentiment(result.Sentiment).Render(string(result.Sentiment))))
	b.WriteString(fmt.Sprintf("%s  %s\n", labelStyle.Render("Priority:"), styleForPriority(result.Priority).Render(string(result.Priority))))
	b.WriteString(fmt.Sprintf("%s      %s\n", labelStyle.Render("Tags:"), tagStyle.Render(strings.Join(result.Tags, ", "))))
	b.WriteString(fmt.Sprintf("%s   %s\n", labelStyle.Render("Subject:"), result.SubjectSuggestion))

	b.WriteString(sectionStyle.Render("Summary"))
	b.WriteString("\n" + result.Summary + "\n")

	if len(result.Tasks) > 0 {
		b.WriteString(sectionStyle.Render("Tasks"))
		b.WriteString("\n")
		for _, task := range result.Tasks {
			line := "  • " + task.Description
			if task.Due != "" {
				line += fmt.Sprintf(" (due %s)", task.Due)
			}
			if task.Owner != "" {
				line += fmt.Sprintf(" — owner: %s", task.Owner)
			}
			b.WriteString(line + "\n")
		}
	}

	b.WriteString(sectionStyle.Render("Follow-up"))
	b.WriteString("\n" + result.FollowUp + "\n")

	b.WriteString(sectionStyle.Render("Recommended reply"))
	b.WriteString(fmt.Sprintf("\nSubject: %s\n\n%s", result.RecommendedReply.Subject, result.RecommendedReply.Body))

	return b.String()
}

// renderDraft formats the compose payload for the terminal.
func renderDraft(result *models.ComposeResult) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("Subject:"), result.Subject))
	b.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("Preview:"), result.Preview))

	b.WriteString(sectionStyle.Render("Body"))
	b.WriteString("\n" + result.Body + "\n")

	b.WriteString(sectionStyle.Render("Cadence tip"))
	b.WriteString("\n" + result.CadenceTip)

	return b.String()
}

func styleForSentiment(s models.Sentiment) lipgloss.Style {
	switch s {
	case models.SentimentPositive:
		return sentimentPositive
	case models.SentimentNegative:
		return sentimentNegative
	default:
		return sentimentNeutral
	}
}

func styleForPriority(p models.Priority) lipgloss.Style {
	switch p {
	case models.PriorityHigh:
		return priorityHigh
	case models.PriorityMedium:
		return priorityMedium
	default:
		return priorityLow
	}
}
