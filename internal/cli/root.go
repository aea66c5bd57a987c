// Package cli implements the inboxpilot command tree. Service dependencies
// are package-level variables set during application wiring.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inboxpilot/inboxpilot/internal/core"
	"github.com/inboxpilot/inboxpilot/internal/observability"
	"github.com/inboxpilot/inboxpilot/pkg/models"
)

var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets the version information injected via ldflags.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

// Engine is the triage engine used by the analyze and compose commands.
// Set during application wiring.
var Engine core.TriageEngine

// Observability services. Any of these may be nil when observability is
// disabled.
var (
	MetricsCalc observability.MetricsCalculator
	AlertEngine observability.AlertEngine
	Notifier    observability.Notifier
)

// Config-derived defaults applied when the matching flag is not given.
var (
	DefaultTone      models.Tone
	DefaultSignature string
	DefaultPersona   string
	Personas         []string
)

var rootCmd = &cobra.Command{
	Use:   "inboxpilot",
	Short: "InboxPilot - rule-based email triage and drafting",
	Long: `InboxPilot turns free-text email content into structured triage data
(sentiment, priority, tasks, tags, follow-up plan, reply draft) and
synthesizes outbound email drafts from structured intent fields.

The engine is deterministic and rule-based: fixed word lists, pattern
rules, and tone templates. No model calls, no network, no surprises.`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("inboxpilot %s\ncommit: %s\nbuilt:  %s\n", appVersion, appCommit, appDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
