package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/inboxpilot/inboxpilot/pkg/models"
)

var (
	composeAudience  string
	composeObjective string
	composeTone      string
	composePoints    []string
	composeCTA       string
	composeSignature string
	composeFormat    string
)

var composeCmd = &cobra.Command{
	Use:   "compose",
	Short: "Draft an outbound email from intent fields",
	Long: `Run the compose pipeline and print the draft payload: subject, a
single-line preview, the full body, and a follow-up cadence tip.

Examples:
  inboxpilot compose --objective "Share a quick product update" --tone concise \
      --point "Ship by Friday" --point "Notify finance"
  inboxpilot compose --audience "the team" --tone friendly --cta "reply with blockers"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Engine == nil {
			return fmt.Errorf("triage engine not initialized")
		}

		tone := models.Tone(composeTone)
		if composeTone == "" {
			tone = DefaultTone
		}
		if !models.ValidTone(tone) {
			return fmt.Errorf("invalid tone %q: must be one of professional, friendly, concise, assertive, warm", composeTone)
		}

		signature := composeSignature
		if signature == "" {
			signature = DefaultSignature
		}

		result, err := Engine.ComposeDraft(models.ComposeRequest{
			Audience:     composeAudience,
			Objective:    composeObjective,
			Tone:         tone,
			KeyPoints:    composePoints,
			CallToAction: composeCTA,
			Signature:    signature,
		})
		if err != nil {
			return fmt.Errorf("composing draft: %w", err)
		}

		return writePayload(cmd.OutOrStdout(), composeFormat, result, renderDraft)
	},
}

// completeTones offers the fixed tone list for --tone.
func completeTones() func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		var matches []string
		for _, t := range models.Tones() {
			if strings.HasPrefix(string(t), strings.ToLower(toComplete)) {
				matches = append(matches, string(t))
			}
		}
		return matches, cobra.ShellCompDirectiveNoFileComp
	}
}

func init() {
	composeCmd.Flags().StringVar(&composeAudience, "audience", "", "Who the draft addresses (e.g. \"the team\", a client name)")
	composeCmd.Flags().StringVar(&composeObjective, "objective", "", "What the draft should achieve; drives the subject line")
	composeCmd.Flags().StringVar(&composeTone, "tone", "", "Writing style: professional, friendly, concise, assertive, warm")
	composeCmd.Flags().StringArrayVar(&composePoints, "point", nil, "Key point to include (repeatable)")
	composeCmd.Flags().StringVar(&composeCTA, "cta", "", "Call to action appended after the bullets")
	composeCmd.Flags().StringVar(&composeSignature, "signature", "", "Custom signature, replacing the tone default")
	composeCmd.Flags().StringVar(&composeFormat, "format", "text", "Output format: text, json, or yaml")
	_ = composeCmd.RegisterFlagCompletionFunc("tone", completeTones())
	rootCmd.AddCommand(composeCmd)
}
