package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/inboxpilot/inboxpilot/pkg/models"
)

var (
	analyzeFile    string
	analyzeContent string
	analyzeThread  string
	analyzePersona string
	analyzeFormat  string
	analyzeDemo    bool
)

// demoEmail is a built-in sample used by --demo to show the full triage
// output without needing a real message at hand.
const demoEmail = `Hi team,

Thanks for the great progress this sprint. A few things before the release:

- Please update the onboarding docs by Friday
- Can you schedule the security review for Dana by 6/12?
1. Collect feedback from the pilot customers

This is urgent since the launch date moved up. Let me know if anything is
blocked, and we can follow up next week on the rest.`

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Triage email content into structured signals",
	Long: `Run the analysis pipeline over email content and print the triage payload:
sentiment, priority, extracted tasks, tags, a short summary, a follow-up
recommendation, and a recommended reply.

Content is read from --content, --file, or stdin, in that order of
precedence. --demo analyzes a built-in sample email instead.

Examples:
  inboxpilot analyze --file inbox/msg.txt
  cat msg.txt | inboxpilot analyze --persona Alex --format json
  inboxpilot analyze --demo`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Engine == nil {
			return fmt.Errorf("triage engine not initialized")
		}

		content, err := resolveAnalyzeContent()
		if err != nil {
			return err
		}

		persona := analyzePersona
		if persona == "" {
			persona = DefaultPersona
		}

		result, err := Engine.Analyze(models.AnalysisRequest{
			Content:       content,
			ThreadHistory: analyzeThread,
			Persona:       persona,
		})
		if err != nil {
			return fmt.Errorf("analyzing content: %w", err)
		}

		return writePayload(cmd.OutOrStdout(), analyzeFormat, result, renderAnalysis)
	},
}

// resolveAnalyzeContent picks the content source: demo sample, --content,
// --file, then stdin.
func resolveAnalyzeContent() (string, error) {
	if analyzeDemo {
		return demoEmail, nil
	}
	if analyzeContent != "" {
		return analyzeContent, nil
	}
	if analyzeFile != "" {
		data, err := os.ReadFile(analyzeFile)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", analyzeFile, err)
		}
		return string(data), nil
	}

	info, err := os.Stdin.Stat()
	if err == nil && (info.Mode()&os.ModeCharDevice) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}

	return "", fmt.Errorf("no content provided (use --content, --file, --demo, or pipe to stdin)")
}

// completePersonas offers the configured persona list for --persona.
func completePersonas() func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		var matches []string
		for _, p := range Personas {
			if strings.HasPrefix(strings.ToLower(p), strings.ToLower(toComplete)) {
				matches = append(matches, p)
			}
		}
		return matches, cobra.ShellCompDirectiveNoFileComp
	}
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeFile, "file", "f", "", "Read email content from a file")
	analyzeCmd.Flags().StringVar(&analyzeContent, "content", "", "Email content to analyze")
	analyzeCmd.Flags().StringVar(&analyzeThread, "thread", "", "Prior thread content considered for summary context")
	analyzeCmd.Flags().StringVar(&analyzePersona, "persona", "", "Name used to personalize the recommended reply greeting")
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "text", "Output format: text, json, or yaml")
	analyzeCmd.Flags().BoolVar(&analyzeDemo, "demo", false, "Analyze a built-in sample email")
	_ = analyzeCmd.RegisterFlagCompletionFunc("persona", completePersonas())
	rootCmd.AddCommand(analyzeCmd)
}
