package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// Dashboard panel indices.
const (
	panelTriage = iota
	panelVolume
	panelAlerts
	panelCount
)

type dashboardModel struct {
	activePanel int
	width       int
	height      int

	// Data.
	sentiments map[string]int
	priorities map[string]int
	volume     *volumeSnapshot
	alerts     []alertSnapshot

	// State.
	loading bool
	err     error
}

type volumeSnapshot struct {
	emailsAnalyzed    int
	draftsComposed    int
	tasksExtracted    int
	truncatedPreviews int
	eventCount        int
}

type alertSnapshot struct {
	severity string
	message  string
}

// dataLoadedMsg carries loaded data back to the model.
type dataLoadedMsg struct {
	sentiments map[string]int
	priorities map[string]int
	volume     *volumeSnapshot
	alerts     []alertSnapshot
	err        error
}

// Style definitions.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2)

	activePanelStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("62")).
				Padding(1, 2)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			MarginBottom(1)

	severityHigh   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	severityMedium = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	severityLow    = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func newDashboardModel() dashboardModel {
	return dashboardModel{
		activePanel: panelTriage,
		loading:     true,
		sentiments:  make(map[string]int),
		priorities:  make(map[string]int),
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return loadDashboardData
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.activePanel = (m.activePanel + 1) % panelCount
			return m, nil
		case "shift+tab":
			m.activePanel = (m.activePanel - 1 + panelCount) % panelCount
			return m, nil
		case "r":
			m.loading = true
			return m, loadDashboardData
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case dataLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.sentiments = msg.sentiments
		m.priorities = msg.priorities
		m.volume = msg.volume
		m.alerts = msg.alerts
		m.err = nil
		return m, nil
	}

	return m, nil
}

func (m dashboardModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	title := titleStyle.Render(" InboxPilot Dashboard ")
	help := helpStyle.Render("tab: switch panel | r: refresh | q: quit")

	if m.loading {
		return fmt.Sprintf("%s\n\n  Loading data...\n\n%s", title, help)
	}

	if m.err != nil {
		return fmt.Sprintf("%s\n\n  Error: %s\n\n%s", title, m.err, help)
	}

	triagePanel := m.renderTriagePanel()
	volumePanel := m.renderVolumePanel()
	alertsPanel := m.renderAlertsPanel()

	// Available width for panels after accounting for margins.
	availableWidth := m.width - 2

	var body string
	if availableWidth > 120 {
		// Horizontal layout: three columns.
		colWidth := availableWidth / 3
		triagePanel = m.applyPanelStyle(panelTriage, triagePanel, colWidth-4)
		volumePanel = m.applyPanelStyle(panelVolume, volumePanel, colWidth-4)
		alertsPanel = m.applyPanelStyle(panelAlerts, alertsPanel, colWidth-4)
		body = lipgloss.JoinHorizontal(lipgloss.Top, triagePanel, volumePanel, alertsPanel)
	} else {
		// Vertical layout: stacked.
		panelWidth := availableWidth - 4
		if panelWidth < 20 {
			panelWidth = 20
		}
		triagePanel = m.applyPanelStyle(panelTriage, triagePanel, panelWidth)
		volumePanel = m.applyPanelStyle(panelVolume, volumePanel, panelWidth)
		alertsPanel = m.applyPanelStyle(panelAlerts, alertsPanel, panelWidth)
		body = lipgloss.JoinVertical(lipgloss.Left, triagePanel, volumePanel, alertsPanel)
	}

	return fmt.Sprintf("%s\n\n%s\n\n%s", title, body, help)
}

func (m dashboardModel) applyPanelStyle(panel int, content string, width int) string {
	style := panelStyle
	if m.activePanel == panel {
		style = activePanelStyle
	}
	return style.Width(width).Render(content)
}

func (m dashboardModel) renderTriagePanel() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Triage (7d)"))
	b.WriteString("\n")

	if len(m.sentiments) == 0 && len(m.priorities) == 0 {
		b.WriteString("  No analyzed emails yet.")
		return b.String()
	}

	b.WriteString("  Sentiment\n")
	for _, sentiment := range []string{"positive", "neutral", "negative"} {
		count, ok := m.sentiments[sentiment]
		if !ok || count == 0 {
			continue
		}
		label := fmt.Sprintf("    %-12s %d", sentiment, count)
		b.WriteString(styleForSentimentName(sentiment).Render(label))
		b.WriteString("\n")
	}

	b.WriteString("\n  Priority\n")
	for _, priority := range []string{"high", "medium", "low"} {
		count, ok := m.priorities[priority]
		if !ok || count == 0 {
			continue
		}
		label := fmt.Sprintf("    %-12s %d", priority, count)
		b.WriteString(styleForPriorityName(priority).Render(label))
		b.WriteString("\n")
	}

	return b.String()
}

func (m dashboardModel) renderVolumePanel() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Volume (7d)"))
	b.WriteString("\n")

	if m.volume == nil {
		b.WriteString("  No metrics available.")
		return b.String()
	}

	v := m.volume
	lines := []struct {
		label string
		value int
	}{
		{"Events", v.eventCount},
		{"Analyzed", v.emailsAnalyzed},
		{"Composed", v.draftsComposed},
		{"Tasks", v.tasksExtracted},
		{"Truncated", v.truncatedPreviews},
	}

	for _, l := range lines {
		b.WriteString(fmt.Sprintf("  %-14s %d\n", l.label, l.value))
	}

	return b.String()
}

func (m dashboardModel) renderAlertsPanel() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Alerts"))
	b.WriteString("\n")

	if len(m.alerts) == 0 {
		b.WriteString("  No active alerts.")
		return b.String()
	}

	for _, a := range m.alerts {
		sev := styleForSeverityName(a.severity).Render(fmt.Sprintf("[%s]", strings.ToUpper(a.severity)))
		b.WriteString(fmt.Sprintf("  %s %s\n", sev, a.message))
	}

	b.WriteString(fmt.Sprintf("\n  Total: %d alert(s)", len(m.alerts)))

	return b.String()
}

func styleForSentimentName(sentiment string) lipgloss.Style {
	switch sentiment {
	case "positive":
		return sentimentPositive
	case "negative":
		return sentimentNegative
	default:
		return sentimentNeutral
	}
}

func styleForPriorityName(priority string) lipgloss.Style {
	switch priority {
	case "high":
		return priorityHigh
	case "medium":
		return priorityMedium
	default:
		return priorityLow
	}
}

func styleForSeverityName(severity string) lipgloss.Style {
	switch strings.ToLower(severity) {
	case "high":
		return severityHigh
	case "medium":
		return severityMedium
	case "low":
		return severityLow
	default:
		return lipgloss.NewStyle()
	}
}

func loadDashboardData() tea.Msg {
	result := dataLoadedMsg{
		sentiments: make(map[string]int),
		priorities: make(map[string]int),
	}

	if MetricsCalc != nil {
		since := time.Now().UTC().AddDate(0, 0, -7)
		metrics, err := MetricsCalc.Calculate(since)
		if err != nil {
			result.err = fmt.Errorf("loading metrics: %w", err)
			return result
		}
		result.sentiments = metrics.BySentiment
		result.priorities = metrics.ByPriority
		result.volume = &volumeSnapshot{
			emailsAnalyzed:    metrics.EmailsAnalyzed,
			draftsComposed:    metrics.DraftsComposed,
			tasksExtracted:    metrics.TasksExtracted,
			truncatedPreviews: metrics.TruncatedPreviews,
			eventCount:        metrics.EventCount,
		}
	}

	if AlertEngine != nil {
		alerts, err := AlertEngine.Evaluate()
		if err != nil {
			result.err = fmt.Errorf("loading alerts: %w", err)
			return result
		}
		for _, a := range alerts {
			result.alerts = append(result.alerts, alertSnapshot{
				severity: string(a.Severity),
				message:  a.Message,
			})
		}
	}

	return result
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Interactive triage dashboard",
	Long: `Open an interactive terminal dashboard showing triage distributions,
volume metrics, and active alerts derived from the event log.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := tea.NewProgram(newDashboardModel(), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("running dashboard: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
