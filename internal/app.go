// Package internal provides the App struct that wires all components of
// InboxPilot together and initializes the CLI layer.
package internal

import (
	"os"
	"path/filepath"
	"time"

	"github.com/inboxpilot/inboxpilot/internal/cli"
	"github.com/inboxpilot/inboxpilot/internal/core"
	"github.com/inboxpilot/inboxpilot/internal/observability"
	"github.com/inboxpilot/inboxpilot/pkg/models"
)

// App holds all service dependencies for InboxPilot.
type App struct {
	BasePath string

	// Configuration
	ConfigMgr core.ConfigurationManager

	// Core engine
	Extractor   core.SignalExtractor
	Synthesizer core.ContentSynthesizer
	Replier     core.ReplyComposer
	Outbound    core.OutboundComposer
	Engine      core.TriageEngine

	// Observability
	EventLog    observability.EventLog
	AlertEngine observability.AlertEngine
	MetricsCalc observability.MetricsCalculator
	Notifier    observability.Notifier
}

// NewApp creates and wires all components of InboxPilot. basePath is the
// directory holding the .inboxpilot config file and the event log.
func NewApp(basePath string) (*App, error) {
	app := &App{BasePath: basePath}

	// --- Configuration ---
	app.ConfigMgr = core.NewConfigurationManager(basePath)
	globalCfg, err := app.ConfigMgr.LoadGlobalConfig()
	if err != nil {
		// Use defaults if the config file is unreadable.
		globalCfg = &models.GlobalConfig{DefaultTone: models.ToneProfessional}
	}

	// --- Observability ---
	eventLogPath := filepath.Join(basePath, ".inboxpilot_events.jsonl")
	app.EventLog, err = observability.NewJSONLEventLog(eventLogPath)
	if err != nil {
		// Non-fatal: disable observability if log can't be created.
		app.EventLog = nil
	}
	if app.EventLog != nil {
		thresholds := observability.DefaultAlertThresholds()
		if globalCfg.Notifications.Alerts.HighPriorityShare > 0 {
			thresholds.HighPriorityShare = globalCfg.Notifications.Alerts.HighPriorityShare
		}
		if globalCfg.Notifications.Alerts.NegativeShare > 0 {
			thresholds.NegativeShare = globalCfg.Notifications.Alerts.NegativeShare
		}
		if globalCfg.Notifications.Alerts.MaxDailyAnalyses > 0 {
			thresholds.MaxDailyAnalyses = globalCfg.Notifications.Alerts.MaxDailyAnalyses
		}
		if globalCfg.Notifications.Alerts.WindowHours > 0 {
			thresholds.WindowHours = globalCfg.Notifications.Alerts.WindowHours
		}
		app.AlertEngine = observability.NewAlertEngine(app.EventLog, thresholds)
		app.MetricsCalc = observability.NewMetricsCalculator(app.EventLog)
	}
	if globalCfg.Notifications.Enabled && globalCfg.Notifications.Slack.WebhookURL != "" {
		app.Notifier = observability.NewSlackNotifier(globalCfg.Notifications.Slack.WebhookURL)
	}

	// --- Core engine ---
	app.Extractor = core.NewSignalExtractor()
	app.Synthesizer = core.NewContentSynthesizer()
	app.Replier = core.NewReplyComposer()
	app.Outbound = core.NewOutboundComposer()

	var evtAdapter core.EventLogger
	if app.EventLog != nil {
		evtAdapter = &eventLogAdapter{log: app.EventLog}
	}
	app.Engine = core.NewTriageEngine(app.Extractor, app.Synthesizer, app.Replier, app.Outbound, evtAdapter)

	// --- Wire CLI package-level variables ---
	cli.Engine = app.Engine
	cli.AlertEngine = app.AlertEngine
	cli.MetricsCalc = app.MetricsCalc
	cli.Notifier = app.Notifier
	cli.DefaultTone = globalCfg.DefaultTone
	cli.DefaultSignature = globalCfg.DefaultSignature
	cli.DefaultPersona = globalCfg.DefaultPersona
	cli.Personas = globalCfg.Personas

	return app, nil
}

// Close releases resources held by the App, such as the event log file handle.
// It is safe to call Close on an App whose EventLog is nil.
func (a *App) Close() error {
	if a.EventLog != nil {
		return a.EventLog.Close()
	}
	return nil
}

// ResolveBasePath determines the base path for the InboxPilot data
// directory. It checks the INBOXPILOT_HOME env var, then walks up from the
// current directory looking for a .inboxpilot config file.
func ResolveBasePath() string {
	if home := os.Getenv("INBOXPILOT_HOME"); home != "" {
		return home
	}
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, ".inboxpilot")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	// Fall back to cwd.
	cwd, _ := os.Getwd()
	return cwd
}

// eventLogAdapter adapts observability.EventLog to core.EventLogger.
type eventLogAdapter struct {
	log observability.EventLog
}

func (a *eventLogAdapter) LogEvent(eventType string, data map[string]any) error {
	return a.log.Write(observability.NewPipelineEvent(time.Now().UTC(), eventType, data))
}
