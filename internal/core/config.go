package core

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/inboxpilot/inboxpilot/pkg/models"
)

// ConfigurationManager defines the interface for loading and validating
// configuration from the global .inboxpilot file.
type ConfigurationManager interface {
	LoadGlobalConfig() (*models.GlobalConfig, error)
	ValidateConfig(cfg *models.GlobalConfig) error
}

// viperConfigManager implements ConfigurationManager using Viper for
// reading YAML configuration files.
type viperConfigManager struct {
	// basePath is the root directory where .inboxpilot resides.
	basePath string
}

// NewConfigurationManager creates a new ConfigurationManager that reads
// configuration files relative to basePath.
func NewConfigurationManager(basePath string) ConfigurationManager {
	return &viperConfigManager{basePath: basePath}
}

// defaultGlobalConfig returns a GlobalConfig populated with sensible defaults.
func defaultGlobalConfig() *models.GlobalConfig {
	return &models.GlobalConfig{
		DefaultTone: models.ToneProfessional,
		Notifications: models.NotificationConfig{
			Alerts: models.AlertsConfig{
				HighPriorityShare: 0.5,
				NegativeShare:     0.4,
				MaxDailyAnalyses:  200,
				WindowHours:       24,
			},
		},
	}
}

// LoadGlobalConfig reads the .inboxpilot file from the base path using
// Viper. If the file does not exist, sensible defaults are returned.
func (cm *viperConfigManager) LoadGlobalConfig() (*models.GlobalConfig, error) {
	cfg := defaultGlobalConfig()

	v := viper.New()
	v.SetConfigName(".inboxpilot")
	v.SetConfigType("yaml")
	v.AddConfigPath(cm.basePath)

	// Set Viper defaults so missing keys fall back gracefully.
	v.SetDefault("defaults.tone", string(cfg.DefaultTone))
	v.SetDefault("defaults.signature", cfg.DefaultSignature)
	v.SetDefault("defaults.persona", cfg.DefaultPersona)
	v.SetDefault("notifications.enabled", cfg.Notifications.Enabled)
	v.SetDefault("notifications.slack.webhook_url", cfg.Notifications.Slack.WebhookURL)
	v.SetDefault("notifications.alerts.high_priority_share", cfg.Notifications.Alerts.HighPriorityShare)
	v.SetDefault("notifications.alerts.negative_share", cfg.Notifications.Alerts.NegativeShare)
	v.SetDefault("notifications.alerts.max_daily_analyses", cfg.Notifications.Alerts.MaxDailyAnalyses)
	v.SetDefault("notifications.alerts.window_hours", cfg.Notifications.Alerts.WindowHours)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// No config file found, return defaults.
			return cfg, nil
		}
		return nil, fmt.Errorf("reading .inboxpilot: %w", err)
	}

	// Map nested YAML keys to flat GlobalConfig fields.
	cfg.DefaultTone = models.Tone(v.GetString("defaults.tone"))
	cfg.DefaultSignature = v.GetString("defaults.signature")
	cfg.DefaultPersona = v.GetString("defaults.persona")
	cfg.Personas = v.GetStringSlice("personas")
	cfg.Notifications.Enabled = v.GetBool("notifications.enabled")
	cfg.Notifications.Slack.WebhookURL = v.GetString("notifications.slack.webhook_url")
	cfg.Notifications.Alerts.HighPriorityShare = v.GetFloat64("notifications.alerts.high_priority_share")
	cfg.Notifications.Alerts.NegativeShare = v.GetFloat64("notifications.alerts.negative_share")
	cfg.Notifications.Alerts.MaxDailyAnalyses = v.GetInt("notifications.alerts.max_daily_analyses")
	cfg.Notifications.Alerts.WindowHours = v.GetInt("notifications.alerts.window_hours")

	if err := cm.ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("validating .inboxpilot: %w", err)
	}

	return cfg, nil
}

// ValidateConfig checks that the loaded configuration values are usable.
func (cm *viperConfigManager) ValidateConfig(cfg *models.GlobalConfig) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if !models.ValidTone(cfg.DefaultTone) {
		return fmt.Errorf("invalid default tone %q: must be one of professional, friendly, concise, assertive, warm", cfg.DefaultTone)
	}
	alerts := cfg.Notifications.Alerts
	if alerts.HighPriorityShare < 0 || alerts.HighPriorityShare > 1 {
		return fmt.Errorf("high_priority_share %v out of range [0, 1]", alerts.HighPriorityShare)
	}
	if alerts.NegativeShare < 0 || alerts.NegativeShare > 1 {
		return fmt.Errorf("negative_share %v out of range [0, 1]", alerts.NegativeShare)
	}
	if alerts.MaxDailyAnalyses < 0 {
		return fmt.Errorf("max_daily_analyses must not be negative")
	}
	return nil
}
