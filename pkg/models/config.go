package models

// AlertsConfig holds alerting thresholds read from the global config.
// Zero values mean "use the built-in default".
type AlertsConfig struct {
	HighPriorityShare float64 `yaml:"high_priority_share" mapstructure:"high_priority_share"`
	NegativeShare     float64 `yaml:"negative_share" mapstructure:"negative_share"`
	MaxDailyAnalyses  int     `yaml:"max_daily_analyses" mapstructure:"max_daily_analyses"`
	WindowHours       int     `yaml:"window_hours" mapstructure:"window_hours"`
}

// SlackConfig holds Slack webhook notification settings.
type SlackConfig struct {
	WebhookURL string `yaml:"webhook_url" mapstructure:"webhook_url"`
}

// NotificationConfig groups outbound notification settings.
type NotificationConfig struct {
	Enabled bool         `yaml:"enabled" mapstructure:"enabled"`
	Slack   SlackConfig  `yaml:"slack" mapstructure:"slack"`
	Alerts  AlertsConfig `yaml:"alerts" mapstructure:"alerts"`
}

// GlobalConfig holds system-wide settings read from .inboxpilot via Viper.
type GlobalConfig struct {
	DefaultTone      Tone               `yaml:"default_tone" mapstructure:"default_tone"`
	DefaultSignature string             `yaml:"default_signature" mapstructure:"default_signature"`
	DefaultPersona   string             `yaml:"default_persona" mapstructure:"default_persona"`
	Personas         []string           `yaml:"personas,omitempty" mapstructure:"personas"`
	Notifications    NotificationConfig `yaml:"notifications" mapstructure:"notifications"`
}
