package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Session  SessionConfig
	Reminder ReminderConfig
	Notifier NotifierConfig
	Audit    AuditConfig

	// Secrets are loaded from the environment only, never from the
	// config file.
	Secrets Secrets
}

type ServerConfig struct {
	Port           int `mapstructure:"port"`
	TimeoutSeconds int `mapstructure:"timeoutSeconds"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

type RedisConfig struct {
	URL          string `mapstructure:"url"`
	MaxRetries   int    `mapstructure:"max_retries"`
	PoolSize     int    `mapstructure:"pool_size"`
	MinIdleConns int    `mapstructure:"min_idle_conns"`
}

type SessionConfig struct {
	ExpiryHours int `mapstructure:"expiry_hours"`
}

// ReminderConfig tunes the reminder scheduler. WindowMinutes must stay
// slightly above the tick cadence so a delayed tick cannot drop a whole
// firing window.
type ReminderConfig struct {
	CronSpec        string `mapstructure:"cron_spec"`
	WindowMinutes   int    `mapstructure:"window_minutes"`
	MorningPingHour int    `mapstructure:"morning_ping_hour"`
	MorningPingMin  int    `mapstructure:"morning_ping_min"`
	SiteBaseURL     string `mapstructure:"site_base_url"`
}

type NotifierConfig struct {
	// Channel selects the push gateway: "line" or "email".
	Channel string `mapstructure:"channel"`

	ProfileCacheTTL     time.Duration `mapstructure:"profile_cache_ttl"`
	ProfileCacheCleanup time.Duration `mapstructure:"profile_cache_cleanup"`

	SMTP SMTPConfig `mapstructure:"smtp"`
}

type SMTPConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	From string `mapstructure:"from"`
	// Domain is appended to recipient IDs to form an address when the
	// email channel is selected.
	Domain string `mapstructure:"domain"`
}

type AuditConfig struct {
	RetentionDays   int           `mapstructure:"retention_days"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

type Secrets struct {
	LineChannelToken  string `envconfig:"LINE_CHANNEL_ACCESS_TOKEN"`
	LineChannelSecret string `envconfig:"LINE_CHANNEL_SECRET"`
	SitePasswordHash  string `envconfig:"SITE_PASSWORD_HASH"`
	SessionSecret     string `envconfig:"SESSION_SECRET"`
	SMTPUser          string `envconfig:"SMTP_USER"`
	SMTPPassword      string `envconfig:"SMTP_PASSWORD"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.timeoutSeconds", 30)
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("session.expiry_hours", 12)
	viper.SetDefault("reminder.cron_spec", "*/5 * * * *")
	viper.SetDefault("reminder.window_minutes", 6)
	viper.SetDefault("reminder.morning_ping_hour", 8)
	viper.SetDefault("reminder.morning_ping_min", 30)
	viper.SetDefault("notifier.channel", "line")
	viper.SetDefault("notifier.profile_cache_ttl", 15*time.Minute)
	viper.SetDefault("notifier.profile_cache_cleanup", time.Hour)
	viper.SetDefault("audit.retention_days", 365)
	viper.SetDefault("audit.cleanup_interval", 24*time.Hour)

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := envconfig.Process("", &config.Secrets); err != nil {
		return nil, fmt.Errorf("failed to load secrets from environment: %w", err)
	}

	return &config, nil
}

// ToBrokerConfig maps the redis section onto the broker settings.
func (c *Config) ToBrokerConfig() BrokerSettings {
	return BrokerSettings{
		URL:          c.Redis.URL,
		MaxRetries:   c.Redis.MaxRetries,
		PoolSize:     c.Redis.PoolSize,
		MinIdleConns: c.Redis.MinIdleConns,
	}
}

type BrokerSettings struct {
	URL          string
	MaxRetries   int
	PoolSize     int
	MinIdleConns int
}
