package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// TelegramConfig holds Telegram bot settings.
type TelegramConfig struct {
	Token       string `yaml:"token" envconfig:"BOT_TOKEN"`
	BotUsername string `yaml:"bot_username" envconfig:"BOT_USERNAME"`
	// CreatorID is the Telegram user allowed to run admin commands.
	CreatorID int64  `yaml:"creator_id" envconfig:"TELEGRAM_CREATOR_ID"`
	RunMode   string `yaml:"run_mode" envconfig:"TELEGRAM_RUN_MODE"`
	// LongPollTimeoutSeconds defines long polling timeout; 0 -> default
	LongPollTimeoutSeconds int `yaml:"longpoll_timeout_seconds" envconfig:"TELEGRAM_LONGPOLL_TIMEOUT_SECONDS"`
	// CredentialsFile points to a three-line file: bot username, token, creator id.
	// Values from it only fill fields left empty by YAML and env.
	CredentialsFile string `yaml:"credentials_file" envconfig:"TELEGRAM_CREDENTIALS_FILE"`
}

// WebhookConfig specifies webhook settings.
type WebhookConfig struct {
	URL    string `yaml:"url" envconfig:"WEBHOOK_URL"`
	Listen string `yaml:"listen" envconfig:"WEBHOOK_LISTEN"`
	Port   int    `yaml:"port" envconfig:"WEBHOOK_PORT"`
}

// LoggingConfig defines logging related configuration.
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LOG_LEVEL"`
	Format      string `yaml:"format" envconfig:"LOG_FORMAT"`
	KeysOrder   string `yaml:"keys_order"`
	DebugSample string `yaml:"debug_sample"`
	Dir         string `yaml:"dir"`
	BotFile     string `yaml:"bot_file"`
	// Profile indicates environment profile such as "debug" or "prod".
	Profile string `yaml:"profile" envconfig:"LOG_PROFILE"`
}

const (
	// RunModeWebhook selects webhook mode for Telegram updates.
	RunModeWebhook = "webhook"
	// RunModeLongpoll selects long-polling mode for Telegram updates.
	RunModeLongpoll = "longpoll"
)

// Config aggregates the configuration that belongs to the reusable core.
type Config struct {
	Telegram TelegramConfig `yaml:"telegram"`
	Webhook  WebhookConfig  `yaml:"webhook"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// Load reads configuration from a YAML file and environment variables.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := LoadInto(path, &cfg); err != nil {
		return nil, err
	}
	if err := Normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadInto decodes the YAML file at path into dst and overlays environment variables.
// dst may be any struct embedding Config under the "telegram"/"webhook"/"logging" keys.
func LoadInto(path string, dst any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", dst); err != nil {
		return fmt.Errorf("failed to process env: %w", err)
	}
	return nil
}

// Normalize applies the credentials file, validates required fields and
// canonicalizes the run mode. It is idempotent.
func Normalize(cfg *Config) error {
	if cfg == nil {
		return errors.New("nil config")
	}
	tg := &cfg.Telegram

	if path := strings.TrimSpace(tg.CredentialsFile); path != "" {
		creds, err := ReadCredentials(path)
		if err != nil {
			return err
		}
		creds.Apply(tg)
	}
	switch {
	case tg.Token == "":
		return errors.New("telegram token is required")
	case tg.CreatorID < 0:
		return errors.New("telegram.creator_id must be >= 0")
	}

	mode, err := canonicalRunMode(tg.RunMode)
	if err != nil {
		return err
	}
	if mode == RunModeWebhook {
		err = cfg.Webhook.validate()
	} else if tg.LongPollTimeoutSeconds < 0 {
		err = errors.New("telegram.longpoll_timeout_seconds must be >= 0")
	}
	if err != nil {
		return err
	}
	tg.RunMode = mode
	return nil
}

// canonicalRunMode maps raw onto a RunMode constant. Empty and "polling" mean longpoll.
func canonicalRunMode(raw string) (string, error) {
	switch mode := strings.ToLower(strings.TrimSpace(raw)); mode {
	case "", "polling", RunModeLongpoll:
		return RunModeLongpoll, nil
	case RunModeWebhook:
		return RunModeWebhook, nil
	default:
		return "", fmt.Errorf("invalid telegram.run_mode %q; allowed: webhook, longpoll", raw)
	}
}

func (w WebhookConfig) validate() error {
	const suffix = " when telegram.run_mode is 'webhook'"
	switch {
	case strings.TrimSpace(w.URL) == "":
		return errors.New("webhook.url is required" + suffix)
	case strings.TrimSpace(w.Listen) == "":
		return errors.New("webhook.listen is required" + suffix)
	case w.Port <= 0:
		return errors.New("webhook.port must be > 0" + suffix)
	}
	return nil
}
