package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadDefaultsToLongpoll(t *testing.T) {
	path := writeFile(t, "config.yaml", "telegram:\n  token: \"123:abc\"\n  run_mode: polling\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Telegram.RunMode != RunModeLongpoll {
		t.Fatalf("run mode = %q, want %q", cfg.Telegram.RunMode, RunModeLongpoll)
	}
}

func TestLoadEnvOverridesYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", "telegram:\n  token: \"from-yaml\"\n")
	t.Setenv("BOT_TOKEN", "from-env")
	t.Setenv("TELEGRAM_CREATOR_ID", "77")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Telegram.Token != "from-env" {
		t.Fatalf("token = %q, want from-env", cfg.Telegram.Token)
	}
	if cfg.Telegram.CreatorID != 77 {
		t.Fatalf("creator = %d, want 77", cfg.Telegram.CreatorID)
	}
}

func TestNormalizeRequiresToken(t *testing.T) {
	err := Normalize(&Config{})
	if err == nil || !strings.Contains(err.Error(), "token") {
		t.Fatalf("expected token error, got %v", err)
	}
}

func TestNormalizeWebhookRequiresURL(t *testing.T) {
	cfg := &Config{Telegram: TelegramConfig{Token: "t", RunMode: "webhook"}}
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected webhook validation error")
	}
	cfg.Webhook = WebhookConfig{URL: "https://example.org/hook", Listen: "0.0.0.0", Port: 8443}
	if err := Normalize(cfg); err != nil {
		t.Fatalf("normalize: %v", err)
	}
}

func TestNormalizeRejectsUnknownRunMode(t *testing.T) {
	cfg := &Config{Telegram: TelegramConfig{Token: "t", RunMode: "carrier-pigeon"}}
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected run mode error")
	}
}

func TestCredentialsFileFillsEmptyFields(t *testing.T) {
	creds := writeFile(t, "Configuration", "interview_bot\n123:secret\n4242\n")
	cfg := &Config{Telegram: TelegramConfig{CredentialsFile: creds, BotUsername: "override_bot"}}

	if err := Normalize(cfg); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.Telegram.Token != "123:secret" {
		t.Fatalf("token = %q", cfg.Telegram.Token)
	}
	if cfg.Telegram.CreatorID != 4242 {
		t.Fatalf("creator = %d", cfg.Telegram.CreatorID)
	}
	if cfg.Telegram.BotUsername != "override_bot" {
		t.Fatalf("username = %q, want explicit value kept", cfg.Telegram.BotUsername)
	}
}

func TestReadCredentialsErrors(t *testing.T) {
	short := writeFile(t, "short", "bot\ntoken\n")
	if _, err := ReadCredentials(short); err == nil {
		t.Fatal("expected error for short file")
	}
	badID := writeFile(t, "bad", "bot\ntoken\nnot-a-number\n")
	if _, err := ReadCredentials(badID); err == nil {
		t.Fatal("expected error for invalid creator id")
	}
}
