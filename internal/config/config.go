package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.yaml.in/yaml/v4"
)

const defaultConfigPath = "config.yaml"

type Config struct {
	DBPath     string      `yaml:"db_path"`
	ListenAddr string      `yaml:"listen_addr"`
	APIBaseURL string      `yaml:"api_base_url"`
	AuthToken  string      `yaml:"auth_token"`
	LogLevel   string      `yaml:"log_level"`
	LogFormat  string      `yaml:"log_format"`
	Nudge      NudgeConfig `yaml:"nudge"`
}

type NudgeConfig struct {
	ResendAPIKey string `yaml:"resend_api_key"`
	NotifyEmail  string `yaml:"notify_email"`
	From         string `yaml:"from"`
}

func defaults() Config {
	return Config{
		DBPath:     "habits.db",
		ListenAddr: ":8080",
		APIBaseURL: "http://localhost:8080",
		LogLevel:   "info",
		LogFormat:  "text",
		Nudge: NudgeConfig{
			From: "onboarding@resend.dev",
		},
	}
}

// Load reads the YAML file named by HABITS_CONFIG (default config.yaml) over
// the defaults, then applies HABITS_* environment overrides. A .env file in
// the working directory is loaded first if present. A missing default config
// file is fine; a missing explicitly named one is an error.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := defaults()

	path := os.Getenv("HABITS_CONFIG")
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath
	}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist) && !explicit:
	case err != nil:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	override(&cfg.DBPath, "HABITS_DB_PATH")
	override(&cfg.ListenAddr, "HABITS_LISTEN_ADDR")
	override(&cfg.APIBaseURL, "HABITS_API_BASE")
	override(&cfg.AuthToken, "HABITS_AUTH_TOKEN")
	override(&cfg.LogLevel, "HABITS_LOG_LEVEL")
	override(&cfg.LogFormat, "HABITS_LOG_FORMAT")
	override(&cfg.Nudge.ResendAPIKey, "HABITS_RESEND_API_KEY")
	override(&cfg.Nudge.NotifyEmail, "HABITS_NOTIFY_EMAIL")
	override(&cfg.Nudge.From, "HABITS_NOTIFY_FROM")

	return &cfg, nil
}

func override(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
