// Package config provides application configuration loading from environment.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Defaults applied when the corresponding environment variable is unset.
const (
	DefaultDBPath     = "spendwise.db"
	DefaultListenAddr = ":8080"
)

// Config holds all configuration for the application.
type Config struct {
	DBPath           string
	RemoteStoreURL   string
	RemoteStoreToken string
	ListenAddr       string
	LogLevel         string
	TelegramBotToken string
	TelegramChatID   int64
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DBPath:           os.Getenv("SPENDWISE_DB_PATH"),
		RemoteStoreURL:   os.Getenv("REMOTE_STORE_URL"),
		RemoteStoreToken: os.Getenv("REMOTE_STORE_TOKEN"),
		ListenAddr:       os.Getenv("LISTEN_ADDR"),
		LogLevel:         os.Getenv("LOG_LEVEL"),
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
	}

	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDBPath
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = DefaultListenAddr
	}

	if chatIDStr := os.Getenv("TELEGRAM_CHAT_ID"); chatIDStr != "" {
		chatID, err := strconv.ParseInt(chatIDStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID %q: %w", chatIDStr, err)
		}
		cfg.TelegramChatID = chatID
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.RemoteStoreURL != "" {
		if _, err := url.ParseRequestURI(c.RemoteStoreURL); err != nil {
			return fmt.Errorf("invalid REMOTE_STORE_URL %q: %w", c.RemoteStoreURL, err)
		}
	}
	return nil
}

// RemoteConfigured reports whether the remote store should be used. It is a
// pure function of configuration presence: both the endpoint URL and the
// access token must be set, otherwise the application runs local-only.
func (c *Config) RemoteConfigured() bool {
	return c.RemoteStoreURL != "" && c.RemoteStoreToken != ""
}

// TelegramConfigured reports whether reminder notifications can be delivered.
func (c *Config) TelegramConfigured() bool {
	return c.TelegramBotToken != "" && c.TelegramChatID != 0
}
