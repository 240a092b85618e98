package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		t.Setenv("SPENDWISE_DB_PATH", "")
		t.Setenv("LISTEN_ADDR", "")
		t.Setenv("REMOTE_STORE_URL", "")
		t.Setenv("REMOTE_STORE_TOKEN", "")
		t.Setenv("TELEGRAM_CHAT_ID", "")

		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, DefaultDBPath, cfg.DBPath)
		require.Equal(t, DefaultListenAddr, cfg.ListenAddr)
	})

	t.Run("loads all config from env", func(t *testing.T) {
		t.Setenv("SPENDWISE_DB_PATH", "/tmp/spend.db")
		t.Setenv("REMOTE_STORE_URL", "https://kv.example.com")
		t.Setenv("REMOTE_STORE_TOKEN", "secret-token")
		t.Setenv("LISTEN_ADDR", ":9090")
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("TELEGRAM_BOT_TOKEN", "bot-token")
		t.Setenv("TELEGRAM_CHAT_ID", "12345")

		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, "/tmp/spend.db", cfg.DBPath)
		require.Equal(t, "https://kv.example.com", cfg.RemoteStoreURL)
		require.Equal(t, "secret-token", cfg.RemoteStoreToken)
		require.Equal(t, ":9090", cfg.ListenAddr)
		require.Equal(t, "debug", cfg.LogLevel)
		require.Equal(t, int64(12345), cfg.TelegramChatID)
	})

	t.Run("rejects malformed remote URL", func(t *testing.T) {
		t.Setenv("REMOTE_STORE_URL", "not a url")
		t.Setenv("REMOTE_STORE_TOKEN", "token")

		_, err := Load()
		require.Error(t, err)
	})

	t.Run("rejects malformed chat ID", func(t *testing.T) {
		t.Setenv("REMOTE_STORE_URL", "")
		t.Setenv("REMOTE_STORE_TOKEN", "")
		t.Setenv("TELEGRAM_CHAT_ID", "abc")

		_, err := Load()
		require.Error(t, err)
	})
}

func TestRemoteConfigured(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		url   string
		token string
		want  bool
	}{
		{"both set", "https://kv.example.com", "token", true},
		{"url only", "https://kv.example.com", "", false},
		{"token only", "", "token", false},
		{"neither", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := &Config{RemoteStoreURL: tt.url, RemoteStoreToken: tt.token}
			require.Equal(t, tt.want, cfg.RemoteConfigured())
		})
	}
}

func TestTelegramConfigured(t *testing.T) {
	t.Parallel()

	require.True(t, (&Config{TelegramBotToken: "tok", TelegramChatID: 1}).TelegramConfigured())
	require.False(t, (&Config{TelegramBotToken: "tok"}).TelegramConfigured())
	require.False(t, (&Config{TelegramChatID: 1}).TelegramConfigured())
}
