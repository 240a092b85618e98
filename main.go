// Package main is the entry point for the spendwise expense tracker server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"spendwise/internal/api"
	"spendwise/internal/config"
	"spendwise/internal/ledger"
	"spendwise/internal/logger"
	"spendwise/internal/notify"
	"spendwise/internal/persist"
	"spendwise/internal/settings"
	"spendwise/internal/store"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("spendwise %s (commit: %s, built: %s)\n", version, commit, date)
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to load config")
	}

	logger.SetLevel(cfg.LogLevel)

	local, err := store.OpenLocal(cfg.DBPath)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to open local store")
	}
	defer local.Close()

	var read, write store.Store = local, local
	if cfg.RemoteConfigured() {
		remote := store.NewRemote(cfg.RemoteStoreURL, cfg.RemoteStoreToken, store.DefaultRemoteTimeout)
		read = store.NewFallback(remote, local)
		write = store.NewMirror(remote, local)
		logger.Log.Info().Str("url", cfg.RemoteStoreURL).Msg("Remote store enabled")
	} else {
		logger.Log.Info().Msg("Remote store not configured, running local-only")
	}

	facade := persist.New(read, write)

	// Both loads complete before anything can mutate or serve state.
	loadedSettings := facade.LoadSettings(ctx)
	loadedExpenses := facade.LoadExpenses(ctx)
	logger.Log.Info().Int("expenses", len(loadedExpenses)).Msg("State loaded")

	led := ledger.New(loadedExpenses, facade)
	settingsStore := settings.New(loadedSettings, facade, led)

	if cfg.TelegramConfigured() {
		notifier, err := notify.NewTelegram(cfg.TelegramBotToken, cfg.TelegramChatID)
		if err != nil {
			logger.Log.Fatal().Err(err).Msg("Failed to create Telegram notifier")
		}
		go notify.NewReminder(settingsStore, led, notifier).Run(ctx)
	} else {
		logger.Log.Info().Msg("Telegram not configured, reminders disabled")
	}

	server := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: api.New(led, settingsStore).Handler(),
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		logger.Log.Info().Msg("Shutting down...")
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Log.Warn().Err(err).Msg("Server shutdown error")
		}
	}()

	logger.Log.Info().Str("addr", cfg.ListenAddr).Msg("Listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Log.Fatal().Err(err).Msg("Server failed")
	}

	// Drain scheduled flushes so the last mutations reach storage.
	led.Wait()
	settingsStore.Wait()
	logger.Log.Info().Msg("Shutdown complete")
}
