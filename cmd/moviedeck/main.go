package main

import (
	"context"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"moviedeck/internal/app"
	"moviedeck/internal/catalog"
	"moviedeck/internal/engage"
	"moviedeck/internal/profile"
	"moviedeck/internal/telemetry"
	"moviedeck/internal/ui"
)

func main() {
	cfg, err := app.LoadConfig()
	if err != nil {
		log.Fatal("invalid configuration", "err", err)
	}

	logger, err := telemetry.NewJSONLogger(cfg.LogPath)
	if err != nil {
		log.Fatal("open log file", "path", cfg.LogPath, "err", err)
	}
	defer func() { _ = logger.Close() }()

	store, err := profile.NewStore(filepath.Join(cfg.DataDir, "moviedeck.db"))
	if err != nil {
		log.Fatal("open local store", "dir", cfg.DataDir, "err", err)
	}
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	if err := store.EnsureSchema(ctx); err != nil {
		log.Fatal("prepare local store", "err", err)
	}

	var transport engage.Transport = engage.NopTransport{}
	if cfg.EngageConfigured() {
		transport = engage.NewHTTPTransport(cfg.EngageEndpoint, cfg.EngageAccountID, cfg.EngagePasscode)
	}
	bridge := engage.NewBridge(transport, logger, cfg.OptInPush, cfg.OptInEmail)

	client := catalog.NewClient(cfg.TMDBBaseURL, cfg.TMDBAPIKey)

	ctrl := app.New(cfg, store, client, bridge, logger)
	if err := ctrl.Resume(ctx); err != nil {
		log.Fatal("restore session", "err", err)
	}

	program := tea.NewProgram(ui.NewModel(ctrl, client), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		log.Fatal("terminal ui", "err", err)
	}
}
