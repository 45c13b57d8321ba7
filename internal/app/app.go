package app

import (
	"context"
	"log/slog"
	"time"

	mt "mite-scraper/internal/adapter/mite"
	msql "mite-scraper/internal/adapter/mysql"
	"mite-scraper/internal/config"
	"mite-scraper/internal/migrate"
	"mite-scraper/internal/usecase"
)

// App wires adapters and use cases.
type App struct {
	log *slog.Logger
	uc  *usecase.SyncUseCase
}

func New(log *slog.Logger, cfg config.Config) (*App, error) {
	tracker := mt.NewTracker(cfg.Mite.BaseURL, cfg.Mite.Account, cfg.Mite.APIKey, cfg.Mite.UserAgent, log)
	// Run migrations before opening the sink for use
	if err := migrate.Run(context.Background(), cfg.MySQL.DSN, log); err != nil {
		return nil, err
	}
	sink, err := msql.NewClient(context.Background(), cfg.MySQL.DSN, log)
	if err != nil {
		return nil, err
	}

	uc := &usecase.SyncUseCase{
		Log:     log,
		Tracker: tracker,
		Sink:    sink,
	}

	return &App{log: log, uc: uc}, nil
}

func (a *App) RunOnce(ctx context.Context, from, to time.Time) error {
	return a.uc.Run(ctx, from, to)
}
