package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/khushiprajapath451-lab/Medwiseai/internal/config"
	"github.com/khushiprajapath451-lab/Medwiseai/internal/gateway/handler"
	"github.com/khushiprajapath451-lab/Medwiseai/internal/gateway/server"
	"github.com/khushiprajapath451-lab/Medwiseai/internal/session"
)

type App struct {
	server   *server.Server
	pipeline *Pipeline
}

func New(ctx context.Context, cfg *config.Config, logger *zap.Logger, backend *Backend) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	pipeline, err := NewPipeline(ctx, cfg, logger, backend)
	if err != nil {
		return nil, err
	}
	sessions, err := session.NewStore(cfg.SessionCapacity)
	if err != nil {
		_ = pipeline.Close()
		return nil, fmt.Errorf("failed to create session store: %w", err)
	}
	reports, err := initReportStore(cfg, logger)
	if err != nil {
		_ = pipeline.Close()
		return nil, err
	}

	svc := handler.NewService(handler.Deps{
		Analyzer: pipeline.Analyzer,
		Resolver: pipeline.Resolver,
		Sessions: sessions,
		Reports:  reports,
		Logger:   logger,
	})
	srv := server.New(cfg.Port, server.NewRouter(svc, logger), logger)
	return &App{server: srv, pipeline: pipeline}, nil
}

func (a *App) Start() error {
	return a.server.Start()
}

func (a *App) Shutdown(ctx context.Context) error {
	return errors.Join(a.server.Shutdown(ctx), a.pipeline.Close())
}
