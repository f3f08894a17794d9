package main

import (
	"context"
	"net/http"
	"time"

	"gift-server/internal/config"
	"gift-server/internal/infrastructure/crontab"
	"gift-server/internal/infrastructure/logger"
	"gift-server/internal/infrastructure/observability"
	"gift-server/internal/interfaces/httpserver"

	"golang.org/x/sync/errgroup"

	_ "net/http/pprof"
)

type Application struct {
	httpServer *httpserver.HTTPServer
	crontab    *crontab.Crontab
}

func init() {
	logger.GetLogger()
	config.Load()
}

// @title Gift Server API
// @version 1.0
// @description Gift recommendation service with catalog matching and asynchronous AI gift generation.
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func (application *Application) Start() {
	background := context.Background()
	ctx, cancel := context.WithCancel(background)
	defer cancel()

	var eg errgroup.Group
	eg.Go(func() error {
		err := http.ListenAndServe("0.0.0.0:6060", nil)
		if err != nil {
			cancel()
		}
		return err
	})
	eg.Go(func() error {
		err := application.crontab.Run(ctx)
		if err != nil {
			cancel()
		}
		return err
	})
	eg.Go(func() error {
		err := application.httpServer.Run()
		if err != nil {
			cancel()
		}
		return err
	})

	if err := eg.Wait(); err != nil {
		panic(err)
	}
}

func main() {
	ctx := context.Background()
	log := logger.GetLogger()

	cfg := config.GetGlobal()
	if cfg == nil {
		log.Fatal().Msg("config not loaded")
	}

	if configured, err := logger.New(cfg.LogLevel, cfg.LogFormat); err != nil {
		log.Warn().Err(err).Msg("invalid log configuration, keeping defaults")
	} else {
		log = configured
	}

	application, err := CreateApplication()
	if err != nil {
		log.Fatal().Err(err).Msg("create application")
	}

	dataInitializer, err := CreateDataInitializer()
	if err != nil {
		log.Fatal().Err(err).Msg("create data initializer")
	}

	otelShutdown, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("initialize observability")
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := otelShutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("shutdown telemetry")
			}
		}()
	}

	if err := dataInitializer.Install(ctx); err != nil {
		log.Fatal().Err(err).Msg("install data")
	}

	application.Start()
}
