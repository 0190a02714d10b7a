package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"

	"github.com/Chekke24/challenger-premios-backend/internal/config"
	"github.com/Chekke24/challenger-premios-backend/internal/database"
	"github.com/Chekke24/challenger-premios-backend/internal/domain/banner"
	"github.com/Chekke24/challenger-premios-backend/internal/domain/publication"
	"github.com/Chekke24/challenger-premios-backend/internal/filestore"
	"github.com/Chekke24/challenger-premios-backend/internal/logger"
	"github.com/Chekke24/challenger-premios-backend/internal/metrics"
	"github.com/Chekke24/challenger-premios-backend/internal/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		stop()
		log.Fatal().Err(err).Msg("server exited")
	}
}

// run returns instead of exiting so its deferred cleanup always runs.
func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger.Setup(cfg.LogLevel, !cfg.IsProduction())
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Error().Err(err).Msg("failed to close database")
		}
	}()

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	files, err := filestore.Open(ctx, cfg.FileStore)
	if err != nil {
		return fmt.Errorf("open %s file store: %w", cfg.FileStore.Driver, err)
	}
	log.Info().Str("driver", cfg.FileStore.Driver).Msg("file store ready")

	opts := server.Options{
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		MultipartMemory:    cfg.MultipartMemory,
	}
	if local, ok := files.(*filestore.Local); ok {
		opts.StaticPrefix = local.URLPrefix()
		opts.StaticDir = local.Dir()
	}
	if cfg.MetricsEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		m, err := metrics.New(reg)
		if err != nil {
			return fmt.Errorf("register metrics: %w", err)
		}
		opts.Metrics = m
		opts.Gatherer = reg
		files = filestore.Observe(files, m)
	}

	publicationService := publication.NewService(publication.NewRepository(db), files)
	publicationHandler := publication.NewHandler(publicationService)

	bannerService := banner.NewService(banner.NewRepository(db), files)
	bannerHandler := banner.NewHandler(bannerService)

	r := server.NewRouter(opts, publicationHandler, bannerHandler)

	return server.Run(ctx, cfg.Addr(), r, cfg.ShutdownTimeout)
}
