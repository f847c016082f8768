package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"amr-data/internal/config"
	"amr-data/internal/database"
	httpapi "amr-data/internal/http"
	"amr-data/internal/logger"
	"amr-data/internal/repository"
	"amr-data/internal/service"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "amr-data")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// Storage backend selection is explicit: Postgres when enabled and
	// reachable, otherwise the in-memory store so the dashboard still
	// works with plain `go run`.
	var db *sql.DB
	if cfg.DBEnabled {
		if d, err := database.NewPostgresDB(&cfg.Database); err == nil {
			db = d
			log.Info("DB enabled for amr-data")
		} else {
			log.Warn("DB enabled but connection failed, falling back to memory store", zap.Error(err))
		}
	}

	var (
		observations repository.ObservationsRepository
		bacteria     repository.BacteriaRepository
		antibiotics  repository.AntibioticsRepository
		regions      repository.RegionsRepository
		facilities   repository.FacilitiesRepository
		alerts       repository.AlertsRepository
		resources    repository.ResourcesRepository
	)
	if db != nil {
		catalogs := repository.NewPostgresCatalogsRepository(db)
		content := repository.NewPostgresContentRepository(db)
		observations = repository.NewPostgresObservationsRepository(db)
		bacteria, antibiotics, regions, facilities = catalogs, catalogs, catalogs, catalogs
		alerts, resources = content, content
	} else {
		mem := repository.NewMemoryStore()
		if cfg.SeedDemoData {
			repository.SeedDemoData(mem)
			log.Info("seeded demo data into memory store")
		}
		observations = mem
		bacteria, antibiotics, regions, facilities = mem, mem, mem, mem
		alerts, resources = mem, mem
	}

	dashboard := service.NewDashboardService(observations, bacteria, antibiotics, regions, log)

	glassEnabled := cfg.Glass.Enabled && cfg.Glass.BaseURL != ""
	var observationSvc service.ObservationService
	if glassEnabled {
		glass := service.NewGlassClient(cfg.Glass.BaseURL, cfg.Glass.APIKey, log)
		observationSvc = service.NewObservationService(observations, glass, log)
	} else {
		observationSvc = service.NewObservationService(observations, nil, log)
	}

	router := httpapi.NewRouter(log)
	router.RegisterDashboardRoutes(httpapi.NewDashboardHandler(dashboard, log))
	router.RegisterCatalogRoutes(httpapi.NewCatalogHandler(bacteria, antibiotics, regions, facilities, log))
	router.RegisterObservationRoutes(httpapi.NewObservationHandler(observationSvc, log))
	router.RegisterContentRoutes(httpapi.NewContentHandler(alerts, resources, log))

	srv := service.NewServer(cfg.HTTP.Addr, router, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if glassEnabled {
		go runFeedSync(ctx, observationSvc, cfg.Glass.SyncDays, log)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
		cancel()
	case <-errCh:
		cancel()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Stop(shutdownCtx)
	if db != nil {
		_ = db.Close()
	}
}

// runFeedSync pulls the external surveillance feed once at startup and
// then daily, until the context is cancelled.
func runFeedSync(ctx context.Context, observations service.ObservationService, syncDays int, log *zap.Logger) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		since := time.Now().UTC().AddDate(0, 0, -syncDays)
		if n, err := observations.SyncFeed(ctx, since); err != nil {
			log.Warn("surveillance feed sync failed", zap.Error(err))
		} else {
			log.Info("surveillance feed sync complete", zap.Int("records", n))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
