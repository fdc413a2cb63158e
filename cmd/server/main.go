package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/ecolog/internal/config"
	"github.com/mamadbah2/ecolog/internal/repository/mongodb"
	"github.com/mamadbah2/ecolog/internal/repository/sheets"
	"github.com/mamadbah2/ecolog/internal/scheduler"
	"github.com/mamadbah2/ecolog/internal/server/handlers"
	"github.com/mamadbah2/ecolog/internal/server/router"
	dashboardsvc "github.com/mamadbah2/ecolog/internal/service/dashboard"
	"github.com/mamadbah2/ecolog/internal/service/logform"
	reportingsvc "github.com/mamadbah2/ecolog/internal/service/reporting"
	"github.com/mamadbah2/ecolog/pkg/clients/activities"
	whatsappclient "github.com/mamadbah2/ecolog/pkg/clients/whatsapp"
	"github.com/mamadbah2/ecolog/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	loc := cfg.Location()
	activityClient := activities.NewClient(cfg.Backend)
	baseLogger.Info("activities backend configured", zap.String("base_url", cfg.Backend.BaseURL))

	dashboardSvc := dashboardsvc.NewService(activityClient, loc, logger.Named(baseLogger, "svc.dashboard"))
	submitter := logform.NewSubmitter(activityClient, logger.Named(baseLogger, "svc.logform"))

	engine, err := router.New(router.Handlers{
		Dashboard: handlers.NewDashboardHandler(dashboardSvc, logger.Named(baseLogger, "handlers.dashboard")),
		Log:       handlers.NewLogHandler(submitter, loc, logger.Named(baseLogger, "handlers.log")),
		API:       handlers.NewAPIHandler(),
	}, logger.Named(baseLogger, "router"))
	if err != nil {
		baseLogger.Fatal("failed to build router", zap.Error(err))
	}

	// Weekly report sinks are optional; each one is wired only when configured.
	var sinks []reportingsvc.Sink

	if cfg.MongoDB.Enabled() {
		mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		sinks = append(sinks, mongoRepo)
	}

	if cfg.Sheets.Enabled() {
		sheetsRepo, err := sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, logger.Named(baseLogger, "repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		sinks = append(sinks, sheets.NewReportExporter(sheetsRepo, cfg.Sheets.ReportRange))
	}

	if cfg.WhatsApp.Enabled() {
		whatsClient := whatsappclient.NewClient(cfg.WhatsApp)
		sinks = append(sinks, whatsappclient.NewDigestSender(whatsClient, cfg.WhatsApp.DigestTo, reportingsvc.FormatDigest))
	}

	reportingSvc := reportingsvc.NewService(activityClient, sinks, logger.Named(baseLogger, "svc.reporting"))
	if reportingSvc.HasSinks() {
		sched := scheduler.NewScheduler(cfg.Reporting, loc, reportingSvc, logger.Named(baseLogger, "scheduler"))
		if err := sched.Start(); err != nil {
			baseLogger.Fatal("failed to start scheduler", zap.Error(err))
		}
		defer sched.Stop()
	} else {
		baseLogger.Warn("no report sinks configured, weekly report disabled")
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Backend.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
