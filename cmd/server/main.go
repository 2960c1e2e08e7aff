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

	"github.com/mamadbah2/livestock/internal/config"
	"github.com/mamadbah2/livestock/internal/repository/mongodb"
	"github.com/mamadbah2/livestock/internal/repository/sheets"
	"github.com/mamadbah2/livestock/internal/scheduler"
	"github.com/mamadbah2/livestock/internal/server/router"
	emailclient "github.com/mamadbah2/livestock/pkg/clients/email"
	whatsappclient "github.com/mamadbah2/livestock/pkg/clients/whatsapp"
	"github.com/mamadbah2/livestock/pkg/logger"
)

var _ router.Store = (*mongodb.MongoDBRepository)(nil)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName, baseLogger.Named("repo.mongodb"))
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := mongoRepo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	var sheet sheets.Repository
	if cfg.Sheets.Enabled() {
		sheetsRepo, err := sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		sheet = sheetsRepo
	} else {
		baseLogger.Warn("google sheets credentials missing, report export disabled")
	}

	services, err := router.NewServices(router.Deps{
		Config:   cfg,
		Store:    mongoRepo,
		Email:    emailclient.NewClient(cfg.Email),
		WhatsApp: whatsappclient.NewClient(cfg.WhatsApp),
		Sheet:    sheet,
		Logger:   baseLogger,
	})
	if err != nil {
		baseLogger.Fatal("failed to wire services", zap.Error(err))
	}
	engine := router.New(router.NewHandlers(services, baseLogger), baseLogger.Named("router"))

	sched, err := scheduler.NewScheduler(cfg.Notifications, services.Notifications, baseLogger.Named("scheduler"))
	if err != nil {
		baseLogger.Fatal("failed to init scheduler", zap.Error(err))
	}
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to schedule daily summary", zap.Error(err))
	}
	defer sched.Stop()

	handler := router.WithWriteTimeouts(engine, map[string]time.Duration{
		router.DailyNotificationsPath: scheduler.RunTimeout + 30*time.Second,
	}, baseLogger.Named("router"))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
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
