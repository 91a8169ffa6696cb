// Package app wires configuration, logging, storage and the background
// services into one application object.
package app

import (
	"context"
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/kysrn-ww/mathi-phone/config"
	"github.com/kysrn-ww/mathi-phone/internal/catalog"
	"github.com/kysrn-ww/mathi-phone/internal/exchange"
	"github.com/kysrn-ww/mathi-phone/internal/store"
)

type Application struct {
	appConfig *config.AppConfig
	store     store.Store
	catalog   *catalog.Service
	refresher *exchange.Refresher
	sched     *cron.Cron
}

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig {
	return a.appConfig
}

func (a *Application) Store() store.Store {
	return a.store
}

func (a *Application) Catalog() *catalog.Service {
	return a.catalog
}

// OverrideStore replaces the application's store (used in tests).
func (a *Application) OverrideStore(st store.Store) {
	a.store = st
	a.catalog = catalog.NewService(st)
}

// Init sets up the timezone, logger, store backend and scheduled jobs.
func (a *Application) Init() error {
	cfg := a.appConfig

	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	a.initLogger()

	switch cfg.Database.Type {
	case "", "memory":
		a.store = store.NewMemory()
		zap.S().Info("using in-memory store")
	case "postgres":
		gs, err := store.OpenPostgres(cfg.Database.DSN(), cfg.System.Debug)
		if err != nil {
			return fmt.Errorf("init store: %w", err)
		}
		if err := gs.Migrate(); err != nil {
			return fmt.Errorf("migrate schema: %w", err)
		}
		a.store = gs
		zap.S().Infof("database connection successful, type: %s", cfg.Database.Type)
	default:
		return fmt.Errorf("unknown database type %q", cfg.Database.Type)
	}

	a.catalog = catalog.NewService(a.store)
	a.refresher = exchange.NewRefresher(
		a.store,
		exchange.NewClient(cfg.Rates.CryptoURL, cfg.Rates.ForexURL, cfg.Rates.Timeout()),
		cfg.Rates.Interval(),
	)

	if cfg.System.SeedData {
		a.checkSeedProducts()
	}

	a.initJob()
	return nil
}

func (a *Application) initLogger() {
	cfg := a.appConfig

	var zapConfig zap.Config
	if cfg.Logger.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	var logger *zap.Logger
	if cfg.Logger.FileEnable {
		lumberJackLogger := &lumberjack.Logger{
			Filename:   cfg.Logger.Filename,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
			Compress:   false,
		}

		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(lumberJackLogger),
				zapConfig.Level,
			),
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				zapConfig.Level,
			),
		)
		logger = zap.New(core, zap.AddCaller())
	} else {
		var err error
		logger, err = zapConfig.Build(zap.AddCaller())
		if err != nil {
			panic(err)
		}
	}

	zap.ReplaceGlobals(logger)
}

// StartBackgroundJobs launches the exchange rate refresher. It stops
// when ctx is cancelled, at the next cycle boundary.
func (a *Application) StartBackgroundJobs(ctx context.Context) {
	go a.refresher.Run(ctx)
}

func (a *Application) initJob() {
	a.sched = cron.New()

	_, err := a.sched.AddFunc("@daily", func() {
		purged, err := a.store.PurgeStatusChecks(context.Background(), time.Now().AddDate(0, 0, -90))
		if err != nil {
			zap.L().Error("status check purge failed", zap.Error(err))
			return
		}
		if purged > 0 {
			zap.L().Info("purged old status checks", zap.Int64("count", purged))
		}
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	a.sched.Start()
}

// Release stops the scheduler and flushes resources.
func (a *Application) Release() {
	if a.sched != nil {
		a.sched.Stop()
	}
	if a.store != nil {
		_ = a.store.Close()
	}
	_ = zap.L().Sync()
}
