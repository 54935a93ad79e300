package app

import (
	"context"
	"time"

	"github.com/maksym-ppt/skins-price-alert/internal/config"
	"github.com/maksym-ppt/skins-price-alert/internal/delivery/httpapi"
	"github.com/maksym-ppt/skins-price-alert/internal/delivery/telegram"
	"github.com/maksym-ppt/skins-price-alert/internal/infra/db"
	"github.com/maksym-ppt/skins-price-alert/internal/infra/log"
	"github.com/maksym-ppt/skins-price-alert/internal/infra/steam"
	"github.com/maksym-ppt/skins-price-alert/internal/usecase"
	"go.uber.org/zap"
)

type App struct {
	bot       *telegram.Bot
	server    *httpapi.Server
	logger    *zap.Logger
	cleanupFn func() error
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	logger, err := log.NewLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	dbConn, err := db.Open(cfg, logger)
	if err != nil {
		return nil, err
	}

	userRepo := db.NewUserRepository(dbConn)
	alertRepo := db.NewAlertRepository(dbConn)
	priceRepo := db.NewPriceCacheRepository(dbConn)
	catalogRepo := db.NewCatalogRepository(dbConn)
	steamClient := steam.NewClient(cfg.SteamBaseURL, cfg.SteamTimeout, logger)

	userUC := usecase.NewUserUsecase(userRepo)
	alertUC := usecase.NewAlertUsecase(userRepo, alertRepo)
	priceUC := usecase.NewPriceUsecase(priceRepo, steamClient, cfg.SteamAppID, logger)
	searchUC := usecase.NewSearchUsecase(catalogRepo)

	api, err := telegram.NewAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, err
	}

	notifier := telegram.NewNotifier(api, logger)
	sweeper := usecase.NewSweepUsecase(userRepo, alertRepo, priceUC, alertUC, notifier, cfg.SweepDelay, logger)
	handlers := telegram.NewHandlers(userUC, alertUC, priceUC, searchUC, logger)
	bot := telegram.NewBot(api, handlers, cfg.TelegramPollTimeout)
	server := httpapi.NewServer(cfg.HTTPAddr, cfg.CronSecret, sweeper, logger)

	cleanup := func() error {
		sqlDB, err := dbConn.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return &App{bot: bot, server: server, logger: logger, cleanupFn: cleanup}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.logger.Info("skins price alert service starting")

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- err
		}
	}()

	a.logger.Info("skins price alert service started")
	botErr := a.bot.Start(ctx)

	select {
	case err := <-errCh:
		return err
	default:
	}
	return botErr
}

func (a *App) Shutdown() {
	a.logger.Info("skins price alert service shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.Warn("failed to stop http server", zap.Error(err))
	}

	if a.cleanupFn != nil {
		if err := a.cleanupFn(); err != nil {
			a.logger.Warn("failed to close database", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}
