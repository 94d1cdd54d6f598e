package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/devxpy/gea-telegram-bot/internal/app"
	"github.com/devxpy/gea-telegram-bot/internal/config"
	"github.com/devxpy/gea-telegram-bot/internal/controller"
	"github.com/devxpy/gea-telegram-bot/internal/geocode"
	"github.com/devxpy/gea-telegram-bot/internal/repository"
	"github.com/devxpy/gea-telegram-bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Sugar().Infow("Starting appliance repair bot",
		"environment", cfg.Environment,
		"phone_region", cfg.PhoneRegion)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// База данных
	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create database pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to ping database", zap.Error(err))
	}

	// Миграции
	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	if err := migrator.Close(); err != nil {
		logger.Warn("Failed to close migrator", zap.Error(err))
	}

	// Репозитории
	userRepo := repository.NewUserRepository(pool)
	applianceRepo := repository.NewApplianceRepository(pool)
	pinCodeRepo := repository.NewPinCodeRepository(pool)
	appointmentRepo := repository.NewAppointmentRepository(pool)

	// Сервисы
	userService := service.NewUserService(userRepo, cfg.PhoneRegion, logger)
	bookingService := service.NewBookingService(applianceRepo, pinCodeRepo, appointmentRepo, logger)

	geocoder, err := geocode.NewGoogle(cfg.GoogleMapsKey, logger)
	if err != nil {
		logger.Fatal("Failed to create geocoding client", zap.Error(err))
	}

	// Обработчики
	cmdHandlers, callbackHandler := controller.NewDialogHandlers(userService, bookingService, geocoder, logger)

	botInstance, err := bot.New(cfg.TelegramToken,
		bot.WithDefaultHandler(cmdHandlers.HandleDefault),
		bot.WithMiddlewares(cmdHandlers.Recover),
	)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	botController := controller.NewBotController(botInstance, cmdHandlers, callbackHandler, logger)

	if err := botController.RegisterHandlers(ctx); err != nil {
		logger.Fatal("Failed to register handlers", zap.Error(err))
	}

	if err := botController.Start(ctx); err != nil {
		logger.Fatal("Bot stopped with error", zap.Error(err))
	}

	logger.Info("Bot stopped")
}
