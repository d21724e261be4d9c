package main

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	httpapi "github.com/sonnyweather/weather-dialog/internal/api/http"
	"github.com/sonnyweather/weather-dialog/internal/chatlog"
	"github.com/sonnyweather/weather-dialog/internal/config"
	"github.com/sonnyweather/weather-dialog/internal/locnorm"
	"github.com/sonnyweather/weather-dialog/internal/logging"
	"github.com/sonnyweather/weather-dialog/internal/scheduler"
	"github.com/sonnyweather/weather-dialog/internal/session"
	"github.com/sonnyweather/weather-dialog/internal/weather"
	"github.com/sonnyweather/weather-dialog/internal/wunderground"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("failed to load config", zap.Error(err))
	}

	logging.Init(cfg.Env)
	log := logging.L()
	defer log.Sync()

	var norm locnorm.Normalizer = locnorm.NewStatic()
	if cfg.GoogleAPIKey != "" {
		norm = locnorm.NewGeocoded(cfg.GoogleAPIKey, log)
	}

	provider := wunderground.NewClient(
		&http.Client{Timeout: cfg.HTTPTimeout},
		cfg.WeatherEndpoint,
		cfg.WeatherAPIKey,
	)

	service := weather.NewService(provider, norm, log)

	sessions := session.NewStore(cfg.SessionMaxAge)
	sweeper := scheduler.New(sessions, cfg.SweepInterval, log)
	if err := sweeper.Start(); err != nil {
		log.Fatal("failed to start session sweeper", zap.Error(err))
	}
	defer sweeper.Stop()

	var recorder chatlog.Recorder
	if cfg.ChatLogPath != "" {
		sqlRec, err := chatlog.NewSQLite(cfg.ChatLogPath)
		if err != nil {
			log.Fatal("failed to open chat log", zap.Error(err))
		}
		defer sqlRec.Close()
		recorder = sqlRec
	}

	app := fiber.New(fiber.Config{
		AppName:      "weather-dialog",
		ErrorHandler: errorHandler,
	})
	app.Use(recover.New())
	app.Use(logger.New())

	httpapi.RegisterRoutes(app, httpapi.Deps{
		Service:  service,
		Sessions: sessions,
		Recorder: recorder,
		LogUser:  cfg.LogUser,
		LogPass:  cfg.LogPass,
		Log:      log,
	})

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal("server stopped", zap.Error(err))
		}
	}()
	log.Info("listening", zap.String("port", cfg.Port), zap.String("env", cfg.Env))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	if err := app.Shutdown(); err != nil {
		log.Error("shutdown failed", zap.Error(err))
	}
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
