package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"paperdoll_backend/config"
	"paperdoll_backend/handler"
	"paperdoll_backend/repository"
	"paperdoll_backend/service"
)

func StartServer() {
	cfg, errRead := config.Read("./cfg.json")
	if errRead != nil {
		log.Fatalf("error reading cfg.json: %v", errRead)
	}

	logFileName := "log_" + time.Now().Format("2006-01-02_15-04-05") + ".log"
	loggerService, err := service.NewLoggerService(logFileName, cfg.Version)
	if err != nil {
		log.Fatalf("error creating logger: %v", err)
	}
	defer loggerService.Shutdown()

	charRepo, errRepo := repository.New(cfg.Dsn, time.Duration(cfg.StoreTimeout)*time.Second)
	if errRepo != nil {
		log.Fatalf("error creating repository: %v", errRepo)
		return
	}

	statsService := service.NewStatsService(charRepo, cfg.LogLimit)
	inviteService := service.NewInviteService()

	statsHandler := handler.New(statsService, inviteService, loggerService, cfg.CharacterLimit)

	fiberConfig := fiber.Config{
		BodyLimit:               4 * 1024 * 10,
		Concurrency:             1024,
		ReadTimeout:             5 * time.Second,
		WriteTimeout:            5 * time.Second,
		ReadBufferSize:          4 * 1024 * 10,
		WriteBufferSize:         4 * 1024 * 10,
		Prefork:                 false,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"127.0.0.1", "::1"},
	}
	app := fiber.New(fiberConfig)
	app.Use(logger.New(), compress.New())

	app.Use(cors.New(cors.Config{
		AllowMethods: "GET,POST,DELETE",
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowOrigins: "https://stats.paperdoll.gg",
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        500,
		Expiration: 1 * time.Hour,
		KeyGenerator: func(ctx *fiber.Ctx) string {
			realIP := ctx.Get("X-Real-IP")
			if realIP == "" {
				realIP = ctx.IP()
			}
			return realIP
		},
		LimitReached: func(ctx *fiber.Ctx) error {
			ip := ctx.Get("X-Real-IP")
			if ip == "" {
				ip = ctx.IP()
			}
			loggerService.Info(fmt.Sprintf("Rate limit reached for IP: %s", ip))
			return ctx.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":   true,
				"message": "You've reached the limit of HTTP requests. Try again later.",
			})
		},
	}))

	// Serve the static frontend build
	app.Static("/", cfg.FEPath)

	SetupRoutes(app, statsHandler)

	// SPA fallback
	app.Get("/*", func(c *fiber.Ctx) error {
		if _, err := os.Stat(cfg.FEPath + "/index.html"); err != nil {
			return c.Status(404).SendString("Not Found")
		}
		return c.SendFile(cfg.FEPath + "/index.html")
	})

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	loggerService.Info(fmt.Sprintf("Starting server on %s\n", cfg.Port))
	go func() {
		if err = app.Listen(cfg.Port); err != nil {
			loggerService.Exception(fmt.Sprintf("error starting server: %v", err))
			os.Exit(1)
		}
	}()

	done := make(chan struct{})

	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				retentionPeriod := 7 * 24 * time.Hour
				if err = loggerService.ClearOldLogs(retentionPeriod); err != nil {
					loggerService.Exception(fmt.Sprintf("Error cleaning old logs: %v\n", err))
				}
			case <-done:
				loggerService.Info("Stopping log cleanup ticker.")
				return
			}
		}
	}()

	<-stop

	loggerService.Info("Shutting down server...")
	if err = app.Shutdown(); err != nil {
		loggerService.Exception(fmt.Sprintf("error during shutdown: %v", err))
	}

	close(done)
}

func SetupRoutes(app *fiber.App, statsHandler *handler.StatsHandler) {
	api := app.Group("api")

	api.Get("/characters", statsHandler.GetCharacters)

	api.Get("/invites", statsHandler.GetInvites)
	api.Post("/invites", statsHandler.AddInvite)
	api.Delete("/invites", statsHandler.ClearInvites)
}
