package main

import (
	"context"
	"log"
	"time"

	"github.com/bgaal/passhub/config"
	"github.com/bgaal/passhub/internal/handler"
	"github.com/bgaal/passhub/internal/jobs"
	"github.com/bgaal/passhub/internal/mailer"
	"github.com/bgaal/passhub/internal/middleware"
	"github.com/bgaal/passhub/internal/notify"
	"github.com/bgaal/passhub/internal/repository"
	"github.com/bgaal/passhub/internal/service"
	"github.com/bgaal/passhub/pkg/database"
	"github.com/bgaal/passhub/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	// RabbitMQ is optional: without a URL the services simply skip publishing.
	var publisher *rabbitmq.Publisher
	if cfg.RabbitURL != "" {
		var err error
		publisher, err = rabbitmq.NewPublisher(cfg.RabbitURL)
		if err != nil {
			log.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	passRepo := repository.NewPassRepository(db)
	eventRepo := repository.NewEventRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// Mail
	smtpMailer := mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort)
	notifier := notify.NewNotifier(settingsRepo, smtpMailer, cfg.EmailFrom, cfg.EmailPassword)

	// Services
	userSvc := service.NewUserService(userRepo, notifier, publisher, cfg.JWTSecret)
	passSvc := service.NewPassService(passRepo, userRepo, notifier, publisher, cfg.AppURL)
	eventSvc := service.NewEventService(eventRepo, userRepo, notifier, publisher)
	settingsSvc := service.NewSettingsService(settingsRepo)
	reminderSvc := service.NewReminderService(settingsRepo, userRepo, notifier)

	if cfg.ReminderDaemon {
		runner := jobs.New(context.Background())
		runner.Every(time.Hour, "weekly-reminder", func(ctx context.Context) error {
			_, err := reminderSvc.RunAt(ctx, time.Now())
			return err
		})
	}

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "passhub"})
	})

	auth := middleware.RequireAuth(cfg.JWTSecret)
	admin := middleware.RequireAdmin()

	handler.NewAuthHandler(userSvc).RegisterRoutes(e)
	handler.NewUserHandler(userSvc).RegisterRoutes(e, auth, admin)
	handler.NewPassHandler(passSvc).RegisterRoutes(e, auth, admin)
	handler.NewEventHandler(eventSvc).RegisterRoutes(e, auth, admin)
	handler.NewSettingsHandler(settingsSvc).RegisterRoutes(e, auth, admin)

	log.Printf("PassHub starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
