package main

import (
	"context"
	"log"
	"time"

	"github.com/bgaal/passhub/config"
	"github.com/bgaal/passhub/internal/mailer"
	"github.com/bgaal/passhub/internal/notify"
	"github.com/bgaal/passhub/internal/repository"
	"github.com/bgaal/passhub/internal/service"
	"github.com/bgaal/passhub/pkg/database"
)

// One-shot reminder run, meant for cron. The service itself decides whether
// today is the configured day.
func main() {
	cfg := config.Load()
	db := database.NewPostgresDB(cfg.DSN())

	userRepo := repository.NewUserRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	smtpMailer := mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort)
	notifier := notify.NewNotifier(settingsRepo, smtpMailer, cfg.EmailFrom, cfg.EmailPassword)

	reminderSvc := service.NewReminderService(settingsRepo, userRepo, notifier)

	sent, err := reminderSvc.Run(context.Background(), time.Now())
	if err != nil {
		log.Fatalf("weekly reminder run: %v", err)
	}
	log.Printf("done, %d reminder(s) sent", sent)
}
