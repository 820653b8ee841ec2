package main

import (
	"context"
	"flag"
	"log"

	"github.com/bgaal/passhub/config"
	"github.com/bgaal/passhub/internal/models"
	"github.com/bgaal/passhub/internal/repository"
	"github.com/bgaal/passhub/pkg/database"
)

// Bootstraps the built-in admin account. Safe to run repeatedly.
func main() {
	username := flag.String("username", "admin", "admin username")
	email := flag.String("email", "admin@example.com", "admin email")
	password := flag.String("password", "admin123", "admin password")
	flag.Parse()

	cfg := config.Load()
	db := database.NewPostgresDB(cfg.DSN())
	userRepo := repository.NewUserRepository(db)

	ctx := context.Background()

	if existing, err := userRepo.FindByUsername(ctx, *username); err == nil {
		log.Printf("admin user %q already exists (id=%d)", existing.Username, existing.ID)
		return
	}

	user := &models.User{
		Username: *username,
		Email:    *email,
		Role:     models.RoleAdmin,
	}
	if err := user.SetPassword(*password); err != nil {
		log.Fatalf("hash password: %v", err)
	}
	if err := userRepo.Create(ctx, user); err != nil {
		log.Fatalf("create admin: %v", err)
	}

	log.Printf("admin user %q created (id=%d)", user.Username, user.ID)
}
