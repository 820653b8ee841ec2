package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Optional: empty disables domain-event publishing.
	RabbitURL string

	SMTPHost string
	SMTPPort string
	// Fallback sender credentials; the settings row overrides these.
	EmailFrom     string
	EmailPassword string

	JWTSecret string

	// Base URL encoded into pass verification QR codes.
	AppURL string

	// When true the server runs the weekly reminder check in-process.
	ReminderDaemon bool
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[Config] no .env file found, using environment")
	}

	return &Config{
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPassword:     getEnv("DB_PASSWORD", "postgres"),
		DBName:         getEnv("DB_NAME", "passhub"),
		RabbitURL:      os.Getenv("RABBITMQ_URL"),
		SMTPHost:       getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:       getEnv("SMTP_PORT", "465"),
		EmailFrom:      os.Getenv("EMAIL_FROM"),
		EmailPassword:  os.Getenv("EMAIL_PASSWORD"),
		JWTSecret:      getEnv("JWT_SECRET", "devkey"),
		AppURL:         getEnv("APP_URL", "http://localhost:8080"),
		ReminderDaemon: os.Getenv("REMINDER_DAEMON") == "true",
	}
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName,
	)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
