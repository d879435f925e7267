package dto

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	DatabaseURL   string
	Port          int
	SessionSecret string
	RabbitMQURL   string
	BaseURL       string
	AdminUsername string
	AdminEmail    string
	AdminPassword string
}

func LoadConfig() Config {
	if err := godotenv.Load(); err != nil {
		logrus.Debugf("No .env file loaded: %v", err)
	}

	port := 5000
	if raw := os.Getenv("PORT"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			logrus.Panicf("Invalid PORT value %q: %v", raw, err)
		}
		port = parsed
	}

	return Config{
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		Port:          port,
		SessionSecret: getenvDefault("SESSION_SECRET", "dev-secret-key-change-in-production"),
		RabbitMQURL:   os.Getenv("RABBITMQ_URL"),
		BaseURL:       getenvDefault("BASE_URL", "http://localhost:5000"),
		AdminUsername: getenvDefault("ADMIN_USERNAME", "admin"),
		AdminEmail:    getenvDefault("ADMIN_EMAIL", "admin@pollify.com"),
		AdminPassword: getenvDefault("ADMIN_PASSWORD", "admin123"),
	}
}

func getenvDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
