package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port        string
	DatabaseURL string

	// JWT settings: the access and refresh tokens are signed with
	// distinct secrets so one cannot be presented as the other.
	JWTAccessSecret  string
	JWTRefreshSecret string
	AccessTTL        time.Duration
	RefreshTTL       time.Duration

	CORSOrigins []string
	UploadDir   string

	// Email Configuration (welcome mail is skipped when SMTPHost is empty)
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromEmail    string
	FromName     string
}

func Load() *Config {
	smtpPort, _ := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	accessTTL, _ := strconv.Atoi(getEnv("JWT_ACCESS_TTL", "900"))
	refreshTTL, _ := strconv.Atoi(getEnv("JWT_REFRESH_TTL", "604800"))

	return &Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", "user:password@tcp(localhost:3306)/rleomotos?charset=utf8mb4&parseTime=True&loc=Local"),

		JWTAccessSecret:  getEnv("JWT_ACCESS_SECRET", "access-secret"),
		JWTRefreshSecret: getEnv("JWT_REFRESH_SECRET", "refresh-secret"),
		AccessTTL:        time.Duration(accessTTL) * time.Second,
		RefreshTTL:       time.Duration(refreshTTL) * time.Second,

		CORSOrigins: strings.Split(getEnv("CORS_ORIGINS", "*"), ","),
		UploadDir:   getEnv("UPLOAD_DIR", "uploads"),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     smtpPort,
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		FromEmail:    getEnv("FROM_EMAIL", "noreply@rleomotos.com"),
		FromName:     getEnv("FROM_NAME", "Rleo Motos"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
