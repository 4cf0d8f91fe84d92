package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	CORS     CORSConfig
	Line     LineConfig
	Checkout CheckoutConfig
	Redis    RedisConfig
	Upload   UploadConfig
}

type ServerConfig struct {
	Port        string
	GinMode     string
	Environment string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type JWTConfig struct {
	Secret      string
	TokenExpiry time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

// LineConfig carries the LINE Login channel credentials and endpoints.
type LineConfig struct {
	ChannelID     string
	ChannelSecret string
	CallbackURL   string
	FrontendURL   string
	AuthorizeURL  string
	TokenURL      string
	ProfileURL    string
}

// CheckoutConfig keeps the checkout constants injectable so the flow
// stays testable.
type CheckoutConfig struct {
	ShippingFee float64
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type UploadConfig struct {
	Dir          string
	MaxSizeBytes int64
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Server: ServerConfig{
			Port:        getEnv("SERVER_PORT", "8080"),
			GinMode:     getEnv("GIN_MODE", "debug"),
			Environment: getEnv("ENVIRONMENT", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "admin"),
			Password: getEnv("DB_PASSWORD", "1234"),
			DBName:   getEnv("DB_NAME", "petnest"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:      getEnv("JWT_SECRET", "your-secret-key"),
			TokenExpiry: parseDuration(getEnv("JWT_TOKEN_EXPIRY", "168h")),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseSlice(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		},
		Line: LineConfig{
			ChannelID:     getEnv("LINE_CHANNEL_ID", ""),
			ChannelSecret: getEnv("LINE_CHANNEL_SECRET", ""),
			CallbackURL:   getEnv("LINE_CALLBACK_URL", "http://localhost:8080/api/v1/auth/line/callback"),
			FrontendURL:   getEnv("FRONTEND_URL", "http://localhost:3000"),
			AuthorizeURL:  getEnv("LINE_AUTHORIZE_URL", "https://access.line.me/oauth2/v2.1/authorize"),
			TokenURL:      getEnv("LINE_TOKEN_URL", "https://api.line.me/oauth2/v2.1/token"),
			ProfileURL:    getEnv("LINE_PROFILE_URL", "https://api.line.me/v2/profile"),
		},
		Checkout: CheckoutConfig{
			ShippingFee: parseFloat(getEnv("CHECKOUT_SHIPPING_FEE", "20"), 20),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       parseInt(getEnv("REDIS_DB", "0"), 0),
		},
		Upload: UploadConfig{
			Dir:          getEnv("UPLOAD_DIR", "./uploads"),
			MaxSizeBytes: int64(parseInt(getEnv("UPLOAD_MAX_SIZE_BYTES", "5242880"), 5242880)),
		},
	}

	return config, nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(s string) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil {
		log.Printf("Invalid duration %s, using default 168h", s)
		return 168 * time.Hour
	}
	return duration
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}

func parseFloat(s string, fallback float64) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fallback
	}
	return f
}

func parseSlice(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	return result
}
