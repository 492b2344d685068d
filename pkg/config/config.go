package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port       string
	UploadsDir string
	SeedDemo   bool
	RateLimit  string
	CORSOrigin string
	DB         DBConfig
	Auth       AuthConfig
	Log        LogConfig
}

type DBConfig struct {
	Driver   string // sqlite or postgres
	Path     string // sqlite file, ":memory:" for tests
	DSN      string // postgres only
	LogLevel string
}

type AuthConfig struct {
	Enabled  bool
	Secret   string
	TokenTTL time.Duration
}

type LogConfig struct {
	Level    string
	Format   string
	Output   string
	FilePath string
}

// Load reads .env (when present) and the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment without touching .env.
func FromEnv() Config {
	ttlHours, err := strconv.Atoi(getEnv("JWT_TTL_HOURS", "24"))
	if err != nil || ttlHours <= 0 {
		ttlHours = 24
	}

	return Config{
		Port:       getEnv("PORT", "3001"),
		UploadsDir: getEnv("UPLOADS_DIR", "uploads"),
		SeedDemo:   getBool("SEED_DEMO_DATA", true),
		RateLimit:  getEnv("RATE_LIMIT", "100-M"),
		CORSOrigin: getEnv("CORS_ORIGINS", "*"),
		DB: DBConfig{
			Driver:   strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
			Path:     getEnv("DB_PATH", "ucstore.db"),
			DSN:      os.Getenv("DATABASE_URL"),
			LogLevel: getEnv("DB_LOG_LEVEL", "warn"),
		},
		Auth: AuthConfig{
			Enabled:  getBool("AUTH_ENABLED", false),
			Secret:   getEnv("JWT_SECRET", "ucstore-dev-secret-change-me"),
			TokenTTL: time.Duration(ttlHours) * time.Hour,
		},
		Log: LogConfig{
			Level:    getEnv("LOG_LEVEL", "info"),
			Format:   getEnv("LOG_FORMAT", "text"),
			Output:   getEnv("LOG_OUTPUT", "stdout"),
			FilePath: getEnv("LOG_FILE", "logs/app.log"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}
