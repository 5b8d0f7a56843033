package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config carries everything main needs to wire the app.
type Config struct {
	Port          string
	DBDriver      string // "sqlite" or "postgres"
	DBPath        string // sqlite file
	DatabaseURL   string // postgres DSN
	SessionSecret string
	SessionTTL    time.Duration
	TemplateDir   string
}

// Load reads .env (if present) and the environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using system environment variables")
	}

	return Config{
		Port:          getenv("PORT", "5000"),
		DBDriver:      getenv("DB_DRIVER", "sqlite"),
		DBPath:        getenv("DB_PATH", "./BrightIdeas.db"),
		DatabaseURL:   getenv("DATABASE_URL", ""),
		SessionSecret: getenv("SESSION_SECRET", "development-key"),
		SessionTTL:    getenvMinutes("SESSION_TTL_MINUTES", 12*time.Hour),
		TemplateDir:   getenv("TEMPLATE_DIR", "./templates"),
	}
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getenvMinutes(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	min, err := strconv.Atoi(v)
	if err != nil || min <= 0 {
		logrus.Warnf("Invalid %s=%q, using default", key, v)
		return def
	}
	return time.Duration(min) * time.Minute
}
