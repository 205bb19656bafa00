package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"

	defaultDSN         = "host=localhost user=postgres password=postgres dbname=skladets port=5432 sslmode=disable"
	defaultCORSOrigins = "http://localhost:5173"
)

type Config struct {
	HTTPPort       string
	DatabaseDriver string
	DatabaseDSN    string
	Debug          bool // включает /view_db и SQL-лог
	LogLevel       string
	LogFormat      string // json | console
	SeedDemoData   bool
	CORSOrigins    string

	// Warnings собирает замечания о небезопасных значениях по умолчанию;
	// main выводит их после инициализации логгера.
	Warnings []string
}

// Load reads the configuration from the environment. A .env file in the
// working directory is applied first if present; real env vars win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		DatabaseDriver: strings.ToLower(getEnv("DATABASE_DRIVER", DriverPostgres)),
		DatabaseDSN:    getEnv("DATABASE_DSN", defaultDSN),
		Debug:          getBool("APP_DEBUG", false),
		LogLevel:       strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:      strings.ToLower(getEnv("LOG_FORMAT", "json")),
		SeedDemoData:   getBool("SEED_DEMO_DATA", true),
		CORSOrigins:    getEnv("CORS_ALLOWED_ORIGINS", defaultCORSOrigins),
	}

	switch cfg.DatabaseDriver {
	case DriverPostgres:
		if cfg.DatabaseDSN == defaultDSN {
			cfg.Warnings = append(cfg.Warnings, "DATABASE_DSN не задан, используется значение по умолчанию; для продакшена укажите свой Postgres")
		}
	case DriverSQLite:
		if cfg.DatabaseDSN == defaultDSN {
			cfg.DatabaseDSN = "skladets.db"
		}
	case DriverMemory:
		cfg.Warnings = append(cfg.Warnings, "DATABASE_DRIVER=memory: данные не сохраняются между перезапусками")
	default:
		return nil, fmt.Errorf("неизвестный DATABASE_DRIVER %q (ожидается postgres, sqlite или memory)", cfg.DatabaseDriver)
	}

	if cfg.Debug {
		cfg.Warnings = append(cfg.Warnings, "APP_DEBUG=true: открыт отладочный маршрут /view_db, не включайте его в продакшене")
	}
	if cfg.CORSOrigins == defaultCORSOrigins {
		cfg.Warnings = append(cfg.Warnings, "CORS_ALLOWED_ORIGINS не задан, используется значение по умолчанию")
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
