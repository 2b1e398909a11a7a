package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port           string
	Environment    string
	DatabaseDriver string // "postgres" or "sqlite"
	DatabaseURL    string
	SQLitePath     string
	CORSOrigins    string
	TablePrefix    string
	// Public site
	SiteURL   string // Used for sitemap and feed links, no trailing slash
	SiteTitle string
	// Admin auth
	JWKSURL   string
	AdminRole string
	// Docs resolution
	ResolverStrategy string // "batch" or "per_level"
	// Logging
	LogDir      string
	LogMaxFiles int
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Port:             getEnv("PORT", "8080"),
		Environment:      env,
		DatabaseDriver:   strings.ToLower(getEnv("DATABASE_DRIVER", DriverPostgres)),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		SQLitePath:       getEnv("SQLITE_PATH", "./data/portfolio.db"),
		CORSOrigins:      getEnv("CORS_ORIGINS", "http://localhost:3000"),
		TablePrefix:      getTablePrefix(env),
		SiteURL:          strings.TrimRight(getEnv("SITE_URL", "http://localhost:3000"), "/"),
		SiteTitle:        getEnv("SITE_TITLE", "Docs"),
		JWKSURL:          getEnv("JWKS_URL", ""),
		AdminRole:        getEnv("ADMIN_ROLE", "admin"),
		ResolverStrategy: strings.ToLower(getEnv("RESOLVER_STRATEGY", ResolverBatch)),
		LogDir:           getEnv("LOG_DIR", ""),
		LogMaxFiles:      getEnvInt("LOG_MAX_FILES", 10),
	}
}

// Supported values for DatabaseDriver and ResolverStrategy.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	ResolverBatch    = "batch"
	ResolverPerLevel = "per_level"
)

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix, ok := os.LookupEnv("TABLE_PREFIX"); ok {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return defaultValue
	}
	return n
}
