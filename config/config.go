package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/Xfhreall/armaso-pos/utils"
	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	GinMode         string
	LogLevel        string
	ShutdownTimeout time.Duration

	DBDriver          string
	DBSource          string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration
	DBLogLevel        string

	SessionSecret      []byte
	SessionTTL         time.Duration
	CookieSecure       bool
	LoginRatePerMinute int
	CORSOrigins        []string

	Location *time.Location
	Locale   string

	AdminUsername string
	AdminPassword string
	SeedMenu      bool
}

// Release reports whether gin runs in release mode.
func (c *Config) Release() bool {
	return c.GinMode == "release"
}

// Load reads .env (optional) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		utils.InfoLogger.Println("Warning: .env file not found, using process environment")
	}
	return FromEnv()
}

// FromEnv builds a Config from the environment only.
func FromEnv() (*Config, error) {
	var errs []error

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		GinMode:       getEnv("GIN_MODE", "debug"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		DBDriver:      strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		DBSource:      getEnv("DB_SOURCE", "armaso.db"),
		DBLogLevel:    strings.ToLower(getEnv("DB_LOG_LEVEL", "warn")),
		Locale:        strings.ToLower(getEnv("APP_LOCALE", "id")),
		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}

	cfg.ShutdownTimeout = getDuration("SHUTDOWN_TIMEOUT", 10*time.Second, &errs)
	cfg.DBMaxOpenConns = getInt("DB_MAX_OPEN_CONNS", 10, &errs)
	cfg.DBMaxIdleConns = getInt("DB_MAX_IDLE_CONNS", 5, &errs)
	cfg.DBConnMaxLifetime = getDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute, &errs)
	cfg.SessionTTL = getDuration("SESSION_TTL", 7*24*time.Hour, &errs)
	cfg.LoginRatePerMinute = getInt("LOGIN_RATE_PER_MINUTE", 5, &errs)
	cfg.SeedMenu = getBool("SEED_MENU", false, &errs)
	cfg.CookieSecure = getBool("COOKIE_SECURE", cfg.Release(), &errs)

	for _, o := range strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}

	loc, err := time.LoadLocation(getEnv("APP_TIMEZONE", "Asia/Jakarta"))
	if err != nil {
		errs = append(errs, fmt.Errorf("APP_TIMEZONE: %w", err))
	}
	cfg.Location = loc

	switch cfg.DBDriver {
	case "sqlite", "mysql", "postgres":
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER: unsupported driver %q", cfg.DBDriver))
	}

	switch cfg.Locale {
	case "id", "en":
	default:
		errs = append(errs, fmt.Errorf("APP_LOCALE: unsupported locale %q", cfg.Locale))
	}

	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		if cfg.Release() {
			errs = append(errs, errors.New("SESSION_SECRET is required in release mode"))
		} else {
			utils.InfoLogger.Warn("SESSION_SECRET not set, using development secret")
			secret = "armaso-dev-session-secret"
		}
	}
	cfg.SessionSecret = []byte(secret)

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int, errs *[]error) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		*errs = append(*errs, fmt.Errorf("%s: invalid integer %q", key, v))
		return fallback
	}
	return n
}

func getBool(key string, fallback bool, errs *[]error) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: invalid boolean %q", key, v))
		return fallback
	}
	return b
}

func getDuration(key string, fallback time.Duration, errs *[]error) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		*errs = append(*errs, fmt.Errorf("%s: invalid duration %q", key, v))
		return fallback
	}
	return d
}
