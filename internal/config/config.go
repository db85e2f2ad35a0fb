// Package config loads service settings from the environment, an optional
// .env file and an optional YAML file. Environment variables win.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	AppEnv string
	Port   string

	DBDriver    string // "sqlite" or "pgx"
	DBPath      string
	DatabaseURL string
	SeedPath    string

	RedisAddr string
	RedisPass string
	RedisDB   int
	CacheTTL  time.Duration

	SupabaseURL string
	SupabaseKey string
	SupabaseRPS int

	DefaultRadiusKm float64
	DefaultLat      float64
	DefaultLon      float64
}

// Defaults mirror the prototype: a 50 km search radius around San Francisco.
const (
	DefaultPort     = "8080"
	DefaultDBPath   = "data/app.db"
	DefaultSeedPath = "data/seeds/hackswipe.json"
	DefaultRadiusKm = 50.0
	DefaultLat      = 37.7749
	DefaultLon      = -122.4194
)

var (
	ErrMissingDatabaseURL = errors.New("DATABASE_URL is required when DB_DRIVER=pgx")
	ErrUnknownDriver      = errors.New("DB_DRIVER must be sqlite or pgx")
)

// Load reads .env (if present), then the YAML file named by CONFIG_FILE
// (if set), then the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	var errs []error
	num := func(envKey, koanfKey string, def float64) float64 {
		v, err := floatFrom(envKey, k, koanfKey, def)
		if err != nil {
			errs = append(errs, err)
		}
		return v
	}
	integer := func(envKey, koanfKey string, def int) int {
		v, err := intFrom(envKey, k, koanfKey, def)
		if err != nil {
			errs = append(errs, err)
		}
		return v
	}

	cfg := Config{
		AppEnv:          stringFrom("APP_ENV", k, "app_env", "prod"),
		Port:            stringFrom("PORT", k, "port", DefaultPort),
		DBDriver:        stringFrom("DB_DRIVER", k, "db_driver", "sqlite"),
		DBPath:          stringFrom("DB_PATH", k, "db_path", DefaultDBPath),
		DatabaseURL:     stringFrom("DATABASE_URL", k, "database_url", ""),
		SeedPath:        stringFrom("SEED_PATH", k, "seed_path", DefaultSeedPath),
		RedisAddr:       stringFrom("REDIS_ADDR", k, "redis_addr", ""),
		RedisPass:       stringFrom("REDIS_PASSWORD", k, "redis_password", ""),
		RedisDB:         integer("REDIS_DB", "redis_db", 0),
		CacheTTL:        time.Duration(integer("CACHE_TTL_SECONDS", "cache_ttl_seconds", 300)) * time.Second,
		SupabaseURL:     strings.TrimRight(stringFrom("SUPABASE_URL", k, "supabase_url", ""), "/"),
		SupabaseKey:     stringFrom("SUPABASE_ANON_KEY", k, "supabase_anon_key", ""),
		SupabaseRPS:     integer("SUPABASE_RPS", "supabase_rps", 5),
		DefaultRadiusKm: num("DEFAULT_RADIUS_KM", "default_radius_km", DefaultRadiusKm),
		DefaultLat:      num("DEFAULT_LAT", "default_lat", DefaultLat),
		DefaultLon:      num("DEFAULT_LON", "default_lon", DefaultLon),
	}

	switch cfg.DBDriver {
	case "sqlite":
	case "pgx":
		if strings.TrimSpace(cfg.DatabaseURL) == "" {
			errs = append(errs, ErrMissingDatabaseURL)
		}
	default:
		errs = append(errs, ErrUnknownDriver)
	}

	if err := errors.Join(errs...); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// DSN returns the data source name for the configured driver.
func (c Config) DSN() string {
	if c.DBDriver == "pgx" {
		return c.DatabaseURL
	}
	return c.DBPath
}

func stringFrom(envKey string, k *koanf.Koanf, koanfKey, def string) string {
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	if v := k.String(koanfKey); v != "" {
		return v
	}
	return def
}

func intFrom(envKey string, k *koanf.Koanf, koanfKey string, def int) (int, error) {
	if v := os.Getenv(envKey); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return def, fmt.Errorf("%s must be an integer: %w", envKey, err)
		}
		return n, nil
	}
	if k.Exists(koanfKey) {
		return k.Int(koanfKey), nil
	}
	return def, nil
}

func floatFrom(envKey string, k *koanf.Koanf, koanfKey string, def float64) (float64, error) {
	if v := os.Getenv(envKey); v != "" {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return def, fmt.Errorf("%s must be a number: %w", envKey, err)
		}
		return f, nil
	}
	if k.Exists(koanfKey) {
		return k.Float64(koanfKey), nil
	}
	return def, nil
}
