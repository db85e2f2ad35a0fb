package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"hackswipe-service/internal/adapters/cache"
	"hackswipe-service/internal/adapters/fallback"
	"hackswipe-service/internal/adapters/location"
	"hackswipe-service/internal/adapters/repositories"
	"hackswipe-service/internal/adapters/supabase"
	"hackswipe-service/internal/api"
	"hackswipe-service/internal/config"
	"hackswipe-service/internal/dataset"
	"hackswipe-service/internal/domain"
	"hackswipe-service/internal/platform/db"
	"hackswipe-service/internal/platform/obs"
	"hackswipe-service/internal/ports"
)

// main is the application composition root.
// It wires concrete adapters (SQL, Supabase, Redis) behind ports and starts the HTTP server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}

	log.Logger = obs.NewLogger(cfg.AppEnv)
	reg := obs.InitRegistry()

	conn, err := db.Open(cfg.DBDriver, cfg.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer conn.Close()

	// Initialize schema and seed demo data on startup for local runs.
	if err := initAndSeed(conn, cfg.DBDriver, cfg.SeedPath); err != nil {
		log.Fatal().Err(err).Msg("init database")
	}

	static, err := fallback.NewDefaultStatic()
	if err != nil {
		log.Fatal().Err(err).Msg("load fallback dataset")
	}

	sqlHackathons := repositories.NewSQLHackathonRepository(conn, cfg.DBDriver)
	memberships := repositories.NewSQLMembershipRepository(conn, cfg.DBDriver)
	talent := repositories.NewSQLTalentRepository(conn, cfg.DBDriver)
	profiles := repositories.NewSQLProfileRepository(conn, cfg.DBDriver)

	var (
		hackathonSource ports.HackathonRepository = sqlHackathons
		gigSource       ports.GigRepository       = talent
		developerSource ports.DeveloperRepository = talent
	)
	if cfg.SupabaseURL != "" {
		client, err := supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseKey, cfg.SupabaseRPS)
		if err != nil {
			log.Fatal().Err(err).Msg("supabase client")
		}
		hackathonSource, gigSource, developerSource = client, client, client
		log.Info().Str("url", cfg.SupabaseURL).Msg("reading venues from supabase")
	}

	var hackathonCache ports.Cache
	if cfg.RedisAddr != "" {
		rc := cache.NewRedisCache(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		defer rc.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		err := rc.Ping(pingCtx)
		cancel()
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, continuing without cache")
		} else {
			hackathonCache = rc
		}
	}

	hackathons := hackathonReads(hackathonSource, static, hackathonCache, cfg.CacheTTL)
	gigs := &fallback.GigRepository{Primary: gigSource, Secondary: static}
	developers := &fallback.DeveloperRepository{Primary: developerSource, Secondary: static}

	locator, err := location.NewFixed(cfg.DefaultLat, cfg.DefaultLon)
	if err != nil {
		log.Fatal().Err(err).Msg("default location")
	}

	router := api.NewRouter(api.Deps{
		Hackathons:        hackathons,
		Memberships:       memberships,
		Gigs:              gigs,
		Developers:        developers,
		Invitations:       talent,
		Profiles:          profiles,
		Locator:           locator,
		FallbackReference: domain.GeoPoint{Lat: cfg.DefaultLat, Lon: cfg.DefaultLon},
		DefaultRadiusKm:   cfg.DefaultRadiusKm,
		Metrics:           obs.MetricsHandler(reg),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", srv.Addr).Str("driver", cfg.DBDriver).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown")
	}
}

// hackathonReads layers hackathon reads: the cache (when c is non-nil) wraps
// only the primary source, and the fallback sits outermost so data served
// from secondary is never cached.
func hackathonReads(primary, secondary ports.HackathonRepository, c ports.Cache, ttl time.Duration) ports.HackathonRepository {
	if c != nil {
		primary = &cache.CachedHackathonRepository{Repo: primary, Cache: c, TTL: ttl}
	}
	return &fallback.HackathonRepository{Primary: primary, Secondary: secondary}
}

// initAndSeed seeds from seedPath when the file exists, else from the
// embedded data set.
func initAndSeed(conn *sql.DB, driver, seedPath string) error {
	if err := repositories.InitSchema(conn); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if _, err := os.Stat(seedPath); err == nil {
		if err := repositories.SeedFromJSON(conn, driver, seedPath); err != nil {
			return fmt.Errorf("init and seed: %w", err)
		}
		return nil
	}

	ds, err := dataset.Default()
	if err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	if err := repositories.Seed(conn, driver, ds); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	return nil
}
