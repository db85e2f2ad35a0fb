package main

import (
	"database/sql"
	"flag"

	"github.com/rs/zerolog/log"

	"hackswipe-service/internal/adapters/repositories"
	"hackswipe-service/internal/config"
	"hackswipe-service/internal/platform/db"
	"hackswipe-service/internal/platform/obs"
)

func main() {
	schemaOnly := flag.Bool("schema-only", false, "create tables without seeding")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	log.Logger = obs.NewLogger(cfg.AppEnv)

	conn, err := db.Open(cfg.DBDriver, cfg.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer conn.Close()

	seedPath := cfg.SeedPath
	if *schemaOnly {
		seedPath = ""
	}
	if err := initAndSeed(conn, cfg.DBDriver, seedPath); err != nil {
		log.Fatal().Err(err).Msg("dbtool")
	}
}

func initAndSeed(conn *sql.DB, driver, seedPath string) error {
	log.Info().Str("driver", driver).Msg("initializing database schema")
	if err := repositories.InitSchema(conn); err != nil {
		return err
	}
	log.Info().Msg("schema ready")

	if seedPath == "" {
		return nil
	}

	log.Info().Str("path", seedPath).Msg("seeding database")
	if err := repositories.SeedFromJSON(conn, driver, seedPath); err != nil {
		return err
	}
	log.Info().Msg("seeding complete")

	return nil
}
