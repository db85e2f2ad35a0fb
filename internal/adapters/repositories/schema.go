package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"regexp"

	"hackswipe-service/internal/dataset"
	"hackswipe-service/internal/platform/db"
)

var placeholder = regexp.MustCompile(`\$\d+`)

// rebind rewrites Postgres "$n" placeholders to "?" for SQLite. Queries must
// use each placeholder once, in ascending order.
func rebind(driver, query string) string {
	if driver == db.DriverSQLite {
		return placeholder.ReplaceAllString(query, "?")
	}
	return query
}

// Initialize the database schema. The DDL is valid for both Postgres and SQLite.
func InitSchema(conn *sql.DB) error {
	if conn == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := conn.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createHackathonsQuery := `
	CREATE TABLE IF NOT EXISTS hackathons (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		location TEXT NOT NULL DEFAULT '',
		latitude DOUBLE PRECISION,
		longitude DOUBLE PRECISION,
		tags TEXT NOT NULL DEFAULT '[]',
		start_date TEXT NOT NULL DEFAULT '',
		end_date TEXT NOT NULL DEFAULT '',
		application_deadline TEXT NOT NULL DEFAULT '',
		max_team_size INTEGER NOT NULL DEFAULT 0
	);
	`

	createMembershipsQuery := `
	CREATE TABLE IF NOT EXISTS user_hackathons (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		hackathon_id TEXT NOT NULL REFERENCES hackathons(id),
		join_type TEXT NOT NULL,
		team_name TEXT,
		team_members TEXT NOT NULL DEFAULT '[]',
		joined_at TEXT NOT NULL,
		UNIQUE (user_id, hackathon_id)
	);
	`

	createGigsQuery := `
	CREATE TABLE IF NOT EXISTS freelance_gigs (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		event TEXT NOT NULL DEFAULT '',
		skills_required TEXT NOT NULL DEFAULT '[]',
		pay_min INTEGER NOT NULL DEFAULT 0,
		pay_max INTEGER NOT NULL DEFAULT 0,
		remote BOOLEAN NOT NULL DEFAULT FALSE,
		deadline TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT ''
	);
	`

	createDevelopersQuery := `
	CREATE TABLE IF NOT EXISTS developers (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		skills TEXT NOT NULL DEFAULT '[]',
		availability TEXT NOT NULL DEFAULT '',
		experience TEXT NOT NULL DEFAULT '',
		bio TEXT NOT NULL DEFAULT ''
	);
	`

	createInvitationsQuery := `
	CREATE TABLE IF NOT EXISTS invitations (
		id TEXT PRIMARY KEY,
		developer_id TEXT NOT NULL REFERENCES developers(id),
		sender_id TEXT NOT NULL,
		message TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);
	`

	createProfilesQuery := `
	CREATE TABLE IF NOT EXISTS profiles (
		user_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL DEFAULT '',
		skills TEXT NOT NULL DEFAULT '[]',
		available BOOLEAN NOT NULL DEFAULT FALSE,
		bio TEXT NOT NULL DEFAULT '',
		updated_at TEXT NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_user_hackathons_user
	ON user_hackathons(user_id);
	`

	statements := []string{
		createHackathonsQuery,
		createMembershipsQuery,
		createGigsQuery,
		createDevelopersQuery,
		createInvitationsQuery,
		createProfilesQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Populate the database from a JSON data set file.
func SeedFromJSON(conn *sql.DB, driver, jsonPath string) error {
	ds, err := dataset.Load(jsonPath)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	return Seed(conn, driver, ds)
}

// Seed upserts hackathons, gigs and developers and inserts profiles and
// memberships that are not already present.
func Seed(conn *sql.DB, driver string, ds dataset.Dataset) error {
	if conn == nil {
		return errors.New("seed: DB is nil")
	}

	tx, err := conn.Begin()
	if err != nil {
		return fmt.Errorf("seed: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	hackathonStmt, err := tx.Prepare(rebind(driver, upsertHackathonQuery))
	if err != nil {
		return fmt.Errorf("seed hackathons: prepare insert: %w", err)
	}
	defer hackathonStmt.Close()

	for _, h := range ds.Hackathons {
		args, err := hackathonArgs(h)
		if err != nil {
			return fmt.Errorf("seed hackathons: id=%s: %w", h.ID, err)
		}
		if _, err := hackathonStmt.Exec(args...); err != nil {
			return fmt.Errorf("seed hackathons: insert id=%s: %w", h.ID, err)
		}
	}

	memberStmt, err := tx.Prepare(rebind(driver, insertMembershipQuery))
	if err != nil {
		return fmt.Errorf("seed memberships: prepare insert: %w", err)
	}
	defer memberStmt.Close()

	for _, m := range ds.Memberships {
		args, err := membershipArgs(m)
		if err != nil {
			return fmt.Errorf("seed memberships: id=%s: %w", m.ID, err)
		}
		if _, err := memberStmt.Exec(args...); err != nil {
			return fmt.Errorf("seed memberships: insert id=%s: %w", m.ID, err)
		}
	}

	gigStmt, err := tx.Prepare(rebind(driver, `
	INSERT INTO freelance_gigs (
		id, title, event, skills_required, pay_min, pay_max, remote, deadline, description
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (id) DO UPDATE SET
		title = EXCLUDED.title,
		event = EXCLUDED.event,
		skills_required = EXCLUDED.skills_required,
		pay_min = EXCLUDED.pay_min,
		pay_max = EXCLUDED.pay_max,
		remote = EXCLUDED.remote,
		deadline = EXCLUDED.deadline,
		description = EXCLUDED.description;
	`))
	if err != nil {
		return fmt.Errorf("seed gigs: prepare insert: %w", err)
	}
	defer gigStmt.Close()

	for _, g := range ds.Gigs {
		skills, err := encodeList(g.SkillsRequired)
		if err != nil {
			return fmt.Errorf("seed gigs: id=%s: %w", g.ID, err)
		}
		if _, err := gigStmt.Exec(
			g.ID, g.Title, g.Event, skills, g.Pay.Min, g.Pay.Max, g.Remote,
			formatDate(g.Deadline), g.Description,
		); err != nil {
			return fmt.Errorf("seed gigs: insert id=%s: %w", g.ID, err)
		}
	}

	devStmt, err := tx.Prepare(rebind(driver, upsertDeveloperQuery))
	if err != nil {
		return fmt.Errorf("seed developers: prepare insert: %w", err)
	}
	defer devStmt.Close()

	for _, d := range ds.Developers {
		args, err := developerArgs(d)
		if err != nil {
			return fmt.Errorf("seed developers: id=%s: %w", d.ID, err)
		}
		if _, err := devStmt.Exec(args...); err != nil {
			return fmt.Errorf("seed developers: insert id=%s: %w", d.ID, err)
		}
	}

	profileStmt, err := tx.Prepare(rebind(driver, seedProfileQuery))
	if err != nil {
		return fmt.Errorf("seed profiles: prepare insert: %w", err)
	}
	defer profileStmt.Close()

	for _, p := range ds.Profiles {
		args, err := profileArgs(p)
		if err != nil {
			return fmt.Errorf("seed profiles: user=%s: %w", p.UserID, err)
		}
		if _, err := profileStmt.Exec(args...); err != nil {
			return fmt.Errorf("seed profiles: insert user=%s: %w", p.UserID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed: commit tx: %w", err)
	}

	return nil
}

// nullCoord stores unknown (NaN) coordinates as NULL.
func nullCoord(v float64) sql.NullFloat64 {
	if math.IsNaN(v) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}

func coordOrNaN(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.Float64
}
