package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"hackswipe-service/internal/domain"
	"hackswipe-service/internal/platform/obs"
)

// SQL-backed implementation of the HackathonRepository port.
type SQLHackathonRepository struct {
	DB     *sql.DB
	Driver string
}

func NewSQLHackathonRepository(db *sql.DB, driver string) *SQLHackathonRepository {
	return &SQLHackathonRepository{DB: db, Driver: driver}
}

const selectHackathonColumns = `
	SELECT
		id, name, location, latitude, longitude, tags,
		start_date, end_date, application_deadline, max_team_size
	FROM hackathons
`

// upsertHackathonQuery also mirrors hackathons resolved from a remote source
// so memberships can reference them.
const upsertHackathonQuery = `
	INSERT INTO hackathons (
		id, name, location, latitude, longitude, tags,
		start_date, end_date, application_deadline, max_team_size
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	ON CONFLICT (id) DO UPDATE SET
		name = EXCLUDED.name,
		location = EXCLUDED.location,
		latitude = EXCLUDED.latitude,
		longitude = EXCLUDED.longitude,
		tags = EXCLUDED.tags,
		start_date = EXCLUDED.start_date,
		end_date = EXCLUDED.end_date,
		application_deadline = EXCLUDED.application_deadline,
		max_team_size = EXCLUDED.max_team_size;
`

func hackathonArgs(h domain.Hackathon) ([]any, error) {
	tags, err := encodeList(h.Tags)
	if err != nil {
		return nil, err
	}
	return []any{
		h.ID, h.Name, h.LocationName,
		nullCoord(h.Location.Lat), nullCoord(h.Location.Lon),
		tags,
		formatDate(h.StartDate), formatDate(h.EndDate), formatDate(h.ApplicationDeadline),
		h.MaxTeamSize,
	}, nil
}

// Return all hackathons stored in the database.
func (s *SQLHackathonRepository) ListHackathons(ctx context.Context) (_ []domain.Hackathon, err error) {
	defer obs.Time(ctx, "hackathons.sql.List")(&err)

	if s.DB == nil {
		return nil, errors.New("sql hackathon repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, selectHackathonColumns+` ORDER BY id;`)
	if err != nil {
		return nil, fmt.Errorf("list hackathons: query hackathons table: %w", err)
	}
	defer rows.Close()

	hackathons := make([]domain.Hackathon, 0, 16)
	for rows.Next() {
		h, err := scanHackathon(rows)
		if err != nil {
			return nil, fmt.Errorf("list hackathons: %w", err)
		}
		hackathons = append(hackathons, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list hackathons: row iteration: %w", err)
	}

	return hackathons, nil
}

func (s *SQLHackathonRepository) GetHackathon(ctx context.Context, id string) (_ domain.Hackathon, err error) {
	defer obs.Time(ctx, "hackathons.sql.Get")(&err)

	if s.DB == nil {
		return domain.Hackathon{}, errors.New("sql hackathon repository: DB is nil")
	}

	row := s.DB.QueryRowContext(ctx, rebind(s.Driver, selectHackathonColumns+` WHERE id = $1;`), id)
	h, err := scanHackathon(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Hackathon{}, fmt.Errorf("get hackathon id=%s: %w", id, domain.ErrHackathonNotFound)
	}
	if err != nil {
		return domain.Hackathon{}, fmt.Errorf("get hackathon id=%s: %w", id, err)
	}

	return h, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHackathon(r rowScanner) (domain.Hackathon, error) {
	var (
		h                         domain.Hackathon
		lat, lon                  sql.NullFloat64
		tags                      string
		startDate, endDate, apply string
	)
	if err := r.Scan(
		&h.ID, &h.Name, &h.LocationName, &lat, &lon, &tags,
		&startDate, &endDate, &apply, &h.MaxTeamSize,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Hackathon{}, err
		}
		return domain.Hackathon{}, fmt.Errorf("scan hackathon row: %w", err)
	}

	h.Location = domain.GeoPoint{Lat: coordOrNaN(lat), Lon: coordOrNaN(lon)}

	var err error
	if h.Tags, err = decodeList(tags); err != nil {
		return domain.Hackathon{}, fmt.Errorf("hackathon id=%s tags: %w", h.ID, err)
	}
	if h.StartDate, err = domain.ParseDate(startDate); err != nil {
		return domain.Hackathon{}, fmt.Errorf("hackathon id=%s start_date: %w", h.ID, err)
	}
	if h.EndDate, err = domain.ParseDate(endDate); err != nil {
		return domain.Hackathon{}, fmt.Errorf("hackathon id=%s end_date: %w", h.ID, err)
	}
	if h.ApplicationDeadline, err = domain.ParseDate(apply); err != nil {
		return domain.Hackathon{}, fmt.Errorf("hackathon id=%s application_deadline: %w", h.ID, err)
	}

	return h, nil
}
