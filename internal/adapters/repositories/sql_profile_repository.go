package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"hackswipe-service/internal/domain"
	"hackswipe-service/internal/platform/obs"

	"github.com/google/uuid"
)

// SQL-backed implementation of the ProfileRepository port.
type SQLProfileRepository struct {
	DB     *sql.DB
	Driver string
}

func NewSQLProfileRepository(db *sql.DB, driver string) *SQLProfileRepository {
	return &SQLProfileRepository{DB: db, Driver: driver}
}

const profileColumns = `user_id, name, role, location, skills, available, bio, updated_at`

const upsertProfileQuery = `
	INSERT INTO profiles (` + profileColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (user_id) DO UPDATE SET
		name = EXCLUDED.name,
		role = EXCLUDED.role,
		location = EXCLUDED.location,
		skills = EXCLUDED.skills,
		available = EXCLUDED.available,
		bio = EXCLUDED.bio,
		updated_at = EXCLUDED.updated_at;
`

// seedProfileQuery leaves profiles edited through the API untouched.
const seedProfileQuery = `
	INSERT INTO profiles (` + profileColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (user_id) DO NOTHING;
`

func profileArgs(p domain.Profile) ([]any, error) {
	skills, err := encodeList(p.Skills)
	if err != nil {
		return nil, err
	}
	return []any{
		p.UserID.String(), p.Name, p.Role, p.Location, skills, p.Available, p.Bio,
		formatTimestamp(p.UpdatedAt),
	}, nil
}

func (s *SQLProfileRepository) GetProfile(ctx context.Context, userID uuid.UUID) (_ domain.Profile, err error) {
	defer obs.Time(ctx, "profiles.sql.Get")(&err)

	if s.DB == nil {
		return domain.Profile{}, errors.New("sql profile repository: DB is nil")
	}

	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1;`
	p, err := scanProfile(s.DB.QueryRowContext(ctx, rebind(s.Driver, query), userID.String()))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Profile{}, fmt.Errorf("get profile user=%s: %w", userID, domain.ErrProfileNotFound)
	}
	if err != nil {
		return domain.Profile{}, fmt.Errorf("get profile user=%s: %w", userID, err)
	}

	return p, nil
}

func (s *SQLProfileRepository) SaveProfile(ctx context.Context, p domain.Profile) (err error) {
	defer obs.Time(ctx, "profiles.sql.Save")(&err)

	if s.DB == nil {
		return errors.New("sql profile repository: DB is nil")
	}

	args, err := profileArgs(p)
	if err != nil {
		return fmt.Errorf("save profile user=%s: %w", p.UserID, err)
	}
	if _, err := s.DB.ExecContext(ctx, rebind(s.Driver, upsertProfileQuery), args...); err != nil {
		return fmt.Errorf("save profile user=%s: %w", p.UserID, err)
	}

	return nil
}

func scanProfile(r rowScanner) (domain.Profile, error) {
	var (
		p                       domain.Profile
		userID, skills, updated string
	)
	if err := r.Scan(&userID, &p.Name, &p.Role, &p.Location, &skills, &p.Available, &p.Bio, &updated); err != nil {
		return domain.Profile{}, err
	}

	var err error
	if p.UserID, err = uuid.Parse(userID); err != nil {
		return domain.Profile{}, fmt.Errorf("profile user_id %q: %w", userID, err)
	}
	if p.Skills, err = decodeList(skills); err != nil {
		return domain.Profile{}, fmt.Errorf("profile user=%s skills: %w", userID, err)
	}
	if p.UpdatedAt, err = parseTimestamp(updated); err != nil {
		return domain.Profile{}, fmt.Errorf("profile user=%s updated_at: %w", userID, err)
	}
	return p, nil
}
