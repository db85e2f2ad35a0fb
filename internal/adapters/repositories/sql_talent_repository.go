package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"hackswipe-service/internal/domain"
	"hackswipe-service/internal/platform/obs"
)

// SQL-backed implementation of the gig, developer and invitation ports.
type SQLTalentRepository struct {
	DB     *sql.DB
	Driver string
}

func NewSQLTalentRepository(db *sql.DB, driver string) *SQLTalentRepository {
	return &SQLTalentRepository{DB: db, Driver: driver}
}

const upsertDeveloperQuery = `
	INSERT INTO developers (id, name, skills, availability, experience, bio)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (id) DO UPDATE SET
		name = EXCLUDED.name,
		skills = EXCLUDED.skills,
		availability = EXCLUDED.availability,
		experience = EXCLUDED.experience,
		bio = EXCLUDED.bio;
`

func developerArgs(d domain.Developer) ([]any, error) {
	skills, err := encodeList(d.Skills)
	if err != nil {
		return nil, err
	}
	return []any{d.ID, d.Name, skills, d.Availability, d.Experience, d.Bio}, nil
}

func (s *SQLTalentRepository) ListGigs(ctx context.Context) (_ []domain.Gig, err error) {
	defer obs.Time(ctx, "gigs.sql.List")(&err)

	if s.DB == nil {
		return nil, errors.New("sql talent repository: DB is nil")
	}

	query := `
	SELECT
		id, title, event, skills_required, pay_min, pay_max, remote, deadline, description
	FROM freelance_gigs
	ORDER BY id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list gigs: query freelance_gigs table: %w", err)
	}
	defer rows.Close()

	gigs := make([]domain.Gig, 0, 16)
	for rows.Next() {
		var (
			g                domain.Gig
			skills, deadline string
		)
		if err := rows.Scan(
			&g.ID, &g.Title, &g.Event, &skills, &g.Pay.Min, &g.Pay.Max,
			&g.Remote, &deadline, &g.Description,
		); err != nil {
			return nil, fmt.Errorf("list gigs: scan row: %w", err)
		}
		if g.SkillsRequired, err = decodeList(skills); err != nil {
			return nil, fmt.Errorf("list gigs: id=%s skills_required: %w", g.ID, err)
		}
		if g.Deadline, err = domain.ParseDate(deadline); err != nil {
			return nil, fmt.Errorf("list gigs: id=%s deadline: %w", g.ID, err)
		}
		gigs = append(gigs, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list gigs: row iteration: %w", err)
	}

	return gigs, nil
}

const selectDeveloperColumns = `
	SELECT id, name, skills, availability, experience, bio
	FROM developers
`

func (s *SQLTalentRepository) ListDevelopers(ctx context.Context) (_ []domain.Developer, err error) {
	defer obs.Time(ctx, "developers.sql.List")(&err)

	if s.DB == nil {
		return nil, errors.New("sql talent repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, selectDeveloperColumns+` ORDER BY id;`)
	if err != nil {
		return nil, fmt.Errorf("list developers: query developers table: %w", err)
	}
	defer rows.Close()

	devs := make([]domain.Developer, 0, 16)
	for rows.Next() {
		d, err := scanDeveloper(rows)
		if err != nil {
			return nil, fmt.Errorf("list developers: %w", err)
		}
		devs = append(devs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list developers: row iteration: %w", err)
	}

	return devs, nil
}

func (s *SQLTalentRepository) GetDeveloper(ctx context.Context, id string) (_ domain.Developer, err error) {
	defer obs.Time(ctx, "developers.sql.Get")(&err)

	if s.DB == nil {
		return domain.Developer{}, errors.New("sql talent repository: DB is nil")
	}

	row := s.DB.QueryRowContext(ctx, rebind(s.Driver, selectDeveloperColumns+` WHERE id = $1;`), id)
	d, err := scanDeveloper(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Developer{}, fmt.Errorf("get developer id=%s: %w", id, domain.ErrDeveloperNotFound)
	}
	if err != nil {
		return domain.Developer{}, fmt.Errorf("get developer id=%s: %w", id, err)
	}

	return d, nil
}

func scanDeveloper(r rowScanner) (domain.Developer, error) {
	var (
		d      domain.Developer
		skills string
	)
	if err := r.Scan(&d.ID, &d.Name, &skills, &d.Availability, &d.Experience, &d.Bio); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Developer{}, err
		}
		return domain.Developer{}, fmt.Errorf("scan developer row: %w", err)
	}

	var err error
	if d.Skills, err = decodeList(skills); err != nil {
		return domain.Developer{}, fmt.Errorf("developer id=%s skills: %w", d.ID, err)
	}
	return d, nil
}

// CreateInvitation stores inv together with the developer it addresses, so
// developers resolved from a remote source satisfy the foreign key.
func (s *SQLTalentRepository) CreateInvitation(ctx context.Context, d domain.Developer, inv domain.Invitation) (err error) {
	defer obs.Time(ctx, "invitations.sql.Create")(&err)

	if s.DB == nil {
		return errors.New("sql talent repository: DB is nil")
	}

	devArgs, err := developerArgs(d)
	if err != nil {
		return fmt.Errorf("create invitation: developer id=%s: %w", d.ID, err)
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("create invitation: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, rebind(s.Driver, upsertDeveloperQuery), devArgs...); err != nil {
		return fmt.Errorf("create invitation: upsert developer id=%s: %w", d.ID, err)
	}

	query := `
	INSERT INTO invitations (id, developer_id, sender_id, message, created_at)
	VALUES ($1, $2, $3, $4, $5);
	`
	if _, err := tx.ExecContext(
		ctx, rebind(s.Driver, query),
		inv.ID.String(), inv.DeveloperID, inv.SenderID.String(), inv.Message, formatTimestamp(inv.CreatedAt),
	); err != nil {
		return fmt.Errorf("create invitation developer=%s: %w", inv.DeveloperID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("create invitation: commit tx: %w", err)
	}

	return nil
}
