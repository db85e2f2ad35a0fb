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

// SQL-backed implementation of the MembershipRepository port (user_hackathons).
type SQLMembershipRepository struct {
	DB     *sql.DB
	Driver string
}

func NewSQLMembershipRepository(db *sql.DB, driver string) *SQLMembershipRepository {
	return &SQLMembershipRepository{DB: db, Driver: driver}
}

const insertMembershipQuery = `
	INSERT INTO user_hackathons (
		id, user_id, hackathon_id, join_type, team_name, team_members, joined_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (user_id, hackathon_id) DO NOTHING;
`

func membershipArgs(m domain.Membership) ([]any, error) {
	members, err := encodeList(m.TeamMembers)
	if err != nil {
		return nil, err
	}
	teamName := sql.NullString{String: m.TeamName, Valid: m.TeamName != ""}
	return []any{
		m.ID.String(), m.UserID.String(), m.HackathonID, string(m.JoinType),
		teamName, members, formatTimestamp(m.JoinedAt),
	}, nil
}

// CreateMembership stores m and upserts h in the same transaction, so a
// hackathon resolved from a remote source is listed with the user's events.
func (s *SQLMembershipRepository) CreateMembership(ctx context.Context, h domain.Hackathon, m domain.Membership) (err error) {
	defer obs.Time(ctx, "memberships.sql.Create")(&err)

	if s.DB == nil {
		return errors.New("sql membership repository: DB is nil")
	}
	if h.ID != m.HackathonID {
		return fmt.Errorf("create membership: hackathon id %q does not match membership hackathon %q", h.ID, m.HackathonID)
	}

	hArgs, err := hackathonArgs(h)
	if err != nil {
		return fmt.Errorf("create membership: hackathon id=%s: %w", h.ID, err)
	}
	args, err := membershipArgs(m)
	if err != nil {
		return fmt.Errorf("create membership: %w", err)
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("create membership: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, rebind(s.Driver, upsertHackathonQuery), hArgs...); err != nil {
		return fmt.Errorf("create membership: upsert hackathon id=%s: %w", h.ID, err)
	}

	res, err := tx.ExecContext(ctx, rebind(s.Driver, insertMembershipQuery), args...)
	if err != nil {
		return fmt.Errorf("create membership: insert user_hackathons: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("create membership: rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("create membership user=%s hackathon=%s: %w", m.UserID, m.HackathonID, domain.ErrAlreadyJoined)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("create membership: commit tx: %w", err)
	}

	return nil
}

func (s *SQLMembershipRepository) ListUserEvents(ctx context.Context, userID uuid.UUID) (_ []domain.UserEvent, err error) {
	defer obs.Time(ctx, "memberships.sql.ListUserEvents")(&err)

	if s.DB == nil {
		return nil, errors.New("sql membership repository: DB is nil")
	}

	query := `
	SELECT
		m.id, m.user_id, m.join_type, m.team_name, m.team_members, m.joined_at,
		h.id, h.name, h.location, h.latitude, h.longitude, h.tags,
		h.start_date, h.end_date, h.application_deadline, h.max_team_size
	FROM user_hackathons m
	JOIN hackathons h ON h.id = m.hackathon_id
	WHERE m.user_id = $1
	ORDER BY m.joined_at;
	`
	rows, err := s.DB.QueryContext(ctx, rebind(s.Driver, query), userID.String())
	if err != nil {
		return nil, fmt.Errorf("list user events: query user_hackathons: %w", err)
	}
	defer rows.Close()

	events := make([]domain.UserEvent, 0, 8)
	for rows.Next() {
		ev, err := scanUserEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("list user events: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list user events: row iteration: %w", err)
	}

	return events, nil
}

func scanUserEvent(r rowScanner) (domain.UserEvent, error) {
	var (
		m                         domain.Membership
		h                         domain.Hackathon
		id, userID, joinType      string
		teamName                  sql.NullString
		members, joinedAt         string
		lat, lon                  sql.NullFloat64
		tags                      string
		startDate, endDate, apply string
	)
	if err := r.Scan(
		&id, &userID, &joinType, &teamName, &members, &joinedAt,
		&h.ID, &h.Name, &h.LocationName, &lat, &lon, &tags,
		&startDate, &endDate, &apply, &h.MaxTeamSize,
	); err != nil {
		return domain.UserEvent{}, fmt.Errorf("scan user event row: %w", err)
	}

	var err error
	if m.ID, err = uuid.Parse(id); err != nil {
		return domain.UserEvent{}, fmt.Errorf("membership id %q: %w", id, err)
	}
	if m.UserID, err = uuid.Parse(userID); err != nil {
		return domain.UserEvent{}, fmt.Errorf("membership id=%s user_id: %w", id, err)
	}
	if m.TeamMembers, err = decodeList(members); err != nil {
		return domain.UserEvent{}, fmt.Errorf("membership id=%s team_members: %w", id, err)
	}
	if m.JoinedAt, err = parseTimestamp(joinedAt); err != nil {
		return domain.UserEvent{}, fmt.Errorf("membership id=%s joined_at: %w", id, err)
	}
	m.HackathonID = h.ID
	m.JoinType = domain.JoinType(joinType)
	m.TeamName = teamName.String

	h.Location = domain.GeoPoint{Lat: coordOrNaN(lat), Lon: coordOrNaN(lon)}
	if h.Tags, err = decodeList(tags); err != nil {
		return domain.UserEvent{}, fmt.Errorf("hackathon id=%s tags: %w", h.ID, err)
	}
	if h.StartDate, err = domain.ParseDate(startDate); err != nil {
		return domain.UserEvent{}, fmt.Errorf("hackathon id=%s start_date: %w", h.ID, err)
	}
	if h.EndDate, err = domain.ParseDate(endDate); err != nil {
		return domain.UserEvent{}, fmt.Errorf("hackathon id=%s end_date: %w", h.ID, err)
	}
	if h.ApplicationDeadline, err = domain.ParseDate(apply); err != nil {
		return domain.UserEvent{}, fmt.Errorf("hackathon id=%s application_deadline: %w", h.ID, err)
	}

	return domain.UserEvent{Membership: m, Hackathon: h}, nil
}
