package domain

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidJoin   = errors.New("invalid join request")
	ErrAlreadyJoined = errors.New("already joined this hackathon")
	ErrInvalidUserID = errors.New("invalid user id")
)

type JoinType string

const (
	JoinSolo JoinType = "solo"
	JoinTeam JoinType = "team"
)

// MaxTeamMembers caps the invited members of a team, not counting the
// joining user.
const MaxTeamMembers = 4

// Records a user's participation in a hackathon, either solo or as a team.
// Solo memberships carry no team name or members.
type Membership struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	HackathonID string
	JoinType    JoinType
	TeamName    string
	TeamMembers []string
	JoinedAt    time.Time
}

// A membership joined with the hackathon it refers to.
type UserEvent struct {
	Membership Membership
	Hackathon  Hackathon
}

// NewMembership validates a join request against the hackathon and builds
// the membership record. Blank member entries are dropped.
func NewMembership(
	userID uuid.UUID,
	h Hackathon,
	joinType JoinType,
	teamName string,
	members []string,
	now time.Time,
) (Membership, error) {
	if userID == uuid.Nil {
		return Membership{}, fmt.Errorf("%w: user_id is required", ErrInvalidJoin)
	}

	m := Membership{
		ID:          uuid.New(),
		UserID:      userID,
		HackathonID: h.ID,
		JoinType:    joinType,
		TeamMembers: []string{},
		JoinedAt:    now.UTC(),
	}

	switch joinType {
	case JoinSolo:
		return m, nil
	case JoinTeam:
	default:
		return Membership{}, fmt.Errorf("%w: join_type must be %q or %q", ErrInvalidJoin, JoinSolo, JoinTeam)
	}

	m.TeamName = strings.TrimSpace(teamName)
	if m.TeamName == "" {
		return Membership{}, fmt.Errorf("%w: team_name is required for team joins", ErrInvalidJoin)
	}

	seen := make(map[string]struct{}, len(members))
	for _, raw := range members {
		email := strings.ToLower(strings.TrimSpace(raw))
		if email == "" {
			continue
		}
		if _, err := mail.ParseAddress(email); err != nil {
			return Membership{}, fmt.Errorf("%w: team member %q is not a valid email", ErrInvalidJoin, raw)
		}
		if _, ok := seen[email]; ok {
			continue
		}
		seen[email] = struct{}{}
		m.TeamMembers = append(m.TeamMembers, email)
	}

	if len(m.TeamMembers) > MaxTeamMembers {
		return Membership{}, fmt.Errorf("%w: at most %d team members allowed", ErrInvalidJoin, MaxTeamMembers)
	}
	// The joining user counts toward the hackathon's team size.
	if h.MaxTeamSize > 0 && len(m.TeamMembers)+1 > h.MaxTeamSize {
		return Membership{}, fmt.Errorf(
			"%w: team of %d exceeds max team size %d",
			ErrInvalidJoin, len(m.TeamMembers)+1, h.MaxTeamSize,
		)
	}

	return m, nil
}
