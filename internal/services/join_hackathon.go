package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"hackswipe-service/internal/domain"
	"hackswipe-service/internal/platform/obs"
	"hackswipe-service/internal/ports"
)

type JoinHackathonRequest struct {
	UserID      string
	HackathonID string
	JoinType    string
	TeamName    string
	TeamMembers []string
	Now         time.Time
}

// JoinHackathon records the user's participation in a hackathon.
func JoinHackathon(
	ctx context.Context,
	req JoinHackathonRequest,
	hackathons ports.HackathonRepository,
	memberships ports.MembershipRepository,
) (_ domain.Membership, err error) {
	defer obs.Time(ctx, "services.JoinHackathon")(&err)

	userID, err := uuid.Parse(strings.TrimSpace(req.UserID))
	if err != nil {
		return domain.Membership{}, fmt.Errorf("join hackathon: %w: user_id must be a UUID", domain.ErrInvalidJoin)
	}

	hackathonID := strings.TrimSpace(req.HackathonID)
	if hackathonID == "" {
		return domain.Membership{}, fmt.Errorf("join hackathon: %w: hackathon id is required", domain.ErrInvalidJoin)
	}

	h, err := hackathons.GetHackathon(ctx, hackathonID)
	if err != nil {
		return domain.Membership{}, fmt.Errorf("join hackathon: %w", err)
	}

	now := req.Now
	if now.IsZero() {
		now = time.Now()
	}

	m, err := domain.NewMembership(
		userID, h,
		domain.JoinType(strings.ToLower(strings.TrimSpace(req.JoinType))),
		req.TeamName, req.TeamMembers, now,
	)
	if err != nil {
		return domain.Membership{}, fmt.Errorf("join hackathon: %w", err)
	}

	if err := memberships.CreateMembership(ctx, h, m); err != nil {
		return domain.Membership{}, fmt.Errorf("join hackathon: %w", err)
	}

	return m, nil
}
