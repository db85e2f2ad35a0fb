package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"hackswipe-service/internal/domain"
	"hackswipe-service/internal/platform/obs"
	"hackswipe-service/internal/ports"
)

// ProfileView is a profile with the number of hackathons the user joined.
type ProfileView struct {
	Profile          domain.Profile
	HackathonsJoined int
}

type UpdateProfileRequest struct {
	UserID    string
	Name      string
	Role      string
	Location  string
	Skills    []string
	Available bool
	Bio       string
	Now       time.Time
}

// GetProfile loads the profile and counts the user's memberships concurrently.
func GetProfile(
	ctx context.Context,
	userID string,
	profiles ports.ProfileRepository,
	memberships ports.MembershipRepository,
) (_ ProfileView, err error) {
	defer obs.Time(ctx, "services.GetProfile")(&err)

	id, err := parseUserID(userID)
	if err != nil {
		return ProfileView{}, fmt.Errorf("get profile: %w", err)
	}

	var view ProfileView
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := profiles.GetProfile(gctx, id)
		if err != nil {
			return err
		}
		view.Profile = p
		return nil
	})
	g.Go(func() error {
		events, err := memberships.ListUserEvents(gctx, id)
		if err != nil {
			return fmt.Errorf("count memberships: %w", err)
		}
		view.HackathonsJoined = len(events)
		return nil
	})
	if err := g.Wait(); err != nil {
		return ProfileView{}, fmt.Errorf("get profile: %w", err)
	}

	return view, nil
}

// UpdateProfile replaces the user's profile, creating it when absent.
func UpdateProfile(
	ctx context.Context,
	req UpdateProfileRequest,
	profiles ports.ProfileRepository,
	memberships ports.MembershipRepository,
) (_ ProfileView, err error) {
	defer obs.Time(ctx, "services.UpdateProfile")(&err)

	id, err := parseUserID(req.UserID)
	if err != nil {
		return ProfileView{}, fmt.Errorf("update profile: %w", err)
	}

	p, err := domain.NewProfile(domain.Profile{
		UserID:    id,
		Name:      req.Name,
		Role:      req.Role,
		Location:  req.Location,
		Skills:    req.Skills,
		Available: req.Available,
		Bio:       req.Bio,
		UpdatedAt: nowOr(req.Now),
	})
	if err != nil {
		return ProfileView{}, fmt.Errorf("update profile: %w", err)
	}

	if err := profiles.SaveProfile(ctx, p); err != nil {
		return ProfileView{}, fmt.Errorf("update profile: %w", err)
	}

	return GetProfile(ctx, req.UserID, profiles, memberships)
}

// AddProfileSkill appends a skill to an existing profile. Adding a listed
// skill leaves the profile unchanged.
func AddProfileSkill(
	ctx context.Context,
	userID, skill string,
	now time.Time,
	profiles ports.ProfileRepository,
	memberships ports.MembershipRepository,
) (_ ProfileView, err error) {
	defer obs.Time(ctx, "services.AddProfileSkill")(&err)

	return editSkills(ctx, userID, now, profiles, memberships, func(p *domain.Profile) (bool, error) {
		return p.AddSkill(skill)
	})
}

// RemoveProfileSkill drops a skill from an existing profile. Removing an
// unlisted skill leaves the profile unchanged.
func RemoveProfileSkill(
	ctx context.Context,
	userID, skill string,
	now time.Time,
	profiles ports.ProfileRepository,
	memberships ports.MembershipRepository,
) (_ ProfileView, err error) {
	defer obs.Time(ctx, "services.RemoveProfileSkill")(&err)

	if strings.TrimSpace(skill) == "" {
		return ProfileView{}, fmt.Errorf("remove profile skill: %w: skill is required", domain.ErrInvalidProfile)
	}
	return editSkills(ctx, userID, now, profiles, memberships, func(p *domain.Profile) (bool, error) {
		return p.RemoveSkill(skill), nil
	})
}

func editSkills(
	ctx context.Context,
	userID string,
	now time.Time,
	profiles ports.ProfileRepository,
	memberships ports.MembershipRepository,
	edit func(*domain.Profile) (bool, error),
) (ProfileView, error) {
	id, err := parseUserID(userID)
	if err != nil {
		return ProfileView{}, fmt.Errorf("edit profile skills: %w", err)
	}

	p, err := profiles.GetProfile(ctx, id)
	if err != nil {
		return ProfileView{}, fmt.Errorf("edit profile skills: %w", err)
	}

	changed, err := edit(&p)
	if err != nil {
		return ProfileView{}, fmt.Errorf("edit profile skills: %w", err)
	}
	if changed {
		p.UpdatedAt = nowOr(now)
		if err := profiles.SaveProfile(ctx, p); err != nil {
			return ProfileView{}, fmt.Errorf("edit profile skills: %w", err)
		}
	}

	return GetProfile(ctx, userID, profiles, memberships)
}

func parseUserID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q is not a UUID", domain.ErrInvalidUserID, raw)
	}
	return id, nil
}

func nowOr(t time.Time) time.Time {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC()
}
