package services

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"hackswipe-service/internal/domain"
	"hackswipe-service/internal/geo"
	"hackswipe-service/internal/platform/obs"
	"hackswipe-service/internal/ports"
)

type GigFilter struct {
	// Skills matches gigs requiring any of the listed skills.
	Skills []string
	// Remote nil matches both remote and on-site gigs.
	Remote *bool
}

type GigListing struct {
	Gigs []domain.Gig
	// Skills is every distinct required skill across all gigs, sorted.
	Skills []string
}

// ListGigs filters gigs and orders them by deadline, earliest first.
func ListGigs(ctx context.Context, f GigFilter, repo ports.GigRepository) (_ GigListing, err error) {
	defer obs.Time(ctx, "services.ListGigs")(&err)

	gigs, err := repo.ListGigs(ctx)
	if err != nil {
		return GigListing{}, fmt.Errorf("list gigs: %w", err)
	}

	want := cleanList(f.Skills)
	out := GigListing{Gigs: []domain.Gig{}, Skills: []string{}}
	seen := map[string]struct{}{}
	for _, g := range gigs {
		for _, s := range g.SkillsRequired {
			if _, ok := seen[s]; !ok {
				seen[s] = struct{}{}
				out.Skills = append(out.Skills, s)
			}
		}

		if f.Remote != nil && g.Remote != *f.Remote {
			continue
		}
		if !domain.HasAnySkill(g.SkillsRequired, want) {
			continue
		}
		out.Gigs = append(out.Gigs, g)
	}

	slices.Sort(out.Skills)
	slices.SortStableFunc(out.Gigs, func(a, b domain.Gig) int {
		if c := a.Deadline.Compare(b.Deadline); c != 0 {
			return c
		}
		return geo.CompareIDs(a.ID, b.ID)
	})

	return out, nil
}

type DeveloperFilter struct {
	Skills       []string
	Experience   []string
	Availability []string
}

// ListDevelopers returns the developers matching every non-empty filter.
// Each filter matches any of its values.
func ListDevelopers(ctx context.Context, f DeveloperFilter, repo ports.DeveloperRepository) (_ []domain.Developer, err error) {
	defer obs.Time(ctx, "services.ListDevelopers")(&err)

	devs, err := repo.ListDevelopers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list developers: %w", err)
	}

	skills := cleanList(f.Skills)
	experience := cleanList(f.Experience)
	availability := cleanList(f.Availability)

	out := make([]domain.Developer, 0, len(devs))
	for _, d := range devs {
		if !domain.HasAnySkill(d.Skills, skills) {
			continue
		}
		if len(experience) > 0 && !containsFold(experience, d.Experience) {
			continue
		}
		if len(availability) > 0 && !containsFold(availability, d.Availability) {
			continue
		}
		out = append(out, d)
	}

	slices.SortStableFunc(out, func(a, b domain.Developer) int {
		return geo.CompareIDs(a.ID, b.ID)
	})

	return out, nil
}

type InviteDeveloperRequest struct {
	DeveloperID string
	SenderID    string
	Message     string
	Now         time.Time
}

// InviteDeveloper stores an invitation for an existing developer.
func InviteDeveloper(
	ctx context.Context,
	req InviteDeveloperRequest,
	developers ports.DeveloperRepository,
	invitations ports.InvitationRepository,
) (_ domain.Invitation, err error) {
	defer obs.Time(ctx, "services.InviteDeveloper")(&err)

	sender, err := uuid.Parse(strings.TrimSpace(req.SenderID))
	if err != nil {
		return domain.Invitation{}, fmt.Errorf("invite developer: %w: sender_id must be a UUID", domain.ErrInvalidInvitation)
	}

	msg := strings.TrimSpace(req.Message)
	if utf8.RuneCountInString(msg) > domain.MaxInvitationMessage {
		return domain.Invitation{}, fmt.Errorf(
			"invite developer: %w: message exceeds %d characters",
			domain.ErrInvalidInvitation, domain.MaxInvitationMessage,
		)
	}

	dev, err := developers.GetDeveloper(ctx, strings.TrimSpace(req.DeveloperID))
	if err != nil {
		return domain.Invitation{}, fmt.Errorf("invite developer: %w", err)
	}

	now := req.Now
	if now.IsZero() {
		now = time.Now()
	}

	inv := domain.Invitation{
		ID:          uuid.New(),
		DeveloperID: dev.ID,
		SenderID:    sender,
		Message:     msg,
		CreatedAt:   now.UTC(),
	}
	if err := invitations.CreateInvitation(ctx, dev, inv); err != nil {
		return domain.Invitation{}, fmt.Errorf("invite developer: %w", err)
	}

	return inv, nil
}

// cleanList trims entries and drops blanks.
func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func containsFold(list []string, v string) bool {
	for _, s := range list {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}
