// Package fallback serves reads from a secondary source when the primary
// one fails.
package fallback

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"hackswipe-service/internal/domain"
	"hackswipe-service/internal/platform/obs"
	"hackswipe-service/internal/ports"
)

// HackathonRepository reads from Primary and, on any error other than
// ErrHackathonNotFound, retries the read against Secondary.
type HackathonRepository struct {
	Primary   ports.HackathonRepository
	Secondary ports.HackathonRepository
}

func (r *HackathonRepository) ListHackathons(ctx context.Context) ([]domain.Hackathon, error) {
	hs, err := r.Primary.ListHackathons(ctx)
	if err == nil {
		return hs, nil
	}
	served("hackathons", err)
	return r.Secondary.ListHackathons(ctx)
}

func (r *HackathonRepository) GetHackathon(ctx context.Context, id string) (domain.Hackathon, error) {
	h, err := r.Primary.GetHackathon(ctx, id)
	if err == nil || errors.Is(err, domain.ErrHackathonNotFound) {
		return h, err
	}
	served("hackathons", err)
	return r.Secondary.GetHackathon(ctx, id)
}

type GigRepository struct {
	Primary   ports.GigRepository
	Secondary ports.GigRepository
}

func (r *GigRepository) ListGigs(ctx context.Context) ([]domain.Gig, error) {
	gs, err := r.Primary.ListGigs(ctx)
	if err == nil {
		return gs, nil
	}
	served("gigs", err)
	return r.Secondary.ListGigs(ctx)
}

type DeveloperRepository struct {
	Primary   ports.DeveloperRepository
	Secondary ports.DeveloperRepository
}

func (r *DeveloperRepository) ListDevelopers(ctx context.Context) ([]domain.Developer, error) {
	ds, err := r.Primary.ListDevelopers(ctx)
	if err == nil {
		return ds, nil
	}
	served("developers", err)
	return r.Secondary.ListDevelopers(ctx)
}

func (r *DeveloperRepository) GetDeveloper(ctx context.Context, id string) (domain.Developer, error) {
	d, err := r.Primary.GetDeveloper(ctx, id)
	if err == nil || errors.Is(err, domain.ErrDeveloperNotFound) {
		return d, err
	}
	served("developers", err)
	return r.Secondary.GetDeveloper(ctx, id)
}

func served(source string, cause error) {
	obs.FallbackServed.WithLabelValues(source).Inc()
	log.Warn().Err(cause).Str("source", source).Msg("primary read failed, serving fallback")
}
