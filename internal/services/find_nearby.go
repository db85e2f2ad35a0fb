package services

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"hackswipe-service/internal/domain"
	"hackswipe-service/internal/geo"
	"hackswipe-service/internal/platform/obs"
	"hackswipe-service/internal/ports"
)

// DefaultRadiusKm is the discovery radius when neither the caller nor the
// configuration names one.
const DefaultRadiusKm = 50.0

type FindNearbyRequest struct {
	// Reference is the caller's position; nil asks the LocationProvider.
	Reference *domain.GeoPoint
	// RadiusKm nil means DefaultRadiusKm.
	RadiusKm *float64
	// FallbackReference is used when the LocationProvider fails.
	FallbackReference domain.GeoPoint
	DefaultRadiusKm   float64
}

type NearbyHackathon struct {
	Hackathon  domain.Hackathon
	DistanceKm float64
	// RoundedKm is DistanceKm rounded to whole kilometres for display.
	RoundedKm int
}

type FindNearbyResult struct {
	Reference  domain.GeoPoint
	RadiusKm   float64
	Hackathons []NearbyHackathon
	Skipped    []string
}

// FindNearbyHackathons ranks hackathons by distance from the caller.
// The location lookup and the venue fetch run concurrently.
func FindNearbyHackathons(
	ctx context.Context,
	req FindNearbyRequest,
	repo ports.HackathonRepository,
	locator ports.LocationProvider,
) (_ FindNearbyResult, err error) {
	defer obs.Time(ctx, "services.FindNearbyHackathons")(&err)

	radius := req.DefaultRadiusKm
	if radius == 0 {
		radius = DefaultRadiusKm
	}
	if req.RadiusKm != nil {
		radius = *req.RadiusKm
	}
	if err := geo.ValidateRadius(radius); err != nil {
		return FindNearbyResult{}, fmt.Errorf("find nearby hackathons: %w", err)
	}

	if req.Reference != nil {
		if err := req.Reference.Validate(); err != nil {
			return FindNearbyResult{}, fmt.Errorf("find nearby hackathons: reference point: %w", err)
		}
	}

	var (
		reference  domain.GeoPoint
		hackathons []domain.Hackathon
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		reference = resolveReference(gctx, req, locator)
		return nil
	})
	g.Go(func() error {
		hs, err := repo.ListHackathons(gctx)
		if err != nil {
			return fmt.Errorf("list hackathons: %w", err)
		}
		hackathons = hs
		return nil
	})
	if err := g.Wait(); err != nil {
		return FindNearbyResult{}, fmt.Errorf("find nearby hackathons: %w", err)
	}

	ranking, err := geo.RankNearby(reference, hackathons, radius)
	if err != nil {
		return FindNearbyResult{}, fmt.Errorf("find nearby hackathons: %w", err)
	}

	if len(ranking.Skipped) > 0 {
		obs.SkippedVenues.Add(float64(len(ranking.Skipped)))
		log.Warn().
			Strs("hackathon_ids", ranking.Skipped).
			Msg("hackathons with invalid coordinates excluded from ranking")
	}

	out := FindNearbyResult{
		Reference:  reference,
		RadiusKm:   radius,
		Hackathons: make([]NearbyHackathon, 0, len(ranking.Venues)),
		Skipped:    ranking.Skipped,
	}
	for _, r := range ranking.Venues {
		out.Hackathons = append(out.Hackathons, NearbyHackathon{
			Hackathon:  r.Venue,
			DistanceKm: r.DistanceKm,
			RoundedKm:  int(math.Round(r.DistanceKm)),
		})
	}

	return out, nil
}

// resolveReference prefers the caller's point, then the LocationProvider,
// then the configured fallback.
func resolveReference(ctx context.Context, req FindNearbyRequest, locator ports.LocationProvider) domain.GeoPoint {
	if req.Reference != nil {
		return *req.Reference
	}
	if locator == nil {
		return req.FallbackReference
	}

	p, err := locator.CurrentLocation(ctx)
	if err == nil {
		err = p.Validate()
	}
	if err != nil {
		log.Warn().Err(err).Msg("location lookup failed, using fallback reference")
		return req.FallbackReference
	}
	return p
}
