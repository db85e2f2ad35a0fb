package cache

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"hackswipe-service/internal/domain"
	"hackswipe-service/internal/ports"
)

const (
	hackathonListKey   = "hackswipe:hackathons:all"
	hackathonKeyPrefix = "hackswipe:hackathons:"
)

// CachedHackathonRepository serves hackathon reads from a cache and fills it
// from Repo on a miss. Cache failures are logged and fall through to Repo.
type CachedHackathonRepository struct {
	Repo  ports.HackathonRepository
	Cache ports.Cache
	TTL   time.Duration
}

func (c *CachedHackathonRepository) ListHackathons(ctx context.Context) ([]domain.Hackathon, error) {
	var cached []hackathonEntry
	if ok, err := c.Cache.Get(ctx, hackathonListKey, &cached); err != nil {
		log.Warn().Err(err).Str("key", hackathonListKey).Msg("cache read failed")
	} else if ok {
		out := make([]domain.Hackathon, 0, len(cached))
		for _, e := range cached {
			out = append(out, e.toDomain())
		}
		return out, nil
	}

	hs, err := c.Repo.ListHackathons(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]hackathonEntry, 0, len(hs))
	for _, h := range hs {
		entries = append(entries, entryFrom(h))
	}
	if err := c.Cache.Set(ctx, hackathonListKey, entries, c.TTL); err != nil {
		log.Warn().Err(err).Str("key", hackathonListKey).Msg("cache write failed")
	}

	return hs, nil
}

func (c *CachedHackathonRepository) GetHackathon(ctx context.Context, id string) (domain.Hackathon, error) {
	key := hackathonKeyPrefix + id

	var cached hackathonEntry
	if ok, err := c.Cache.Get(ctx, key, &cached); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache read failed")
	} else if ok {
		return cached.toDomain(), nil
	}

	h, err := c.Repo.GetHackathon(ctx, id)
	if err != nil {
		return domain.Hackathon{}, err
	}

	if err := c.Cache.Set(ctx, key, entryFrom(h), c.TTL); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
	return h, nil
}

// hackathonEntry is the cached form of a Hackathon. Unknown coordinates
// (NaN) are stored as null since JSON has no NaN.
type hackathonEntry struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	LocationName        string    `json:"location"`
	Lat                 *float64  `json:"lat"`
	Lon                 *float64  `json:"lon"`
	Tags                []string  `json:"tags"`
	StartDate           time.Time `json:"start_date"`
	EndDate             time.Time `json:"end_date"`
	ApplicationDeadline time.Time `json:"application_deadline"`
	MaxTeamSize         int       `json:"max_team_size"`
}

func entryFrom(h domain.Hackathon) hackathonEntry {
	return hackathonEntry{
		ID:                  h.ID,
		Name:                h.Name,
		LocationName:        h.LocationName,
		Lat:                 finitePtr(h.Location.Lat),
		Lon:                 finitePtr(h.Location.Lon),
		Tags:                h.Tags,
		StartDate:           h.StartDate,
		EndDate:             h.EndDate,
		ApplicationDeadline: h.ApplicationDeadline,
		MaxTeamSize:         h.MaxTeamSize,
	}
}

func (e hackathonEntry) toDomain() domain.Hackathon {
	tags := e.Tags
	if tags == nil {
		tags = []string{}
	}
	return domain.Hackathon{
		ID:                  e.ID,
		Name:                e.Name,
		LocationName:        e.LocationName,
		Location:            domain.GeoPoint{Lat: orNaN(e.Lat), Lon: orNaN(e.Lon)},
		Tags:                tags,
		StartDate:           e.StartDate,
		EndDate:             e.EndDate,
		ApplicationDeadline: e.ApplicationDeadline,
		MaxTeamSize:         e.MaxTeamSize,
	}
}

func finitePtr(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func orNaN(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}
