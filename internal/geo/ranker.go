package geo

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"sort"
	"strconv"
	"strings"

	"hackswipe-service/internal/domain"
)

// ErrInvalidRadius reports a radius that is not a positive finite number.
var ErrInvalidRadius = errors.New("invalid radius")

// Venue is anything with a stable id and a location.
type Venue interface {
	VenueKey() string
	Point() domain.GeoPoint
}

// Ranked pairs a venue with its distance from the reference point.
type Ranked[V Venue] struct {
	Venue      V
	DistanceKm float64
}

// Ranking holds venues sorted by distance. Skipped lists the ids of venues
// excluded because their coordinates were invalid. A Ranking from Measure
// covers every valid venue and can be narrowed by several radii with Within
// without recomputing distances.
type Ranking[V Venue] struct {
	Venues  []Ranked[V]
	Skipped []string
}

// RankNearby returns the venues within radiusKm of reference, nearest first.
// Ties on distance are ordered by venue id.
func RankNearby[V Venue](reference domain.GeoPoint, venues []V, radiusKm float64) (Ranking[V], error) {
	if err := ValidateRadius(radiusKm); err != nil {
		return Ranking[V]{}, err
	}

	m, err := Measure(reference, venues)
	if err != nil {
		return Ranking[V]{}, err
	}

	return m.Within(radiusKm), nil
}

// Measure computes the distance from reference to each venue once and sorts
// the result. Venues with invalid coordinates are skipped, not failed.
func Measure[V Venue](reference domain.GeoPoint, venues []V) (Ranking[V], error) {
	if err := reference.Validate(); err != nil {
		return Ranking[V]{}, fmt.Errorf("reference point: %w", err)
	}

	out := Ranking[V]{
		Venues:  make([]Ranked[V], 0, len(venues)),
		Skipped: []string{},
	}
	for _, v := range venues {
		if err := v.Point().Validate(); err != nil {
			out.Skipped = append(out.Skipped, v.VenueKey())
			continue
		}
		out.Venues = append(out.Venues, Ranked[V]{
			Venue:      v,
			DistanceKm: DistanceKm(reference, v.Point()),
		})
	}

	slices.SortStableFunc(out.Venues, func(a, b Ranked[V]) int {
		if a.DistanceKm < b.DistanceKm {
			return -1
		}
		if a.DistanceKm > b.DistanceKm {
			return 1
		}
		return CompareIDs(a.Venue.VenueKey(), b.Venue.VenueKey())
	})

	return out, nil
}

// Within returns the venues at most radiusKm away (inclusive). The returned
// slice shares its backing array with m. An invalid radius yields no venues.
func (m Ranking[V]) Within(radiusKm float64) Ranking[V] {
	if ValidateRadius(radiusKm) != nil {
		return Ranking[V]{Venues: []Ranked[V]{}, Skipped: m.Skipped}
	}

	n := sort.Search(len(m.Venues), func(i int) bool {
		return m.Venues[i].DistanceKm > radiusKm
	})
	return Ranking[V]{Venues: m.Venues[:n:n], Skipped: m.Skipped}
}

func ValidateRadius(radiusKm float64) error {
	if math.IsNaN(radiusKm) || math.IsInf(radiusKm, 0) || radiusKm <= 0 {
		return fmt.Errorf("%w: radius_km must be a positive finite number, got %v", ErrInvalidRadius, radiusKm)
	}
	return nil
}

// CompareIDs orders numeric ids by value ahead of all other ids, which
// are ordered lexically.
func CompareIDs(a, b string) int {
	na, errA := strconv.ParseUint(a, 10, 64)
	nb, errB := strconv.ParseUint(b, 10, 64)
	switch {
	case errA == nil && errB == nil:
		if na != nb {
			if na < nb {
				return -1
			}
			return 1
		}
		return strings.Compare(a, b)
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	}
	return strings.Compare(a, b)
}
