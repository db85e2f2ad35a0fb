package geo

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hackswipe-service/internal/domain"
)

type venue struct {
	id  string
	loc domain.GeoPoint
}

func (v venue) VenueKey() string       { return v.id }
func (v venue) Point() domain.GeoPoint { return v.loc }

var (
	sanFrancisco = domain.GeoPoint{Lat: 37.7749, Lon: -122.4194}
	mountainView = domain.GeoPoint{Lat: 37.3861, Lon: -122.0839}
	sanJose      = domain.GeoPoint{Lat: 37.3382, Lon: -121.8863}
)

func ids[V Venue](r []Ranked[V]) []string {
	out := make([]string, 0, len(r))
	for _, v := range r {
		out = append(out, v.Venue.VenueKey())
	}
	return out
}

func TestDistanceKmBayArea(t *testing.T) {
	assert.InDelta(t, 52.37, DistanceKm(sanFrancisco, mountainView), 0.05)
	assert.InDelta(t, 67.57, DistanceKm(sanFrancisco, sanJose), 0.05)
}

func TestDistanceKmSamePointIsZero(t *testing.T) {
	points := []domain.GeoPoint{
		{},
		sanFrancisco,
		{Lat: 90, Lon: 0},
		{Lat: -33.8688, Lon: 151.2093},
	}
	for _, p := range points {
		assert.InDelta(t, 0.0, DistanceKm(p, p), 1e-6, "point %+v", p)
	}
}

func TestDistanceKmSymmetric(t *testing.T) {
	pairs := [][2]domain.GeoPoint{
		{sanFrancisco, sanJose},
		{{Lat: 51.5074, Lon: -0.1278}, {Lat: -33.8688, Lon: 151.2093}},
		{{Lat: 0, Lon: 0}, {Lat: 0, Lon: 180}},
		{{Lat: 89.9, Lon: 10}, {Lat: -89.9, Lon: -170}},
	}
	for _, p := range pairs {
		ab := DistanceKm(p[0], p[1])
		ba := DistanceKm(p[1], p[0])
		assert.InEpsilon(t, ab, ba, 1e-9)
	}
}

func TestDistanceKmAntipodal(t *testing.T) {
	d := DistanceKm(domain.GeoPoint{Lat: 0, Lon: 0}, domain.GeoPoint{Lat: 0, Lon: 180})
	assert.False(t, math.IsNaN(d))
	assert.InDelta(t, math.Pi*EarthRadiusKm, d, 1e-6)
}

func TestRankNearbyRadius(t *testing.T) {
	venues := []venue{
		{id: "B", loc: sanJose},
		{id: "A", loc: mountainView},
	}

	r, err := RankNearby(sanFrancisco, venues, 60)
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, ids(r.Venues))

	r, err = RankNearby(sanFrancisco, venues, 100)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, ids(r.Venues))
	assert.Less(t, r.Venues[0].DistanceKm, r.Venues[1].DistanceKm)
}

func TestRankNearbyInclusiveBoundary(t *testing.T) {
	venues := []venue{{id: "1", loc: mountainView}}
	exact := DistanceKm(sanFrancisco, mountainView)

	r, err := RankNearby(sanFrancisco, venues, exact)
	require.NoError(t, err)
	assert.Len(t, r.Venues, 1)

	r, err = RankNearby(sanFrancisco, venues, math.Nextafter(exact, 0))
	require.NoError(t, err)
	assert.Empty(t, r.Venues)
}

func TestRankNearbyTieBreakByID(t *testing.T) {
	venues := []venue{
		{id: "10", loc: sanFrancisco},
		{id: "8", loc: sanFrancisco},
		{id: "3", loc: sanFrancisco},
		{id: "2", loc: mountainView},
		{id: "abc", loc: sanFrancisco},
	}

	r, err := RankNearby(sanFrancisco, venues, 100)
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "8", "10", "abc", "2"}, ids(r.Venues))
}

func TestRankNearbySortedAscending(t *testing.T) {
	ref := domain.GeoPoint{Lat: 10, Lon: 10}
	venues := make([]venue, 0, 50)
	for i := 0; i < 50; i++ {
		venues = append(venues, venue{
			id:  string(rune('a' + i%26)),
			loc: domain.GeoPoint{Lat: 10 + float64((i*7)%13)/10, Lon: 10 - float64((i*5)%11)/10},
		})
	}

	r, err := RankNearby(ref, venues, 500)
	require.NoError(t, err)
	require.Len(t, r.Venues, 50)
	for i := 0; i+1 < len(r.Venues); i++ {
		assert.LessOrEqual(t, r.Venues[i].DistanceKm, r.Venues[i+1].DistanceKm)
	}
}

func TestRankNearbySkipsInvalidVenues(t *testing.T) {
	venues := []venue{
		{id: "ok", loc: mountainView},
		{id: "bad-lat", loc: domain.GeoPoint{Lat: 120, Lon: 0}},
		{id: "nan", loc: domain.GeoPoint{Lat: math.NaN(), Lon: 0}},
	}

	r, err := RankNearby(sanFrancisco, venues, 100)
	require.NoError(t, err)
	assert.Equal(t, []string{"ok"}, ids(r.Venues))
	assert.Equal(t, []string{"bad-lat", "nan"}, r.Skipped)
}

func TestRankNearbyEmpty(t *testing.T) {
	r, err := RankNearby(domain.GeoPoint{}, []venue{}, 10)
	require.NoError(t, err)
	assert.Empty(t, r.Venues)

	r, err = RankNearby[venue](domain.GeoPoint{}, nil, 10)
	require.NoError(t, err)
	assert.NotNil(t, r.Venues)
	assert.Empty(t, r.Venues)
}

func TestRankNearbyOriginVenue(t *testing.T) {
	r, err := RankNearby(domain.GeoPoint{}, []venue{{id: "1"}}, 1)
	require.NoError(t, err)
	require.Len(t, r.Venues, 1)
	assert.InDelta(t, 0.0, r.Venues[0].DistanceKm, 1e-6)
}

func TestRankNearbyInvalidRadius(t *testing.T) {
	for _, radius := range []float64{0, -5, math.NaN(), math.Inf(1)} {
		_, err := RankNearby(sanFrancisco, []venue{{id: "1", loc: sanJose}}, radius)
		assert.True(t, errors.Is(err, ErrInvalidRadius), "radius %v: err = %v", radius, err)
	}
}

func TestRankNearbyInvalidReference(t *testing.T) {
	_, err := RankNearby(domain.GeoPoint{Lat: 95, Lon: 0}, []venue{{id: "1"}}, 10)
	assert.True(t, errors.Is(err, domain.ErrInvalidCoordinate), "err = %v", err)
}

func TestMeasureWithinReusesDistances(t *testing.T) {
	venues := []venue{
		{id: "sj", loc: sanJose},
		{id: "mv", loc: mountainView},
		{id: "sf", loc: sanFrancisco},
	}

	m, err := Measure(sanFrancisco, venues)
	require.NoError(t, err)

	assert.Equal(t, []string{"sf"}, ids(m.Within(1).Venues))
	assert.Equal(t, []string{"sf", "mv"}, ids(m.Within(60).Venues))
	assert.Equal(t, []string{"sf", "mv", "sj"}, ids(m.Within(100).Venues))
	assert.Empty(t, m.Within(-1).Venues)
}

func TestWithinKeepsSkipped(t *testing.T) {
	venues := []venue{
		{id: "mv", loc: mountainView},
		{id: "nowhere", loc: domain.GeoPoint{Lat: math.NaN(), Lon: math.NaN()}},
	}

	m, err := Measure(sanFrancisco, venues)
	require.NoError(t, err)
	assert.Equal(t, []string{"nowhere"}, m.Skipped)

	narrowed := m.Within(10).Within(100)
	assert.Empty(t, narrowed.Venues)
	assert.Equal(t, []string{"nowhere"}, narrowed.Skipped)
	assert.Equal(t, []string{"mv"}, ids(m.Within(100).Within(60).Venues))
}

func TestCompareIDs(t *testing.T) {
	assert.Equal(t, -1, CompareIDs("2", "10"))
	assert.Equal(t, 1, CompareIDs("10", "2"))
	assert.Equal(t, 0, CompareIDs("7", "7"))
	assert.Equal(t, -1, CompareIDs("10", "1a"))
	assert.Equal(t, -1, CompareIDs("a", "b"))
}

func TestGeohash(t *testing.T) {
	assert.Equal(t, "9q8yyk", Geohash(sanFrancisco, CellPrecision))
	assert.Len(t, Geohash(sanFrancisco, 0), CellPrecision)
}
