package dataset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hackswipe-service/internal/domain"
)

func TestDefaultDataset(t *testing.T) {
	ds, err := Default()
	require.NoError(t, err)

	assert.Len(t, ds.Hackathons, 10)
	assert.Len(t, ds.Memberships, 4)
	assert.Len(t, ds.Gigs, 5)
	assert.Len(t, ds.Developers, 7)
	require.Len(t, ds.Profiles, 1)
	assert.Equal(t, "Alex Johnson", ds.Profiles[0].Name)
	assert.Contains(t, ds.Profiles[0].Skills, "UI/UX")
	assert.True(t, ds.Profiles[0].Available)

	first := ds.Hackathons[0]
	assert.Equal(t, "1", first.ID)
	assert.Equal(t, domain.GeoPoint{Lat: 37.7749, Lon: -122.4194}, first.Location)
	assert.Equal(t, "2023-09-17", domain.FormatDate(first.EndDate))

	team := ds.Memberships[0]
	assert.Equal(t, domain.JoinTeam, team.JoinType)
	assert.Equal(t, []string{"teammate1@example.com", "teammate2@example.com"}, team.TeamMembers)
}

func TestMissingCoordinatesAreInvalid(t *testing.T) {
	ds, err := Parse([]byte(`{"hackathons":[{"id":"9","name":"No venue","start_date":"2023-07-15"}]}`))
	require.NoError(t, err)
	require.Len(t, ds.Hackathons, 1)

	loc := ds.Hackathons[0].Location
	assert.True(t, math.IsNaN(loc.Lat))
	assert.ErrorIs(t, loc.Validate(), domain.ErrInvalidCoordinate)
}

func TestParseRejectsBadRows(t *testing.T) {
	cases := map[string]string{
		"empty id":      `{"hackathons":[{"id":" "}]}`,
		"bad date":      `{"hackathons":[{"id":"1","start_date":"15/09/2023"}]}`,
		"bad uuid":      `{"memberships":[{"id":"101","user_id":"x","joined_at":"2023-08-15T10:30:00Z"}]}`,
		"developer id":  `{"developers":[{"name":"nobody"}]}`,
		"profile name":  `{"profiles":[{"user_id":"123e4567-e89b-12d3-a456-426614174000","name":" ","updated_at":"2023-08-01T00:00:00Z"}]}`,
		"profile user":  `{"profiles":[{"user_id":"me","name":"A","updated_at":"2023-08-01T00:00:00Z"}]}`,
		"malformed doc": `{"hackathons":`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}
