package supabase

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hackswipe-service/internal/domain"
)

const hackathonRows = `[
	{"id": 1, "name": "TechCrunch Disrupt Hackathon", "location": "San Francisco, CA",
	 "latitude": 37.7749, "longitude": "-122.4194", "tags": ["AI", "Web3"],
	 "start_date": "2023-09-15", "end_date": "2023-09-17", "application_deadline": "2023-09-01",
	 "max_team_size": 4},
	{"id": "9", "name": "DataHack 2023", "location": "San Francisco, CA",
	 "latitude": null, "tags": null, "start_date": "2023-07-15", "end_date": "2023-07-16"}
]`

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL+"/", "anon-key", 100)
	require.NoError(t, err)
	return c
}

func TestListHackathons(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/hackathons", r.URL.Path)
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer anon-key", r.Header.Get("Authorization"))
		assert.Equal(t, "id.asc", r.URL.Query().Get("order"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(hackathonRows))
	})

	got, err := c.ListHackathons(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, domain.GeoPoint{Lat: 37.7749, Lon: -122.4194}, got[0].Location)
	assert.Equal(t, []string{"AI", "Web3"}, got[0].Tags)
	assert.Equal(t, 4, got[0].MaxTeamSize)

	assert.Equal(t, "9", got[1].ID)
	assert.True(t, math.IsNaN(got[1].Location.Lat))
	assert.True(t, math.IsNaN(got[1].Location.Lon))
	assert.Empty(t, got[1].Tags)
}

func TestGetHackathonNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "eq.42", r.URL.Query().Get("id"))
		_, _ = w.Write([]byte(`[]`))
	})

	_, err := c.GetHackathon(context.Background(), "42")
	assert.True(t, errors.Is(err, domain.ErrHackathonNotFound), "err = %v", err)
}

func TestGetRejectsFilterSyntaxInIDs(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`[]`))
	})
	ctx := context.Background()

	for _, id := range []string{"1,id.neq.0", "1)", "eq.1", "", "1 OR 1"} {
		_, err := c.GetHackathon(ctx, id)
		assert.True(t, errors.Is(err, domain.ErrHackathonNotFound), "id %q: err = %v", id, err)

		_, err = c.GetDeveloper(ctx, id)
		assert.True(t, errors.Is(err, domain.ErrDeveloperNotFound), "id %q: err = %v", id, err)
	}
	assert.Zero(t, calls.Load())

	_, err := c.GetDeveloper(ctx, "dev_9-x")
	assert.True(t, errors.Is(err, domain.ErrDeveloperNotFound), "err = %v", err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`[{"id": "301", "name": "Alex Johnson", "skills": ["Go"], "availability": "Now", "experience": "Senior"}]`))
	})

	devs, err := c.ListDevelopers(context.Background())
	require.NoError(t, err)
	require.Len(t, devs, 1)
	assert.Equal(t, "Alex Johnson", devs[0].Name)
	assert.Equal(t, int32(3), calls.Load())
}

func TestDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, `{"message":"permission denied"}`, http.StatusUnauthorized)
	})

	_, err := c.ListGigs(context.Background())
	require.Error(t, err)

	var he *httpStatusError
	require.True(t, errors.As(err, &he))
	assert.Equal(t, http.StatusUnauthorized, he.Code)
	assert.Equal(t, int32(1), calls.Load())
}

func TestListGigsDecodesPayRange(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id": "201", "title": "RN dev", "skills_required": ["React Native"],
			"pay_range": {"min": 1500, "max": 3000}, "remote": true, "deadline": "2023-10-15"}]`))
	})

	gigs, err := c.ListGigs(context.Background())
	require.NoError(t, err)
	require.Len(t, gigs, 1)
	assert.Equal(t, domain.PayRange{Min: 1500, Max: 3000}, gigs[0].Pay)
	assert.True(t, gigs[0].Remote)
	assert.Equal(t, "2023-10-15", domain.FormatDate(gigs[0].Deadline))
}

func TestRejectsNonArrayBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"rows": []}`))
	})

	_, err := c.ListHackathons(context.Background())
	assert.Error(t, err)
}

func TestNewClientValidation(t *testing.T) {
	_, err := NewClient("", "key", 1)
	assert.Error(t, err)
	_, err = NewClient("https://example.supabase.co", "", 1)
	assert.Error(t, err)
}
