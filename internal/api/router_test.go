package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hackswipe-service/internal/adapters/location"
	"hackswipe-service/internal/adapters/repositories"
	"hackswipe-service/internal/api/dto"
	"hackswipe-service/internal/dataset"
	"hackswipe-service/internal/domain"
	"hackswipe-service/internal/platform/db"
	"hackswipe-service/internal/platform/obs"
)

const demoUser = "123e4567-e89b-12d3-a456-426614174000"

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	conn, err := db.Open(db.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, repositories.InitSchema(conn))
	ds, err := dataset.Default()
	require.NoError(t, err)
	require.NoError(t, repositories.Seed(conn, db.DriverSQLite, ds))

	sf := domain.GeoPoint{Lat: 37.7749, Lon: -122.4194}
	locator, err := location.NewFixed(sf.Lat, sf.Lon)
	require.NoError(t, err)

	talent := repositories.NewSQLTalentRepository(conn, db.DriverSQLite)
	return NewRouter(Deps{
		Hackathons:        repositories.NewSQLHackathonRepository(conn, db.DriverSQLite),
		Memberships:       repositories.NewSQLMembershipRepository(conn, db.DriverSQLite),
		Gigs:              talent,
		Developers:        talent,
		Invitations:       talent,
		Profiles:          repositories.NewSQLProfileRepository(conn, db.DriverSQLite),
		Locator:           locator,
		FallbackReference: sf,
		DefaultRadiusKm:   50,
		Metrics:           obs.MetricsHandler(obs.InitRegistry()),
		Now:               func() time.Time { return time.Date(2023, 9, 1, 0, 0, 0, 0, time.UTC) },
	})
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]string](t, rec)["error"]
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = do(t, newTestRouter(t), http.MethodPost, "/health", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestListHackathons(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodGet, "/hackathons", "")
	require.Equal(t, http.StatusOK, rec.Code)

	res := decode[dto.ListHackathonsResponse](t, rec)
	require.Len(t, res.Hackathons, 10)
	assert.Equal(t, "9q8yyk", res.Hackathons[0].Cell)

	var dataHack dto.HackathonResponse
	for _, h := range res.Hackathons {
		if h.ID == "9" {
			dataHack = h
		}
	}
	assert.Nil(t, dataHack.Latitude)
	assert.Empty(t, dataHack.Cell)
}

func TestNearby(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/hackathons/nearby?lat=37.7749&lon=-122.4194&radius_km=60", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	res := decode[dto.NearbyResponse](t, rec)
	var ids []string
	for _, x := range res.Hackathons {
		ids = append(ids, x.ID)
	}
	assert.Equal(t, []string{"1", "3", "8", "7", "6", "4", "2"}, ids)
	assert.Equal(t, 52, res.Hackathons[6].Distance)
	assert.InDelta(t, 52.37, res.Hackathons[6].DistanceKm, 0.05)
	assert.ElementsMatch(t, []string{"9", "10"}, res.Skipped)
	assert.Equal(t, 60.0, res.RadiusKm)
}

func TestNearbyDefaultsToServerReference(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodGet, "/hackathons/nearby", "")
	require.Equal(t, http.StatusOK, rec.Code)

	res := decode[dto.NearbyResponse](t, rec)
	assert.Equal(t, 50.0, res.RadiusKm)
	assert.Equal(t, dto.PointResponse{Lat: 37.7749, Lon: -122.4194}, res.Reference)
	assert.Len(t, res.Hackathons, 6)
}

func TestNearbyValidation(t *testing.T) {
	h := newTestRouter(t)

	tests := []struct {
		query string
		want  string
	}{
		{"?lat=95&lon=0", "invalid coordinate"},
		{"?lat=37.7&lon=-122.4&radius_km=0", "invalid radius"},
		{"?lat=37.7&lon=-122.4&radius_km=-5", "invalid radius"},
		{"?lat=abc&lon=0", "lat must be a number"},
		{"?lat=37.7", "lat and lon must be given together"},
		{"?radius_km=far", "radius_km must be a number"},
	}
	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			rec := do(t, h, http.MethodGet, "/hackathons/nearby"+tc.query, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, errorOf(t, rec), tc.want)
		})
	}
}

func TestJoinHackathon(t *testing.T) {
	h := newTestRouter(t)
	user := "0b6f6b1e-2c8a-4a59-9c1a-6f1d2f3e4a5b"

	body := `{"user_id":"` + user + `","join_type":"team","team_name":"Gophers","team_members":["a@example.com",""]}`
	rec := do(t, h, http.MethodPost, "/hackathons/1/join", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	m := decode[dto.MembershipResponse](t, rec)
	assert.Equal(t, "1", m.HackathonID)
	require.NotNil(t, m.TeamName)
	assert.Equal(t, "Gophers", *m.TeamName)
	assert.Equal(t, []string{"a@example.com"}, m.TeamMembers)

	rec = do(t, h, http.MethodPost, "/hackathons/1/join", body)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, h, http.MethodPost, "/hackathons/404/join", `{"user_id":"`+user+`","join_type":"solo"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodPost, "/hackathons/2/join", `{"user_id":"`+user+`","join_type":"team"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, errorOf(t, rec), "team_name")

	rec = do(t, h, http.MethodPost, "/hackathons/2/join", `{"user_id":"`+user+`","role":"captain"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid json body", errorOf(t, rec))

	rec = do(t, h, http.MethodGet, "/users/"+user+"/events", "")
	require.Equal(t, http.StatusOK, rec.Code)
	ev := decode[dto.UserEventsResponse](t, rec)
	require.Len(t, ev.Upcoming, 1)
	assert.Equal(t, "TechCrunch Disrupt Hackathon", ev.Upcoming[0].Hackathon.Name)
}

func TestUserEvents(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/users/"+demoUser+"/events", "")
	require.Equal(t, http.StatusOK, rec.Code)

	ev := decode[dto.UserEventsResponse](t, rec)
	require.Len(t, ev.Upcoming, 2)
	require.Len(t, ev.Past, 2)
	assert.Equal(t, "2", ev.Upcoming[0].HackathonID)
	assert.Equal(t, "5", ev.Upcoming[1].HackathonID)
	assert.Equal(t, "9", ev.Past[0].HackathonID)
	assert.Nil(t, ev.Upcoming[1].TeamName)

	rec = do(t, h, http.MethodGet, "/users/42/events", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGigsAndDevelopers(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/gigs?remote=false", "")
	require.Equal(t, http.StatusOK, rec.Code)
	gigs := decode[dto.ListGigsResponse](t, rec)
	require.Len(t, gigs.Gigs, 1)
	assert.Equal(t, "203", gigs.Gigs[0].ID)
	assert.Contains(t, gigs.Skills, "Solidity")

	rec = do(t, h, http.MethodGet, "/gigs?remote=maybe", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/developers?skill=Python,Swift&availability=Now", "")
	require.Equal(t, http.StatusOK, rec.Code)
	devs := decode[dto.ListDevelopersResponse](t, rec)
	require.Len(t, devs.Developers, 2)
	assert.Equal(t, "303", devs.Developers[0].ID)
	assert.Equal(t, "307", devs.Developers[1].ID)
}

func TestInviteDeveloper(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/developers/301/invitations", `{"sender_id":"`+demoUser+`","message":"Join us"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	inv := decode[dto.InvitationResponse](t, rec)
	assert.Equal(t, "301", inv.DeveloperID)
	assert.Equal(t, "Join us", inv.Message)

	rec = do(t, h, http.MethodPost, "/developers/999/invitations", `{"sender_id":"`+demoUser+`"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodPost, "/developers/301/invitations", `{"sender_id":"me"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestRouter(t)
	do(t, h, http.MethodGet, "/health", "")

	rec := do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `hackswipe_http_requests_total{method="GET",route="/health",status="200"}`)
}

func TestProfile(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/users/"+demoUser+"/profile", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	p := decode[dto.ProfileResponse](t, rec)
	assert.Equal(t, "Alex Johnson", p.Name)
	assert.Equal(t, 4, p.HackathonsJoined)
	assert.Contains(t, p.Skills, "UI/UX")

	rec = do(t, h, http.MethodPost, "/users/"+demoUser+"/profile/skills", `{"skill":" GraphQL "}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	p = decode[dto.ProfileResponse](t, rec)
	assert.Equal(t, "GraphQL", p.Skills[len(p.Skills)-1])
	assert.Equal(t, time.Date(2023, 9, 1, 0, 0, 0, 0, time.UTC), p.UpdatedAt)

	rec = do(t, h, http.MethodDelete, "/users/"+demoUser+"/profile/skills?skill=UI%2FUX", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	p = decode[dto.ProfileResponse](t, rec)
	assert.NotContains(t, p.Skills, "UI/UX")
	assert.Contains(t, p.Skills, "GraphQL")

	rec = do(t, h, http.MethodPost, "/users/"+demoUser+"/profile/skills", `{"skill":"  "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, errorOf(t, rec), "invalid profile")
}

func TestUpdateProfile(t *testing.T) {
	h := newTestRouter(t)
	user := "9b2f4f0e-5d7c-4f0a-9e43-1c2d3e4f5a6b"

	rec := do(t, h, http.MethodGet, "/users/"+user+"/profile", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "profile not found", errorOf(t, rec))

	rec = do(t, h, http.MethodPost, "/users/"+user+"/profile/skills", `{"skill":"Go"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	body := `{"name":"Jane Developer","role":"Full Stack Developer","skills":["Go","Go",""],"available":true}`
	rec = do(t, h, http.MethodPut, "/users/"+user+"/profile", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	p := decode[dto.ProfileResponse](t, rec)
	assert.Equal(t, user, p.UserID)
	assert.Equal(t, []string{"Go"}, p.Skills)
	assert.True(t, p.Available)
	assert.Zero(t, p.HackathonsJoined)

	rec = do(t, h, http.MethodGet, "/users/"+user+"/profile", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Jane Developer", decode[dto.ProfileResponse](t, rec).Name)

	rec = do(t, h, http.MethodPut, "/users/"+user+"/profile", `{"name":" "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPut, "/users/"+user+"/profile", `{"name":"A","karma":9}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/users/nope/profile", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
