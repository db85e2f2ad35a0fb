package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"hackswipe-service/internal/api/dto"
	"hackswipe-service/internal/domain"
	"hackswipe-service/internal/ports"
	"hackswipe-service/internal/services"
)

// HackathonHandler serves hackathon discovery and joins.
type HackathonHandler struct {
	Repo              ports.HackathonRepository
	Memberships       ports.MembershipRepository
	Locator           ports.LocationProvider
	FallbackReference domain.GeoPoint
	DefaultRadiusKm   float64
	Now               func() time.Time
}

func (h *HackathonHandler) List(w http.ResponseWriter, r *http.Request) {
	hs, err := h.Repo.ListHackathons(r.Context())
	if err != nil {
		writeServiceError(w, r, "list hackathons", err)
		return
	}

	res := dto.ListHackathonsResponse{Hackathons: make([]dto.HackathonResponse, 0, len(hs))}
	for _, x := range hs {
		res.Hackathons = append(res.Hackathons, dto.Hackathon(x))
	}
	writeJSON(w, r, http.StatusOK, res)
}

// Nearby ranks hackathons around ?lat=&lon= (or the server's reference
// point when both are absent) within ?radius_km=.
func (h *HackathonHandler) Nearby(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := services.FindNearbyRequest{
		FallbackReference: h.FallbackReference,
		DefaultRadiusKm:   h.DefaultRadiusKm,
	}

	latRaw, lonRaw := strings.TrimSpace(q.Get("lat")), strings.TrimSpace(q.Get("lon"))
	switch {
	case latRaw == "" && lonRaw == "":
	case latRaw == "" || lonRaw == "":
		writeError(w, r, http.StatusBadRequest, "lat and lon must be given together")
		return
	default:
		lat, err := strconv.ParseFloat(latRaw, 64)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "lat must be a number")
			return
		}
		lon, err := strconv.ParseFloat(lonRaw, 64)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "lon must be a number")
			return
		}
		req.Reference = &domain.GeoPoint{Lat: lat, Lon: lon}
	}

	if raw := strings.TrimSpace(q.Get("radius_km")); raw != "" {
		radius, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "radius_km must be a number")
			return
		}
		req.RadiusKm = &radius
	}

	result, err := services.FindNearbyHackathons(r.Context(), req, h.Repo, h.Locator)
	if err != nil {
		writeServiceError(w, r, "find nearby hackathons", err)
		return
	}

	res := dto.NearbyResponse{
		Reference:  dto.PointResponse{Lat: result.Reference.Lat, Lon: result.Reference.Lon},
		RadiusKm:   result.RadiusKm,
		Hackathons: make([]dto.NearbyHackathonResponse, 0, len(result.Hackathons)),
		Skipped:    result.Skipped,
	}
	for _, n := range result.Hackathons {
		res.Hackathons = append(res.Hackathons, dto.NearbyHackathonResponse{
			HackathonResponse: dto.Hackathon(n.Hackathon),
			DistanceKm:        n.DistanceKm,
			Distance:          n.RoundedKm,
		})
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *HackathonHandler) Join(w http.ResponseWriter, r *http.Request) {
	var req dto.JoinRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	m, err := services.JoinHackathon(r.Context(), services.JoinHackathonRequest{
		UserID:      req.UserID,
		HackathonID: chi.URLParam(r, "id"),
		JoinType:    req.JoinType,
		TeamName:    req.TeamName,
		TeamMembers: req.TeamMembers,
		Now:         now(h.Now),
	}, h.Repo, h.Memberships)
	if err != nil {
		writeServiceError(w, r, "join hackathon", err)
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.Membership(m))
}
