package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"hackswipe-service/internal/api/dto"
	"hackswipe-service/internal/ports"
	"hackswipe-service/internal/services"
)

// TalentHandler serves the freelance gig board and the developer directory.
type TalentHandler struct {
	Gigs        ports.GigRepository
	Developers  ports.DeveloperRepository
	Invitations ports.InvitationRepository
}

func (h *TalentHandler) ListGigs(w http.ResponseWriter, r *http.Request) {
	filter := services.GigFilter{Skills: queryList(r, "skill")}
	if raw := strings.TrimSpace(r.URL.Query().Get("remote")); raw != "" {
		remote, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "remote must be true or false")
			return
		}
		filter.Remote = &remote
	}

	listing, err := services.ListGigs(r.Context(), filter, h.Gigs)
	if err != nil {
		writeServiceError(w, r, "list gigs", err)
		return
	}

	res := dto.ListGigsResponse{
		Gigs:   make([]dto.GigResponse, 0, len(listing.Gigs)),
		Skills: listing.Skills,
	}
	for _, g := range listing.Gigs {
		res.Gigs = append(res.Gigs, dto.Gig(g))
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *TalentHandler) ListDevelopers(w http.ResponseWriter, r *http.Request) {
	devs, err := services.ListDevelopers(r.Context(), services.DeveloperFilter{
		Skills:       queryList(r, "skill"),
		Experience:   queryList(r, "experience"),
		Availability: queryList(r, "availability"),
	}, h.Developers)
	if err != nil {
		writeServiceError(w, r, "list developers", err)
		return
	}

	res := dto.ListDevelopersResponse{Developers: make([]dto.DeveloperResponse, 0, len(devs))}
	for _, d := range devs {
		res.Developers = append(res.Developers, dto.Developer(d))
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *TalentHandler) Invite(w http.ResponseWriter, r *http.Request) {
	var req dto.InvitationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	inv, err := services.InviteDeveloper(r.Context(), services.InviteDeveloperRequest{
		DeveloperID: chi.URLParam(r, "id"),
		SenderID:    req.SenderID,
		Message:     req.Message,
	}, h.Developers, h.Invitations)
	if err != nil {
		writeServiceError(w, r, "invite developer", err)
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.Invitation(inv))
}
