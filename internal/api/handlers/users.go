package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hackswipe-service/internal/api/dto"
	"hackswipe-service/internal/ports"
	"hackswipe-service/internal/services"
)

// UserHandler serves a user's joined events and profile.
type UserHandler struct {
	Memberships ports.MembershipRepository
	Profiles    ports.ProfileRepository
	// Now defaults to time.Now.
	Now func() time.Time
}

func (h *UserHandler) Events(w http.ResponseWriter, r *http.Request) {
	events, err := services.ListUserEvents(r.Context(), chi.URLParam(r, "id"), now(h.Now), h.Memberships)
	if err != nil {
		writeServiceError(w, r, "list user events", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.UserEventsResponse{
		Upcoming: dto.UserEvents(events.Upcoming),
		Past:     dto.UserEvents(events.Past),
	})
}

func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	view, err := services.GetProfile(r.Context(), chi.URLParam(r, "id"), h.Profiles, h.Memberships)
	if err != nil {
		writeServiceError(w, r, "get profile", err)
		return
	}
	writeJSON(w, r, http.StatusOK, dto.Profile(view.Profile, view.HackathonsJoined))
}

// UpdateProfile replaces the whole profile.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req dto.ProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	view, err := services.UpdateProfile(r.Context(), services.UpdateProfileRequest{
		UserID:    chi.URLParam(r, "id"),
		Name:      req.Name,
		Role:      req.Role,
		Location:  req.Location,
		Skills:    req.Skills,
		Available: req.Available,
		Bio:       req.Bio,
		Now:       now(h.Now),
	}, h.Profiles, h.Memberships)
	if err != nil {
		writeServiceError(w, r, "update profile", err)
		return
	}
	writeJSON(w, r, http.StatusOK, dto.Profile(view.Profile, view.HackathonsJoined))
}

func (h *UserHandler) AddSkill(w http.ResponseWriter, r *http.Request) {
	var req dto.SkillRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	view, err := services.AddProfileSkill(r.Context(), chi.URLParam(r, "id"), req.Skill, now(h.Now), h.Profiles, h.Memberships)
	if err != nil {
		writeServiceError(w, r, "add profile skill", err)
		return
	}
	writeJSON(w, r, http.StatusOK, dto.Profile(view.Profile, view.HackathonsJoined))
}

// RemoveSkill takes the skill from ?skill= since skills may contain "/".
func (h *UserHandler) RemoveSkill(w http.ResponseWriter, r *http.Request) {
	skill := r.URL.Query().Get("skill")
	view, err := services.RemoveProfileSkill(r.Context(), chi.URLParam(r, "id"), skill, now(h.Now), h.Profiles, h.Memberships)
	if err != nil {
		writeServiceError(w, r, "remove profile skill", err)
		return
	}
	writeJSON(w, r, http.StatusOK, dto.Profile(view.Profile, view.HackathonsJoined))
}
