package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"hackswipe-service/internal/api/handlers"
	"hackswipe-service/internal/domain"
	"hackswipe-service/internal/ports"
)

// Deps are the ports the HTTP API needs. Metrics is optional.
type Deps struct {
	Hackathons        ports.HackathonRepository
	Memberships       ports.MembershipRepository
	Gigs              ports.GigRepository
	Developers        ports.DeveloperRepository
	Invitations       ports.InvitationRepository
	Profiles          ports.ProfileRepository
	Locator           ports.LocationProvider
	FallbackReference domain.GeoPoint
	DefaultRadiusKm   float64
	Metrics           http.Handler
	Now               func() time.Time
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(chimw.RequestID)
	r.Use(requestContext)
	r.Use(loggingMiddleware)
	r.Use(chimw.Recoverer)

	hackathons := &handlers.HackathonHandler{
		Repo:              d.Hackathons,
		Memberships:       d.Memberships,
		Locator:           d.Locator,
		FallbackReference: d.FallbackReference,
		DefaultRadiusKm:   d.DefaultRadiusKm,
		Now:               d.Now,
	}
	users := &handlers.UserHandler{Memberships: d.Memberships, Profiles: d.Profiles, Now: d.Now}
	talent := &handlers.TalentHandler{
		Gigs:        d.Gigs,
		Developers:  d.Developers,
		Invitations: d.Invitations,
	}

	r.Get("/health", handlers.Health)

	r.Route("/hackathons", func(r chi.Router) {
		r.Get("/", hackathons.List)
		r.Get("/nearby", hackathons.Nearby)
		r.Post("/{id}/join", hackathons.Join)
	})
	r.Route("/users/{id}", func(r chi.Router) {
		r.Get("/events", users.Events)
		r.Get("/profile", users.Profile)
		r.Put("/profile", users.UpdateProfile)
		r.Post("/profile/skills", users.AddSkill)
		r.Delete("/profile/skills", users.RemoveSkill)
	})

	r.Get("/gigs", talent.ListGigs)
	r.Get("/developers", talent.ListDevelopers)
	r.Post("/developers/{id}/invitations", talent.Invite)

	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics)
	}

	return r
}
