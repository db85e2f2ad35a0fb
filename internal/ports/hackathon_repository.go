package ports

import (
	"context"
	"hackswipe-service/internal/domain"
)

// Port: a boundary for retrieving Hackathon entities from a data source.
type HackathonRepository interface {
	// Retrieve all hackathons that can be ranked for discovery.
	ListHackathons(ctx context.Context) ([]domain.Hackathon, error)
	// Retrieve one hackathon; returns domain.ErrHackathonNotFound when absent.
	GetHackathon(ctx context.Context, id string) (domain.Hackathon, error)
}
