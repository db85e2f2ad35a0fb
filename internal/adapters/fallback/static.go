package fallback

import (
	"context"
	"fmt"
	"slices"

	"hackswipe-service/internal/dataset"
	"hackswipe-service/internal/domain"
)

// Static serves hackathons, gigs and developers from an in-memory data set.
// It is read-only and safe for concurrent use.
type Static struct {
	ds dataset.Dataset
}

func NewStatic(ds dataset.Dataset) *Static {
	return &Static{ds: ds}
}

// NewDefaultStatic serves the data set compiled into the binary.
func NewDefaultStatic() (*Static, error) {
	ds, err := dataset.Default()
	if err != nil {
		return nil, fmt.Errorf("static fallback: %w", err)
	}
	return NewStatic(ds), nil
}

func (s *Static) ListHackathons(ctx context.Context) ([]domain.Hackathon, error) {
	return slices.Clone(s.ds.Hackathons), nil
}

func (s *Static) GetHackathon(ctx context.Context, id string) (domain.Hackathon, error) {
	for _, h := range s.ds.Hackathons {
		if h.ID == id {
			return h, nil
		}
	}
	return domain.Hackathon{}, fmt.Errorf("static hackathon id=%s: %w", id, domain.ErrHackathonNotFound)
}

func (s *Static) ListGigs(ctx context.Context) ([]domain.Gig, error) {
	return slices.Clone(s.ds.Gigs), nil
}

func (s *Static) ListDevelopers(ctx context.Context) ([]domain.Developer, error) {
	return slices.Clone(s.ds.Developers), nil
}

func (s *Static) GetDeveloper(ctx context.Context, id string) (domain.Developer, error) {
	for _, d := range s.ds.Developers {
		if d.ID == id {
			return d, nil
		}
	}
	return domain.Developer{}, fmt.Errorf("static developer id=%s: %w", id, domain.ErrDeveloperNotFound)
}
