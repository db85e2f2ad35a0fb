package ports

import (
	"context"
	"hackswipe-service/internal/domain"
)

type GigRepository interface {
	ListGigs(ctx context.Context) ([]domain.Gig, error)
}

type DeveloperRepository interface {
	ListDevelopers(ctx context.Context) ([]domain.Developer, error)
	// Returns domain.ErrDeveloperNotFound when absent.
	GetDeveloper(ctx context.Context, id string) (domain.Developer, error)
}

type InvitationRepository interface {
	// Store inv addressed to developer d, recording d alongside it.
	CreateInvitation(ctx context.Context, d domain.Developer, inv domain.Invitation) error
}
