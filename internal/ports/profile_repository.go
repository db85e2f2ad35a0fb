package ports

import (
	"context"
	"hackswipe-service/internal/domain"

	"github.com/google/uuid"
)

// Port: persistence of user profiles.
type ProfileRepository interface {
	// Returns domain.ErrProfileNotFound when the user has no profile.
	GetProfile(ctx context.Context, userID uuid.UUID) (domain.Profile, error)
	// Insert or replace the profile keyed by p.UserID.
	SaveProfile(ctx context.Context, p domain.Profile) error
}
