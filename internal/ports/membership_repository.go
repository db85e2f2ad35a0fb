package ports

import (
	"context"
	"hackswipe-service/internal/domain"

	"github.com/google/uuid"
)

// Port: persistence of user_hackathons join records.
type MembershipRepository interface {
	// Insert a membership for hackathon h, recording h alongside it so the
	// event stays listable; returns domain.ErrAlreadyJoined when the user
	// already joined the same hackathon.
	CreateMembership(ctx context.Context, h domain.Hackathon, m domain.Membership) error
	// Return the user's memberships with their hackathons, in no particular order.
	ListUserEvents(ctx context.Context, userID uuid.UUID) ([]domain.UserEvent, error)
}
