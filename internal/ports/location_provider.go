package ports

import (
	"context"
	"hackswipe-service/internal/domain"
)

// Contract for resolving the reference point used for discovery when the
// caller does not supply one.
type LocationProvider interface {
	CurrentLocation(ctx context.Context) (domain.GeoPoint, error)
}
