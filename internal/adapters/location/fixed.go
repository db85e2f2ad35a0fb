// Package location resolves the device-independent reference point used
// for discovery when a request carries no coordinates.
package location

import (
	"context"
	"fmt"

	"hackswipe-service/internal/domain"
)

// Fixed always reports the same point.
type Fixed struct {
	Point domain.GeoPoint
}

func NewFixed(lat, lon float64) (*Fixed, error) {
	p, err := domain.NewGeoPoint(lat, lon)
	if err != nil {
		return nil, fmt.Errorf("fixed location: %w", err)
	}
	return &Fixed{Point: p}, nil
}

func (f *Fixed) CurrentLocation(ctx context.Context) (domain.GeoPoint, error) {
	if err := ctx.Err(); err != nil {
		return domain.GeoPoint{}, err
	}
	return f.Point, nil
}
