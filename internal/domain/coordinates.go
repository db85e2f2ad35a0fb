package domain

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidCoordinate reports a latitude/longitude that is non-finite or
// outside geographic bounds.
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// Immutable geographic point in decimal degrees.
type GeoPoint struct {
	Lat float64
	Lon float64
}

// NewGeoPoint returns a validated point.
func NewGeoPoint(lat, lon float64) (GeoPoint, error) {
	p := GeoPoint{Lat: lat, Lon: lon}
	if err := p.Validate(); err != nil {
		return GeoPoint{}, err
	}
	return p, nil
}

// Validate requires finite values with lat in [-90,90] and lon in [-180,180].
func (p GeoPoint) Validate() error {
	if !finite(p.Lat) || p.Lat < -90 || p.Lat > 90 {
		return fmt.Errorf("%w: latitude %v out of range [-90, 90]", ErrInvalidCoordinate, p.Lat)
	}
	if !finite(p.Lon) || p.Lon < -180 || p.Lon > 180 {
		return fmt.Errorf("%w: longitude %v out of range [-180, 180]", ErrInvalidCoordinate, p.Lon)
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
