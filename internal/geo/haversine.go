// Package geo ranks venues by great-circle distance from a reference point.
package geo

import (
	"math"

	"hackswipe-service/internal/domain"
)

// EarthRadiusKm is the mean Earth radius.
const EarthRadiusKm = 6371.0

// DistanceKm returns the Haversine great-circle distance between two points.
// Inputs are not validated.
func DistanceKm(from, to domain.GeoPoint) float64 {
	dLat := radians(to.Lat - from.Lat)
	dLon := radians(to.Lon - from.Lon)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	a := sinLat*sinLat + math.Cos(radians(from.Lat))*math.Cos(radians(to.Lat))*sinLon*sinLon

	// Rounding can push a just outside [0,1].
	a = math.Max(0, math.Min(1, a))

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKm * c
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
