package geo

import (
	"strings"

	"hackswipe-service/internal/domain"
)

// CellPrecision is the geohash length used to publish a venue's coarse cell
// (roughly 1.2 km x 0.6 km).
const CellPrecision = 6

const geohashAlphabet = "0123456789bcdefghjkmnpqrstuvwxyz"

// Geohash encodes p with the standard base32 geohash algorithm.
func Geohash(p domain.GeoPoint, precision int) string {
	if precision < 1 {
		precision = CellPrecision
	}

	latLo, latHi := -90.0, 90.0
	lonLo, lonHi := -180.0, 180.0

	var sb strings.Builder
	sb.Grow(precision)

	bit, ch := 0, 0
	lonTurn := true
	for sb.Len() < precision {
		if lonTurn {
			mid := (lonLo + lonHi) / 2
			if p.Lon > mid {
				ch |= 1 << (4 - bit)
				lonLo = mid
			} else {
				lonHi = mid
			}
		} else {
			mid := (latLo + latHi) / 2
			if p.Lat > mid {
				ch |= 1 << (4 - bit)
				latLo = mid
			} else {
				latHi = mid
			}
		}
		lonTurn = !lonTurn

		bit++
		if bit == 5 {
			sb.WriteByte(geohashAlphabet[ch])
			bit, ch = 0, 0
		}
	}

	return sb.String()
}
