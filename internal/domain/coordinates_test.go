package domain

import (
	"errors"
	"math"
	"testing"
)

func TestGeoPointValidate(t *testing.T) {
	tests := []struct {
		name    string
		p       GeoPoint
		wantErr bool
	}{
		{"san francisco", GeoPoint{Lat: 37.7749, Lon: -122.4194}, false},
		{"origin", GeoPoint{}, false},
		{"north pole", GeoPoint{Lat: 90, Lon: 0}, false},
		{"antimeridian", GeoPoint{Lat: 0, Lon: -180}, false},
		{"latitude too large", GeoPoint{Lat: 95, Lon: 0}, true},
		{"latitude too small", GeoPoint{Lat: -90.0001, Lon: 0}, true},
		{"longitude too large", GeoPoint{Lat: 0, Lon: 180.5}, true},
		{"nan latitude", GeoPoint{Lat: math.NaN(), Lon: 0}, true},
		{"infinite longitude", GeoPoint{Lat: 0, Lon: math.Inf(-1)}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.p.Validate()
			if tc.wantErr && !errors.Is(err, ErrInvalidCoordinate) {
				t.Fatalf("err = %v, want ErrInvalidCoordinate", err)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2023-09-15")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if FormatDate(d) != "2023-09-15" {
		t.Errorf("round trip = %q", FormatDate(d))
	}

	ts, err := ParseDate("2023-08-15T10:30:00Z")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ts.Hour() != 10 {
		t.Errorf("hour = %d, want 10", ts.Hour())
	}

	zero, err := ParseDate("")
	if err != nil || !zero.IsZero() {
		t.Errorf("empty date = %v, %v; want zero, nil", zero, err)
	}
}

func TestNewGeoPoint(t *testing.T) {
	p, err := NewGeoPoint(37.7749, -122.4194)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Lat != 37.7749 || p.Lon != -122.4194 {
		t.Fatalf("p = %+v", p)
	}

	p, err = NewGeoPoint(91, 0)
	if !errors.Is(err, ErrInvalidCoordinate) {
		t.Fatalf("err = %v, want ErrInvalidCoordinate", err)
	}
	if p != (GeoPoint{}) {
		t.Fatalf("invalid input returned %+v, want zero point", p)
	}
}
