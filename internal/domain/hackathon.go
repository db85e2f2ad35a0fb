package domain

import (
	"errors"
	"time"
)

var ErrHackathonNotFound = errors.New("hackathon not found")

// Represents a hackathon event and the venue it is held at.
// Dates are calendar days; EndDate is the last day of the event.
type Hackathon struct {
	ID                  string
	Name                string
	LocationName        string
	Location            GeoPoint
	Tags                []string
	StartDate           time.Time
	EndDate             time.Time
	ApplicationDeadline time.Time
	MaxTeamSize         int
}

// VenueKey and Point let a Hackathon be ranked by proximity.
func (h Hackathon) VenueKey() string { return h.ID }
func (h Hackathon) Point() GeoPoint { return h.Location }

// Ended reports whether EndDate lies before now.
// A hackathon without an end date never ends.
func (h Hackathon) Ended(now time.Time) bool {
	if h.EndDate.IsZero() {
		return false
	}
	return h.EndDate.Before(now)
}

// DateLayout is the calendar-day format used by seeds and the remote store.
const DateLayout = "2006-01-02"

// ParseDate parses a calendar day, accepting full RFC 3339 timestamps too.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// FormatDate renders a calendar day, or "" for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}
