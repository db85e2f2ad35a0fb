package dto

import (
	"math"
	"time"

	"hackswipe-service/internal/domain"
	"hackswipe-service/internal/geo"
)

type HackathonResponse struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	Location            string   `json:"location"`
	Latitude            *float64 `json:"latitude"`
	Longitude           *float64 `json:"longitude"`
	Cell                string   `json:"cell,omitempty"`
	Tags                []string `json:"tags"`
	StartDate           string   `json:"start_date"`
	EndDate             string   `json:"end_date"`
	ApplicationDeadline string   `json:"application_deadline"`
	MaxTeamSize         int      `json:"max_team_size"`
}

type ListHackathonsResponse struct {
	Hackathons []HackathonResponse `json:"hackathons"`
}

type NearbyHackathonResponse struct {
	HackathonResponse
	DistanceKm float64 `json:"distance_km"`
	// Distance is DistanceKm rounded to whole kilometres.
	Distance int `json:"distance"`
}

type PointResponse struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type NearbyResponse struct {
	Reference  PointResponse             `json:"reference"`
	RadiusKm   float64                   `json:"radius_km"`
	Hackathons []NearbyHackathonResponse `json:"hackathons"`
	Skipped    []string                  `json:"skipped"`
}

type JoinRequest struct {
	UserID      string   `json:"user_id"`
	JoinType    string   `json:"join_type"`
	TeamName    string   `json:"team_name"`
	TeamMembers []string `json:"team_members"`
}

type MembershipResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	HackathonID string    `json:"hackathon_id"`
	JoinType    string    `json:"join_type"`
	TeamName    *string   `json:"team_name"`
	TeamMembers []string  `json:"team_members"`
	JoinedAt    time.Time `json:"joined_at"`
}

type UserEventResponse struct {
	MembershipResponse
	Hackathon HackathonResponse `json:"hackathon"`
}

type UserEventsResponse struct {
	Upcoming []UserEventResponse `json:"upcoming"`
	Past     []UserEventResponse `json:"past"`
}

// Hackathon renders h. Unknown coordinates are rendered as null and get no cell.
func Hackathon(h domain.Hackathon) HackathonResponse {
	res := HackathonResponse{
		ID:                  h.ID,
		Name:                h.Name,
		Location:            h.LocationName,
		Tags:                h.Tags,
		StartDate:           domain.FormatDate(h.StartDate),
		EndDate:             domain.FormatDate(h.EndDate),
		ApplicationDeadline: domain.FormatDate(h.ApplicationDeadline),
		MaxTeamSize:         h.MaxTeamSize,
	}
	if res.Tags == nil {
		res.Tags = []string{}
	}
	if h.Location.Validate() == nil {
		res.Latitude = finite(h.Location.Lat)
		res.Longitude = finite(h.Location.Lon)
		res.Cell = geo.Geohash(h.Location, geo.CellPrecision)
	}
	return res
}

func Membership(m domain.Membership) MembershipResponse {
	res := MembershipResponse{
		ID:          m.ID.String(),
		UserID:      m.UserID.String(),
		HackathonID: m.HackathonID,
		JoinType:    string(m.JoinType),
		TeamMembers: m.TeamMembers,
		JoinedAt:    m.JoinedAt,
	}
	if m.TeamName != "" {
		name := m.TeamName
		res.TeamName = &name
	}
	if res.TeamMembers == nil {
		res.TeamMembers = []string{}
	}
	return res
}

func UserEvents(events []domain.UserEvent) []UserEventResponse {
	out := make([]UserEventResponse, 0, len(events))
	for _, ev := range events {
		out = append(out, UserEventResponse{
			MembershipResponse: Membership(ev.Membership),
			Hackathon:          Hackathon(ev.Hackathon),
		})
	}
	return out
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
