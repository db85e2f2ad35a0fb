// Package dataset parses the HackSwipe demo data set. The same file seeds
// the database and backs the static fallback repositories.
package dataset

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"hackswipe-service/internal/domain"

	"github.com/google/uuid"
)

//go:embed hackswipe.json
var embedded []byte

type hackathonRow struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	Location            string   `json:"location"`
	Latitude            *float64 `json:"latitude"`
	Longitude           *float64 `json:"longitude"`
	Tags                []string `json:"tags"`
	StartDate           string   `json:"start_date"`
	EndDate             string   `json:"end_date"`
	ApplicationDeadline string   `json:"application_deadline"`
	MaxTeamSize         int      `json:"max_team_size"`
}

type membershipRow struct {
	ID          string   `json:"id"`
	UserID      string   `json:"user_id"`
	HackathonID string   `json:"hackathon_id"`
	JoinType    string   `json:"join_type"`
	TeamName    string   `json:"team_name"`
	TeamMembers []string `json:"team_members"`
	JoinedAt    string   `json:"joined_at"`
}

type gigRow struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Event          string   `json:"event"`
	SkillsRequired []string `json:"skills_required"`
	PayRange       struct {
		Min int `json:"min"`
		Max int `json:"max"`
	} `json:"pay_range"`
	Remote      bool   `json:"remote"`
	Deadline    string `json:"deadline"`
	Description string `json:"description"`
}

type developerRow struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Skills       []string `json:"skills"`
	Availability string   `json:"availability"`
	Experience   string   `json:"experience"`
	Bio          string   `json:"bio"`
}

type profileRow struct {
	UserID    string   `json:"user_id"`
	Name      string   `json:"name"`
	Role      string   `json:"role"`
	Location  string   `json:"location"`
	Skills    []string `json:"skills"`
	Available bool     `json:"available"`
	Bio       string   `json:"bio"`
	UpdatedAt string   `json:"updated_at"`
}

type file struct {
	Hackathons  []hackathonRow  `json:"hackathons"`
	Memberships []membershipRow `json:"memberships"`
	Gigs        []gigRow        `json:"gigs"`
	Developers  []developerRow  `json:"developers"`
	Profiles    []profileRow    `json:"profiles"`
}

// Dataset is the decoded demo data. Hackathons without coordinates carry
// NaN lat/lon so proximity ranking skips them.
type Dataset struct {
	Hackathons  []domain.Hackathon
	Memberships []domain.Membership
	Gigs        []domain.Gig
	Developers  []domain.Developer
	Profiles    []domain.Profile
}

// Default returns the data set compiled into the binary.
func Default() (Dataset, error) {
	return Parse(embedded)
}

// Load reads a data set from a JSON file.
func Load(path string) (Dataset, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("load dataset: read %q: %w", path, err)
	}
	return Parse(b)
}

func Parse(b []byte) (Dataset, error) {
	var f file
	if err := json.Unmarshal(b, &f); err != nil {
		return Dataset{}, fmt.Errorf("parse dataset: decode json: %w", err)
	}

	var ds Dataset
	for i, row := range f.Hackathons {
		h, err := row.toDomain()
		if err != nil {
			return Dataset{}, fmt.Errorf("parse dataset: hackathon at index %d: %w", i, err)
		}
		ds.Hackathons = append(ds.Hackathons, h)
	}
	for i, row := range f.Memberships {
		m, err := row.toDomain()
		if err != nil {
			return Dataset{}, fmt.Errorf("parse dataset: membership at index %d: %w", i, err)
		}
		ds.Memberships = append(ds.Memberships, m)
	}
	for i, row := range f.Gigs {
		g, err := row.toDomain()
		if err != nil {
			return Dataset{}, fmt.Errorf("parse dataset: gig at index %d: %w", i, err)
		}
		ds.Gigs = append(ds.Gigs, g)
	}
	for i, row := range f.Developers {
		if strings.TrimSpace(row.ID) == "" {
			return Dataset{}, fmt.Errorf("parse dataset: developer at index %d: id cannot be empty", i)
		}
		ds.Developers = append(ds.Developers, domain.Developer{
			ID:           row.ID,
			Name:         row.Name,
			Skills:       nonNil(row.Skills),
			Availability: row.Availability,
			Experience:   row.Experience,
			Bio:          row.Bio,
		})
	}

	for i, row := range f.Profiles {
		p, err := row.toDomain()
		if err != nil {
			return Dataset{}, fmt.Errorf("parse dataset: profile at index %d: %w", i, err)
		}
		ds.Profiles = append(ds.Profiles, p)
	}

	return ds, nil
}

func (r hackathonRow) toDomain() (domain.Hackathon, error) {
	if strings.TrimSpace(r.ID) == "" {
		return domain.Hackathon{}, fmt.Errorf("id cannot be empty")
	}

	start, err := domain.ParseDate(r.StartDate)
	if err != nil {
		return domain.Hackathon{}, fmt.Errorf("id=%s start_date: %w", r.ID, err)
	}
	end, err := domain.ParseDate(r.EndDate)
	if err != nil {
		return domain.Hackathon{}, fmt.Errorf("id=%s end_date: %w", r.ID, err)
	}
	deadline, err := domain.ParseDate(r.ApplicationDeadline)
	if err != nil {
		return domain.Hackathon{}, fmt.Errorf("id=%s application_deadline: %w", r.ID, err)
	}

	return domain.Hackathon{
		ID:                  r.ID,
		Name:                r.Name,
		LocationName:        r.Location,
		Location:            domain.GeoPoint{Lat: coord(r.Latitude), Lon: coord(r.Longitude)},
		Tags:                nonNil(r.Tags),
		StartDate:           start,
		EndDate:             end,
		ApplicationDeadline: deadline,
		MaxTeamSize:         r.MaxTeamSize,
	}, nil
}

func (r membershipRow) toDomain() (domain.Membership, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return domain.Membership{}, fmt.Errorf("id %q: %w", r.ID, err)
	}
	userID, err := uuid.Parse(r.UserID)
	if err != nil {
		return domain.Membership{}, fmt.Errorf("id=%s user_id: %w", r.ID, err)
	}
	joinedAt, err := time.Parse(time.RFC3339, r.JoinedAt)
	if err != nil {
		return domain.Membership{}, fmt.Errorf("id=%s joined_at: %w", r.ID, err)
	}

	return domain.Membership{
		ID:          id,
		UserID:      userID,
		HackathonID: r.HackathonID,
		JoinType:    domain.JoinType(r.JoinType),
		TeamName:    r.TeamName,
		TeamMembers: nonNil(r.TeamMembers),
		JoinedAt:    joinedAt,
	}, nil
}

func (r gigRow) toDomain() (domain.Gig, error) {
	if strings.TrimSpace(r.ID) == "" {
		return domain.Gig{}, fmt.Errorf("id cannot be empty")
	}
	deadline, err := domain.ParseDate(r.Deadline)
	if err != nil {
		return domain.Gig{}, fmt.Errorf("id=%s deadline: %w", r.ID, err)
	}

	return domain.Gig{
		ID:             r.ID,
		Title:          r.Title,
		Event:          r.Event,
		SkillsRequired: nonNil(r.SkillsRequired),
		Pay:            domain.PayRange{Min: r.PayRange.Min, Max: r.PayRange.Max},
		Remote:         r.Remote,
		Deadline:       deadline,
		Description:    r.Description,
	}, nil
}

func (r profileRow) toDomain() (domain.Profile, error) {
	userID, err := uuid.Parse(r.UserID)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("user_id %q: %w", r.UserID, err)
	}
	updated, err := time.Parse(time.RFC3339, r.UpdatedAt)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("user_id=%s updated_at: %w", r.UserID, err)
	}

	return domain.NewProfile(domain.Profile{
		UserID:    userID,
		Name:      r.Name,
		Role:      r.Role,
		Location:  r.Location,
		Skills:    nonNil(r.Skills),
		Available: r.Available,
		Bio:       r.Bio,
		UpdatedAt: updated,
	})
}

func coord(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
