package dto

import (
	"time"

	"hackswipe-service/internal/domain"
)

type ProfileRequest struct {
	Name      string   `json:"name"`
	Role      string   `json:"role"`
	Location  string   `json:"location"`
	Skills    []string `json:"skills"`
	Available bool     `json:"available"`
	Bio       string   `json:"bio"`
}

type SkillRequest struct {
	Skill string `json:"skill"`
}

type ProfileResponse struct {
	UserID           string    `json:"user_id"`
	Name             string    `json:"name"`
	Role             string    `json:"role"`
	Location         string    `json:"location"`
	Skills           []string  `json:"skills"`
	Available        bool      `json:"available"`
	Bio              string    `json:"bio"`
	HackathonsJoined int       `json:"hackathons_joined"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func Profile(p domain.Profile, hackathonsJoined int) ProfileResponse {
	skills := p.Skills
	if skills == nil {
		skills = []string{}
	}
	return ProfileResponse{
		UserID:           p.UserID.String(),
		Name:             p.Name,
		Role:             p.Role,
		Location:         p.Location,
		Skills:           skills,
		Available:        p.Available,
		Bio:              p.Bio,
		HackathonsJoined: hackathonsJoined,
		UpdatedAt:        p.UpdatedAt,
	}
}
