package dto

import (
	"time"

	"hackswipe-service/internal/domain"
)

type PayRangeResponse struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type GigResponse struct {
	ID             string           `json:"id"`
	Title          string           `json:"title"`
	Event          string           `json:"event"`
	SkillsRequired []string         `json:"skills_required"`
	PayRange       PayRangeResponse `json:"pay_range"`
	Remote         bool             `json:"remote"`
	Deadline       string           `json:"deadline"`
	Description    string           `json:"description"`
}

type ListGigsResponse struct {
	Gigs   []GigResponse `json:"gigs"`
	Skills []string      `json:"skills"`
}

type DeveloperResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Skills       []string `json:"skills"`
	Availability string   `json:"availability"`
	Experience   string   `json:"experience"`
	Bio          string   `json:"bio"`
}

type ListDevelopersResponse struct {
	Developers []DeveloperResponse `json:"developers"`
}

type InvitationRequest struct {
	SenderID string `json:"sender_id"`
	Message  string `json:"message"`
}

type InvitationResponse struct {
	ID          string    `json:"id"`
	DeveloperID string    `json:"developer_id"`
	SenderID    string    `json:"sender_id"`
	Message     string    `json:"message"`
	CreatedAt   time.Time `json:"created_at"`
}

func Gig(g domain.Gig) GigResponse {
	return GigResponse{
		ID:             g.ID,
		Title:          g.Title,
		Event:          g.Event,
		SkillsRequired: g.SkillsRequired,
		PayRange:       PayRangeResponse{Min: g.Pay.Min, Max: g.Pay.Max},
		Remote:         g.Remote,
		Deadline:       domain.FormatDate(g.Deadline),
		Description:    g.Description,
	}
}

func Developer(d domain.Developer) DeveloperResponse {
	return DeveloperResponse{
		ID:           d.ID,
		Name:         d.Name,
		Skills:       d.Skills,
		Availability: d.Availability,
		Experience:   d.Experience,
		Bio:          d.Bio,
	}
}

func Invitation(inv domain.Invitation) InvitationResponse {
	return InvitationResponse{
		ID:          inv.ID.String(),
		DeveloperID: inv.DeveloperID,
		SenderID:    inv.SenderID.String(),
		Message:     inv.Message,
		CreatedAt:   inv.CreatedAt,
	}
}
