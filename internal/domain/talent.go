package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrDeveloperNotFound = errors.New("developer not found")
	ErrInvalidInvitation = errors.New("invalid invitation")
)

type PayRange struct {
	Min int
	Max int
}

// A short freelance engagement posted around a hackathon.
type Gig struct {
	ID             string
	Title          string
	Event          string
	SkillsRequired []string
	Pay            PayRange
	Remote         bool
	Deadline       time.Time
	Description    string
}

// A developer profile that can be browsed and invited.
type Developer struct {
	ID           string
	Name         string
	Skills       []string
	Availability string // Now, Soon, Busy
	Experience   string // Junior, Mid, Senior
	Bio          string
}

// MaxInvitationMessage is the longest accepted invitation message, in runes.
const MaxInvitationMessage = 500

type Invitation struct {
	ID          uuid.UUID
	DeveloperID string
	SenderID    uuid.UUID
	Message     string
	CreatedAt   time.Time
}

// HasAnySkill reports whether skills shares at least one entry with want.
// An empty want matches everything.
func HasAnySkill(skills, want []string) bool {
	if len(want) == 0 {
		return true
	}
	for _, w := range want {
		for _, s := range skills {
			if s == w {
				return true
			}
		}
	}
	return false
}
