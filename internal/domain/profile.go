package domain

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrInvalidProfile  = errors.New("invalid profile")
)

const (
	MaxProfileName = 100
	MaxProfileBio  = 1000
	MaxSkillLength = 50
)

// Profile is a user's public developer card.
type Profile struct {
	UserID    uuid.UUID
	Name      string
	Role      string
	Location  string
	Skills    []string
	Available bool
	Bio       string
	UpdatedAt time.Time
}

// NewProfile trims the text fields and skills of p and validates them.
// Blank and repeated skills are dropped, keeping first-seen order.
func NewProfile(p Profile) (Profile, error) {
	p.Name = strings.TrimSpace(p.Name)
	p.Role = strings.TrimSpace(p.Role)
	p.Location = strings.TrimSpace(p.Location)
	p.Bio = strings.TrimSpace(p.Bio)

	if p.UserID == uuid.Nil {
		return Profile{}, fmt.Errorf("%w: user id is required", ErrInvalidProfile)
	}
	if p.Name == "" {
		return Profile{}, fmt.Errorf("%w: name cannot be empty", ErrInvalidProfile)
	}
	if utf8.RuneCountInString(p.Name) > MaxProfileName {
		return Profile{}, fmt.Errorf("%w: name exceeds %d characters", ErrInvalidProfile, MaxProfileName)
	}
	if utf8.RuneCountInString(p.Bio) > MaxProfileBio {
		return Profile{}, fmt.Errorf("%w: bio exceeds %d characters", ErrInvalidProfile, MaxProfileBio)
	}

	skills := make([]string, 0, len(p.Skills))
	for _, raw := range p.Skills {
		s := strings.TrimSpace(raw)
		if s == "" || slices.Contains(skills, s) {
			continue
		}
		if err := validateSkill(s); err != nil {
			return Profile{}, err
		}
		skills = append(skills, s)
	}
	p.Skills = skills

	return p, nil
}

// AddSkill appends skill unless it is already listed. Matching is exact
// after trimming.
func (p *Profile) AddSkill(skill string) (bool, error) {
	s := strings.TrimSpace(skill)
	if s == "" {
		return false, fmt.Errorf("%w: skill cannot be empty", ErrInvalidProfile)
	}
	if err := validateSkill(s); err != nil {
		return false, err
	}
	if slices.Contains(p.Skills, s) {
		return false, nil
	}
	p.Skills = append(p.Skills, s)
	return true, nil
}

// RemoveSkill drops skill and reports whether it was listed.
func (p *Profile) RemoveSkill(skill string) bool {
	s := strings.TrimSpace(skill)
	n := len(p.Skills)
	p.Skills = slices.DeleteFunc(p.Skills, func(x string) bool { return x == s })
	return len(p.Skills) != n
}

func validateSkill(s string) error {
	if utf8.RuneCountInString(s) > MaxSkillLength {
		return fmt.Errorf("%w: skill %q exceeds %d characters", ErrInvalidProfile, s, MaxSkillLength)
	}
	return nil
}
