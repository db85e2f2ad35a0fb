package supabase

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"hackswipe-service/internal/domain"
)

// Rows come from user-edited tables, so numeric columns may arrive as JSON
// numbers or strings and optional columns may be null or absent.

func hackathonFromRow(r gjson.Result) (domain.Hackathon, error) {
	h := domain.Hackathon{
		ID:           idString(r.Get("id")),
		Name:         r.Get("name").String(),
		LocationName: r.Get("location").String(),
		Location: domain.GeoPoint{
			Lat: number(r.Get("latitude")),
			Lon: number(r.Get("longitude")),
		},
		Tags:        stringList(r.Get("tags")),
		MaxTeamSize: int(r.Get("max_team_size").Int()),
	}
	if h.ID == "" {
		return domain.Hackathon{}, fmt.Errorf("hackathon row without id: %s", r.Raw)
	}

	var err error
	if h.StartDate, err = domain.ParseDate(r.Get("start_date").String()); err != nil {
		return domain.Hackathon{}, fmt.Errorf("hackathon id=%s start_date: %w", h.ID, err)
	}
	if h.EndDate, err = domain.ParseDate(r.Get("end_date").String()); err != nil {
		return domain.Hackathon{}, fmt.Errorf("hackathon id=%s end_date: %w", h.ID, err)
	}
	if h.ApplicationDeadline, err = domain.ParseDate(r.Get("application_deadline").String()); err != nil {
		return domain.Hackathon{}, fmt.Errorf("hackathon id=%s application_deadline: %w", h.ID, err)
	}

	return h, nil
}

func gigFromRow(r gjson.Result) (domain.Gig, error) {
	g := domain.Gig{
		ID:             idString(r.Get("id")),
		Title:          r.Get("title").String(),
		Event:          r.Get("event").String(),
		SkillsRequired: stringList(r.Get("skills_required")),
		Pay: domain.PayRange{
			Min: int(r.Get("pay_range.min").Int()),
			Max: int(r.Get("pay_range.max").Int()),
		},
		Remote:      r.Get("remote").Bool(),
		Description: r.Get("description").String(),
	}
	if g.ID == "" {
		return domain.Gig{}, fmt.Errorf("gig row without id: %s", r.Raw)
	}

	var err error
	if g.Deadline, err = domain.ParseDate(r.Get("deadline").String()); err != nil {
		return domain.Gig{}, fmt.Errorf("gig id=%s deadline: %w", g.ID, err)
	}
	return g, nil
}

func developerFromRow(r gjson.Result) (domain.Developer, error) {
	d := domain.Developer{
		ID:           idString(r.Get("id")),
		Name:         r.Get("name").String(),
		Skills:       stringList(r.Get("skills")),
		Availability: r.Get("availability").String(),
		Experience:   r.Get("experience").String(),
		Bio:          r.Get("bio").String(),
	}
	if d.ID == "" {
		return domain.Developer{}, fmt.Errorf("developer row without id: %s", r.Raw)
	}
	return d, nil
}

// number returns NaN for null, absent or unparsable values so that the
// coordinate fails validation downstream.
func number(v gjson.Result) float64 {
	switch v.Type {
	case gjson.Number:
		return v.Num
	case gjson.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

// idString renders numeric ids without a fractional part.
func idString(v gjson.Result) string {
	if v.Type == gjson.Number {
		return v.Raw
	}
	return v.String()
}

func stringList(v gjson.Result) []string {
	out := []string{}
	for _, item := range v.Array() {
		if s := item.String(); s != "" {
			out = append(out, s)
		}
	}
	return out
}
