package services

import (
	"context"
	"fmt"
	"slices"
	"time"

	"hackswipe-service/internal/domain"
	"hackswipe-service/internal/geo"
	"hackswipe-service/internal/platform/obs"
	"hackswipe-service/internal/ports"
)

type UserEvents struct {
	Upcoming []domain.UserEvent
	Past     []domain.UserEvent
}

// ListUserEvents splits the user's hackathons into upcoming (not yet ended
// at now) and past. Upcoming events are ordered by start date, soonest
// first; past events by end date, most recent first.
func ListUserEvents(
	ctx context.Context,
	userID string,
	now time.Time,
	memberships ports.MembershipRepository,
) (_ UserEvents, err error) {
	defer obs.Time(ctx, "services.ListUserEvents")(&err)

	id, err := parseUserID(userID)
	if err != nil {
		return UserEvents{}, fmt.Errorf("list user events: %w", err)
	}

	events, err := memberships.ListUserEvents(ctx, id)
	if err != nil {
		return UserEvents{}, fmt.Errorf("list user events: %w", err)
	}

	out := UserEvents{Upcoming: []domain.UserEvent{}, Past: []domain.UserEvent{}}
	for _, ev := range events {
		if ev.Hackathon.Ended(now) {
			out.Past = append(out.Past, ev)
		} else {
			out.Upcoming = append(out.Upcoming, ev)
		}
	}

	slices.SortStableFunc(out.Upcoming, func(a, b domain.UserEvent) int {
		if c := a.Hackathon.StartDate.Compare(b.Hackathon.StartDate); c != 0 {
			return c
		}
		return geo.CompareIDs(a.Hackathon.ID, b.Hackathon.ID)
	})
	slices.SortStableFunc(out.Past, func(a, b domain.UserEvent) int {
		if c := b.Hackathon.EndDate.Compare(a.Hackathon.EndDate); c != 0 {
			return c
		}
		return geo.CompareIDs(a.Hackathon.ID, b.Hackathon.ID)
	})

	return out, nil
}
