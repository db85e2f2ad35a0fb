package supabase

import (
	"context"
	"fmt"
	"net/url"
	"regexp"

	"github.com/tidwall/gjson"

	"hackswipe-service/internal/domain"
	"hackswipe-service/internal/platform/obs"
)

// Ids are interpolated into PostgREST filters, where "," "(" ")" and "."
// are operators.
var filterID = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

func (c *Client) ListHackathons(ctx context.Context) (_ []domain.Hackathon, err error) {
	defer obs.Time(ctx, "supabase.ListHackathons")(&err)

	body, err := c.selectRows(ctx, "hackathons", url.Values{
		"select": {"*"},
		"order":  {"id.asc"},
	})
	if err != nil {
		return nil, fmt.Errorf("list hackathons: %w", err)
	}

	return decodeRows(body, hackathonFromRow)
}

func (c *Client) GetHackathon(ctx context.Context, id string) (_ domain.Hackathon, err error) {
	defer obs.Time(ctx, "supabase.GetHackathon")(&err)

	if !filterID.MatchString(id) {
		return domain.Hackathon{}, fmt.Errorf("get hackathon id=%q: unsupported id: %w", id, domain.ErrHackathonNotFound)
	}

	body, err := c.selectRows(ctx, "hackathons", url.Values{
		"select": {"*"},
		"id":     {"eq." + id},
		"limit":  {"1"},
	})
	if err != nil {
		return domain.Hackathon{}, fmt.Errorf("get hackathon id=%s: %w", id, err)
	}

	rows, err := decodeRows(body, hackathonFromRow)
	if err != nil {
		return domain.Hackathon{}, fmt.Errorf("get hackathon id=%s: %w", id, err)
	}
	if len(rows) == 0 {
		return domain.Hackathon{}, fmt.Errorf("get hackathon id=%s: %w", id, domain.ErrHackathonNotFound)
	}
	return rows[0], nil
}

func (c *Client) ListGigs(ctx context.Context) (_ []domain.Gig, err error) {
	defer obs.Time(ctx, "supabase.ListGigs")(&err)

	body, err := c.selectRows(ctx, "freelance_gigs", url.Values{
		"select": {"*"},
		"order":  {"id.asc"},
	})
	if err != nil {
		return nil, fmt.Errorf("list gigs: %w", err)
	}

	return decodeRows(body, gigFromRow)
}

func (c *Client) ListDevelopers(ctx context.Context) (_ []domain.Developer, err error) {
	defer obs.Time(ctx, "supabase.ListDevelopers")(&err)

	body, err := c.selectRows(ctx, "developers", url.Values{
		"select": {"*"},
		"order":  {"id.asc"},
	})
	if err != nil {
		return nil, fmt.Errorf("list developers: %w", err)
	}

	return decodeRows(body, developerFromRow)
}

func (c *Client) GetDeveloper(ctx context.Context, id string) (_ domain.Developer, err error) {
	defer obs.Time(ctx, "supabase.GetDeveloper")(&err)

	if !filterID.MatchString(id) {
		return domain.Developer{}, fmt.Errorf("get developer id=%q: unsupported id: %w", id, domain.ErrDeveloperNotFound)
	}

	body, err := c.selectRows(ctx, "developers", url.Values{
		"select": {"*"},
		"id":     {"eq." + id},
		"limit":  {"1"},
	})
	if err != nil {
		return domain.Developer{}, fmt.Errorf("get developer id=%s: %w", id, err)
	}

	rows, err := decodeRows(body, developerFromRow)
	if err != nil {
		return domain.Developer{}, fmt.Errorf("get developer id=%s: %w", id, err)
	}
	if len(rows) == 0 {
		return domain.Developer{}, fmt.Errorf("get developer id=%s: %w", id, domain.ErrDeveloperNotFound)
	}
	return rows[0], nil
}

func decodeRows[T any](body []byte, convert func(gjson.Result) (T, error)) ([]T, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("decode rows: invalid json")
	}
	doc := gjson.ParseBytes(body)
	if !doc.IsArray() {
		return nil, fmt.Errorf("decode rows: expected array, got %s", doc.Type)
	}

	out := make([]T, 0, len(doc.Array()))
	for i, row := range doc.Array() {
		v, err := convert(row)
		if err != nil {
			return nil, fmt.Errorf("decode rows: row %d: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}
