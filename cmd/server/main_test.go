package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hackswipe-service/internal/adapters/cache"
	"hackswipe-service/internal/adapters/fallback"
	"hackswipe-service/internal/domain"
)

// flakyHackathons fails every read while down is set.
type flakyHackathons struct {
	down  bool
	calls int
}

func (f *flakyHackathons) ListHackathons(ctx context.Context) ([]domain.Hackathon, error) {
	f.calls++
	if f.down {
		return nil, errors.New("connection refused")
	}
	return []domain.Hackathon{{ID: "live", Name: "Live Hack"}}, nil
}

func (f *flakyHackathons) GetHackathon(ctx context.Context, id string) (domain.Hackathon, error) {
	f.calls++
	if f.down {
		return domain.Hackathon{}, errors.New("connection refused")
	}
	if id != "live" {
		return domain.Hackathon{}, domain.ErrHackathonNotFound
	}
	return domain.Hackathon{ID: "live", Name: "Live Hack"}, nil
}

func newReads(t *testing.T, primary *flakyHackathons) (*miniredis.Miniredis, *cache.RedisCache, func(context.Context) []string) {
	t.Helper()

	mr := miniredis.RunT(t)
	rc := cache.NewRedisCache(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = rc.Close() })

	static, err := fallback.NewDefaultStatic()
	require.NoError(t, err)

	reads := hackathonReads(primary, static, rc, time.Minute)
	list := func(ctx context.Context) []string {
		hs, err := reads.ListHackathons(ctx)
		require.NoError(t, err)
		ids := make([]string, 0, len(hs))
		for _, h := range hs {
			ids = append(ids, h.ID)
		}
		return ids
	}
	return mr, rc, list
}

func TestHackathonReadsDoNotCacheFallbackData(t *testing.T) {
	ctx := context.Background()
	primary := &flakyHackathons{down: true}
	_, _, list := newReads(t, primary)

	ids := list(ctx)
	require.NotEmpty(t, ids)
	assert.Equal(t, "1", ids[0], "static data served while the primary is down")

	primary.down = false
	assert.Equal(t, []string{"live"}, list(ctx))
}

func TestHackathonReadsCachePrimaryData(t *testing.T) {
	ctx := context.Background()
	primary := &flakyHackathons{}
	mr, _, list := newReads(t, primary)

	assert.Equal(t, []string{"live"}, list(ctx))
	assert.Equal(t, []string{"live"}, list(ctx))
	assert.Equal(t, 1, primary.calls)

	mr.FastForward(2 * time.Minute)
	assert.Equal(t, []string{"live"}, list(ctx))
	assert.Equal(t, 2, primary.calls)
}

func TestHackathonReadsWithoutCache(t *testing.T) {
	static, err := fallback.NewDefaultStatic()
	require.NoError(t, err)

	primary := &flakyHackathons{}
	reads := hackathonReads(primary, static, nil, time.Minute)

	h, err := reads.GetHackathon(context.Background(), "live")
	require.NoError(t, err)
	assert.Equal(t, "Live Hack", h.Name)

	_, err = reads.GetHackathon(context.Background(), "1")
	assert.True(t, errors.Is(err, domain.ErrHackathonNotFound), "err = %v", err)
}
