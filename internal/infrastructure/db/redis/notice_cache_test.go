package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/examboard/portal-api/internal/core/domain"
)

func newTestCache(t *testing.T) (*NoticeCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewNoticeCache(client, time.Minute), mr
}

func TestNoticeCache_MissThenRoundTrip(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	got, err := cache.GetPublished(ctx)
	if err != nil {
		t.Fatalf("GetPublished returned error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected miss, got %+v", got)
	}

	notices := []domain.Notice{
		{ID: "n-1", Title: "Results out", Published: true},
		{ID: "n-2", Title: "Schedule change", Published: true},
	}
	if err := cache.SetPublished(ctx, notices); err != nil {
		t.Fatalf("SetPublished returned error: %v", err)
	}

	got, err = cache.GetPublished(ctx)
	if err != nil {
		t.Fatalf("GetPublished returned error: %v", err)
	}
	if len(got) != 2 || got[0].Title != "Results out" {
		t.Fatalf("unexpected cached notices: %+v", got)
	}
}

func TestNoticeCache_Invalidate(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	if err := cache.SetPublished(ctx, []domain.Notice{{ID: "n-1"}}); err != nil {
		t.Fatalf("SetPublished returned error: %v", err)
	}
	if err := cache.Invalidate(ctx); err != nil {
		t.Fatalf("Invalidate returned error: %v", err)
	}

	got, err := cache.GetPublished(ctx)
	if err != nil {
		t.Fatalf("GetPublished returned error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected miss after invalidation, got %+v", got)
	}
}

func TestNoticeCache_EntryExpires(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	if err := cache.SetPublished(ctx, []domain.Notice{{ID: "n-1"}}); err != nil {
		t.Fatalf("SetPublished returned error: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	got, err := cache.GetPublished(ctx)
	if err != nil {
		t.Fatalf("GetPublished returned error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected miss after TTL, got %+v", got)
	}
}
