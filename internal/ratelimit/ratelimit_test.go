package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func makeTestLimiter(t *testing.T, limit int) (*Limiter, *miniredis.Miniredis) {
	t.Helper()
	// spin up in-memory Redis
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run: %v", err)
	}
	t.Cleanup(mr.Close)

	l := NewLimiter(mr.Addr(), "", limit, time.Minute)
	t.Cleanup(func() { _ = l.Close() })
	return l, mr
}

func TestAllow_FixedWindow(t *testing.T) {
	l, mr := makeTestLimiter(t, 2)
	ctx := context.Background()

	for i := 1; i <= 2; i++ {
		ok, err := l.Allow(ctx, "user-1")
		if err != nil {
			t.Fatalf("Allow #%d: %v", i, err)
		}
		if !ok {
			t.Fatalf("Allow #%d = false; want true", i)
		}
	}
	ok, err := l.Allow(ctx, "user-1")
	if err != nil {
		t.Fatalf("Allow #3: %v", err)
	}
	if ok {
		t.Error("Allow #3 = true; want false")
	}

	// other keys have their own window
	if ok, _ := l.Allow(ctx, "user-2"); !ok {
		t.Error("Allow for another key = false; want true")
	}

	if ttl := mr.TTL(getLimitKey("user-1")); ttl <= 0 || ttl > time.Minute {
		t.Errorf("TTL = %v; want within the window", ttl)
	}

	// a new window starts once the key expires
	mr.FastForward(time.Minute + time.Second)
	if ok, _ := l.Allow(ctx, "user-1"); !ok {
		t.Error("Allow after window = false; want true")
	}
}

func TestAllow_RedisDown(t *testing.T) {
	l, mr := makeTestLimiter(t, 2)
	mr.Close()

	if _, err := l.Allow(context.Background(), "user-1"); err == nil {
		t.Error("expected an error when Redis is unreachable")
	}
}

func TestNoopAlwaysAllows(t *testing.T) {
	n := NewNoop()
	for i := 0; i < 100; i++ {
		if ok, err := n.Allow(context.Background(), "k"); !ok || err != nil {
			t.Fatalf("Allow = %v, %v; want true, nil", ok, err)
		}
	}
}
