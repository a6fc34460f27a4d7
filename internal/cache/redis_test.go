package cache

import (
	"strings"
	"testing"
	"time"
)

func TestRateLimiter_WindowKey(t *testing.T) {
	l := &RateLimiter{limit: 3, window: time.Minute}

	t0 := time.Unix(120, 0)
	k0 := l.windowKey("orders:10.0.0.1", t0)
	if !strings.HasPrefix(k0, "ratelimit:orders:10.0.0.1:") {
		t.Fatalf("unexpected key %q", k0)
	}
	if k1 := l.windowKey("orders:10.0.0.1", t0.Add(59*time.Second)); k1 != k0 {
		t.Fatalf("same window must share a key: %q vs %q", k0, k1)
	}
	if k2 := l.windowKey("orders:10.0.0.1", t0.Add(time.Minute)); k2 == k0 {
		t.Fatalf("next window must use a new key")
	}
}

func TestRateLimiter_Disabled(t *testing.T) {
	l := NewRateLimiter(nil, 0)
	ok, err := l.Allow(t.Context(), "x")
	if err != nil || !ok {
		t.Fatalf("zero limit must allow: %v %v", ok, err)
	}
}
