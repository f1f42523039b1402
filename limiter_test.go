package storyframe

import (
	"testing"
	"time"
)

func TestRateLimiterBlocksAfterMax(t *testing.T) {
	limiter := NewRateLimiter(2, time.Minute)
	defer limiter.Stop()
	ip := "203.0.113.10"

	if !limiter.Allow(ip) {
		t.Fatalf("expected first attempt to be allowed")
	}
	if !limiter.Allow(ip) {
		t.Fatalf("expected second attempt to be allowed")
	}
	if limiter.Allow(ip) {
		t.Fatalf("expected third attempt to be blocked")
	}
}

func TestRateLimiterResetsAfterWindow(t *testing.T) {
	limiter := NewRateLimiter(1, time.Minute)
	defer limiter.Stop()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }
	ip := "203.0.113.20"

	if !limiter.Allow(ip) {
		t.Fatalf("expected first attempt to be allowed")
	}
	if limiter.Allow(ip) {
		t.Fatalf("expected second attempt to be blocked")
	}

	now = now.Add(61 * time.Second)
	if !limiter.Allow(ip) {
		t.Fatalf("expected attempt after window to be allowed")
	}
}

func TestRateLimiterIsPerIP(t *testing.T) {
	limiter := NewRateLimiter(1, time.Minute)
	defer limiter.Stop()

	if !limiter.Allow("203.0.113.1") {
		t.Fatalf("expected first IP to be allowed")
	}
	if !limiter.Allow("203.0.113.2") {
		t.Fatalf("expected second IP to be allowed")
	}
}

func TestRateLimiterSweepDropsIdleIPs(t *testing.T) {
	limiter := NewRateLimiter(1, time.Minute)
	limiter.Stop()
	limiter.Stop()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	limiter.Allow("203.0.113.5")
	now = now.Add(2 * time.Minute)
	limiter.sweep()

	limiter.mu.Lock()
	n := len(limiter.hits)
	limiter.mu.Unlock()
	if n != 0 {
		t.Fatalf("expected idle IP to be swept, have %d entries", n)
	}
}
