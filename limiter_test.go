package lonja

import (
	"testing"
	"time"
)

func TestWriteLimiterBlocksAfterMax(t *testing.T) {
	limiter := NewWriteLimiter(2, 200*time.Millisecond)
	ip := "203.0.113.10"

	if !limiter.Allow(ip) {
		t.Fatalf("expected first request to be allowed")
	}
	if !limiter.Allow(ip) {
		t.Fatalf("expected second request to be allowed")
	}
	if limiter.Allow(ip) {
		t.Fatalf("expected third request to be blocked")
	}
}

func TestWriteLimiterResetsAfterWindow(t *testing.T) {
	limiter := NewWriteLimiter(1, 150*time.Millisecond)
	ip := "203.0.113.20"

	if !limiter.Allow(ip) {
		t.Fatalf("expected first request to be allowed")
	}
	if limiter.Allow(ip) {
		t.Fatalf("expected second request to be blocked")
	}

	time.Sleep(200 * time.Millisecond)
	if !limiter.Allow(ip) {
		t.Fatalf("expected request after window to be allowed")
	}
}

func TestWriteLimiterIsPerIP(t *testing.T) {
	limiter := NewWriteLimiter(1, 200*time.Millisecond)

	if !limiter.Allow("203.0.113.30") {
		t.Fatalf("expected first ip to be allowed")
	}
	if !limiter.Allow("203.0.113.31") {
		t.Fatalf("expected second ip to be allowed independently")
	}
	if limiter.Allow("203.0.113.30") {
		t.Fatalf("expected first ip to be blocked after max")
	}
}
