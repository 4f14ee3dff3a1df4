package worker

import (
	"testing"
)

func TestClientLimiter_New(t *testing.T) {
	limiter := NewClientLimiter(10, 5)
	if limiter.defaultBurst != 5 {
		t.Errorf("expected burst 5, got %d", limiter.defaultBurst)
	}

	l2 := NewClientLimiter(10, -1)
	if l2.defaultBurst != 1 {
		t.Errorf("expected default burst 1 for negative input, got %d", l2.defaultBurst)
	}
}

func TestClientLimiter_ExhaustsPerClient(t *testing.T) {
	// 1 rps, burst 1: first request per client passes, second fails.
	limiter := NewClientLimiter(1, 1)

	if !limiter.Allow("10.0.0.1") {
		t.Error("first request should pass")
	}
	if limiter.Allow("10.0.0.1") {
		t.Error("second request should fail (exhausted tokens)")
	}

	// Other clients are unaffected.
	if !limiter.Allow("10.0.0.2") {
		t.Error("different client should pass")
	}
}

func TestClientLimiter_BurstAllowsSpikes(t *testing.T) {
	limiter := NewClientLimiter(1, 3)

	for i := 0; i < 3; i++ {
		if !limiter.Allow("10.0.0.1") {
			t.Errorf("request %d should pass within burst", i+1)
		}
	}
	if limiter.Allow("10.0.0.1") {
		t.Error("request beyond burst should fail")
	}
}
