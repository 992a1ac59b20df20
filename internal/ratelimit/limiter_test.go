package ratelimit

import (
	"testing"
	"time"
)

func TestLimiter_ReturnsSameInstancePerRepo(t *testing.T) {
	l := New(1, 1)

	if l.Get("acme/repo") != l.Get("acme/repo") {
		t.Fatalf("expected one limiter per repo")
	}
}

func TestLimiter_PrunesExpiredEntries(t *testing.T) {
	l := New(1, 1)
	l.ttl = 5 * time.Millisecond

	if l.Get("repo-a") == nil {
		t.Fatalf("expected limiter instance")
	}

	time.Sleep(10 * time.Millisecond)
	l.lastPruned = time.Now().Add(-2 * time.Minute)

	if l.Get("repo-b") == nil {
		t.Fatalf("expected limiter instance")
	}

	if _, ok := l.limiters["repo-a"]; ok {
		t.Fatalf("expected stale limiter to be pruned")
	}
}
