package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_Allow(t *testing.T) {
	l := NewLimiter(1, 2)

	// Burst of 2 allowed immediately, third denied
	if !l.Allow("http://localhost:8090") {
		t.Error("expected first request allowed")
	}
	if !l.Allow("http://localhost:8090") {
		t.Error("expected second request allowed")
	}
	if l.Allow("http://localhost:8090") {
		t.Error("expected third request denied")
	}

	// A different host has its own bucket
	if !l.Allow("http://other:9000") {
		t.Error("expected fresh bucket for new host")
	}
}

func TestLimiter_Wait(t *testing.T) {
	l := NewLimiter(100, 1)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	for i := 0; i < 3; i++ {
		if err := l.Wait(ctx, "http://localhost:8090"); err != nil {
			t.Fatalf("request %d: %v", i, err)
		}
	}
}

func TestLimiter_SetHostRate(t *testing.T) {
	l := NewLimiter(1, 1)
	l.SetHostRate("fast:1234", 1000, 100)

	for i := 0; i < 50; i++ {
		if !l.Allow("http://fast:1234") {
			t.Fatalf("expected overridden host to allow request %d", i)
		}
	}
}

func TestLimiter_DefaultBurst(t *testing.T) {
	l := NewLimiter(1, 0)
	if l.defaultBurst != 5 {
		t.Errorf("expected default burst 5, got %d", l.defaultBurst)
	}
}

func TestExtractHost(t *testing.T) {
	host, err := extractHost("http://localhost:8090/parse")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if host != "localhost:8090" {
		t.Errorf("expected localhost:8090, got %s", host)
	}

	// Non-URL strings fall back to themselves
	host, err = extractHost("plain-name")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if host != "plain-name" {
		t.Errorf("expected passthrough, got %s", host)
	}
}
