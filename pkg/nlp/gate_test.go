package nlp

import (
	"context"
	"testing"
	"time"
)

func TestGateFirstCallDoesNotWait(t *testing.T) {
	gate := NewGate(time.Second)

	var slept time.Duration
	gate.sleep = func(ctx context.Context, d time.Duration) error {
		slept += d
		return nil
	}

	if err := gate.Acquire(context.Background()); err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if slept != 0 {
		t.Errorf("first acquire slept %v, want 0", slept)
	}
}

func TestGateEnforcesMinDelay(t *testing.T) {
	gate := NewGate(200 * time.Millisecond)

	now := time.Unix(1000, 0)
	gate.now = func() time.Time { return now }

	var slept time.Duration
	gate.sleep = func(ctx context.Context, d time.Duration) error {
		slept += d
		now = now.Add(d)
		return nil
	}

	// First call sets the clock.
	if err := gate.Acquire(context.Background()); err != nil {
		t.Fatal(err)
	}
	// 50ms later, the second call must wait the remaining 150ms.
	now = now.Add(50 * time.Millisecond)
	if err := gate.Acquire(context.Background()); err != nil {
		t.Fatal(err)
	}

	if slept != 150*time.Millisecond {
		t.Errorf("slept %v, want 150ms", slept)
	}
}

func TestGateZeroDelayNeverBlocks(t *testing.T) {
	gate := NewGate(0)
	gate.sleep = func(ctx context.Context, d time.Duration) error {
		t.Errorf("unexpected sleep of %v", d)
		return nil
	}

	for i := 0; i < 3; i++ {
		if err := gate.Acquire(context.Background()); err != nil {
			t.Fatal(err)
		}
	}
}

func TestGateHonorsContext(t *testing.T) {
	gate := NewGate(time.Hour)
	now := time.Unix(1000, 0)
	gate.now = func() time.Time { return now }

	if err := gate.Acquire(context.Background()); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := gate.Acquire(ctx); err == nil {
		t.Error("expected context error from blocked acquire")
	}
}
