package nlp

import (
	"context"
	"sync"
	"time"

	"github.com/yatender-oktalk/OpenDeepSearch-sub000/pkg/types"
)

// Gate serializes outbound model calls across concurrent questions and
// enforces a minimum delay between consecutive calls, so the process as a
// whole respects provider rate limits. Callers that arrive while the gate
// is held block until their turn rather than failing fast.
//
// The gate is an explicit object passed by reference into each collaborator
// rather than ambient global state.
type Gate struct {
	mu       sync.Mutex
	minDelay time.Duration
	last     time.Time
	now      func() time.Time // test seam
	sleep    func(context.Context, time.Duration) error
}

// NewGate creates a gate with the given minimum inter-call delay.
func NewGate(minDelay time.Duration) *Gate {
	return &Gate{
		minDelay: minDelay,
		now:      time.Now,
		sleep:    sleepCtx,
	}
}

// Acquire blocks until the minimum delay since the previous outbound call
// has elapsed, or until ctx is cancelled. On success the gate's clock is
// advanced, so the next caller waits relative to this call.
func (g *Gate) Acquire(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.minDelay <= 0 {
		g.last = g.now()
		return nil
	}

	wait := g.minDelay - g.now().Sub(g.last)
	if wait > 0 {
		if err := g.sleep(ctx, wait); err != nil {
			return err
		}
	}
	g.last = g.now()
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// GatedClient wraps a Client so every Chat call first acquires the shared
// gate. Several clients may share one gate.
type GatedClient struct {
	client Client
	gate   *Gate
}

// NewGatedClient wraps client with the shared rate gate.
func NewGatedClient(client Client, gate *Gate) *GatedClient {
	return &GatedClient{client: client, gate: gate}
}

// Chat implements Client.
func (c *GatedClient) Chat(ctx context.Context, messages []types.Message) (*types.Response, error) {
	if err := c.gate.Acquire(ctx); err != nil {
		return nil, err
	}
	return c.client.Chat(ctx, messages)
}

// Close implements Client.
func (c *GatedClient) Close() error {
	return c.client.Close()
}
