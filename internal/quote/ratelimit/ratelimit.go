package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/sandeepanandm7-code/invest-ai/internal/quote"
)

// MinInterval wraps a Source and enforces a minimum time between upstream
// requests. This is the self-imposed pacing toward Yahoo: concurrent callers
// queue up behind the gate, or return early if the context is canceled.
type MinInterval struct {
	S        quote.Source
	Interval time.Duration
	mu       sync.Mutex
	last     time.Time
}

func (m *MinInterval) Name() string { return m.S.Name() }

func (m *MinInterval) Fetch(ctx context.Context, symbol string) (quote.Raw, error) {
	if m.Interval > 0 {
		m.mu.Lock()
		wait := time.Until(m.last.Add(m.Interval))
		// Reserve the slot before sleeping so concurrent callers space out.
		if wait > 0 {
			m.last = m.last.Add(m.Interval)
		} else {
			m.last = time.Now()
		}
		m.mu.Unlock()
		if wait > 0 {
			t := time.NewTimer(wait)
			defer t.Stop()
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-t.C:
			}
		}
	}
	return m.S.Fetch(ctx, symbol)
}
