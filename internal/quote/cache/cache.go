package cache

import (
	"context"
	"sync"
	"time"

	"github.com/sandeepanandm7-code/invest-ai/internal/quote"
)

// entry stores one symbol's raw quote with expiry.
type entry struct {
	expiresAt time.Time
	raw       quote.Raw
}

// Source caches raw quotes per symbol for a TTL, so a symbol repeated in a
// run (or across watchlists) hits the upstream only once. Failures are not
// cached; the next occurrence retries.
type Source struct {
	S        quote.Source
	TTL      time.Duration
	MaxItems int

	mu    sync.RWMutex
	items map[string]entry
}

func (c *Source) Name() string { return c.S.Name() }

func (c *Source) Fetch(ctx context.Context, symbol string) (quote.Raw, error) {
	if c.S == nil || c.TTL <= 0 {
		return c.S.Fetch(ctx, symbol)
	}

	now := time.Now()
	c.mu.RLock()
	e, ok := c.items[symbol]
	c.mu.RUnlock()
	if ok && now.Before(e.expiresAt) {
		return e.raw, nil
	}

	raw, err := c.S.Fetch(ctx, symbol)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.items == nil {
		c.items = make(map[string]entry)
	}
	c.items[symbol] = entry{expiresAt: now.Add(c.TTL), raw: raw}
	// best-effort cap: drop expired first, then arbitrary keys
	if c.MaxItems > 0 && len(c.items) > c.MaxItems {
		for k, v := range c.items {
			if now.After(v.expiresAt) {
				delete(c.items, k)
			}
			if len(c.items) <= c.MaxItems {
				break
			}
		}
		for k := range c.items {
			if len(c.items) <= c.MaxItems {
				break
			}
			delete(c.items, k)
		}
	}
	c.mu.Unlock()
	return raw, nil
}
