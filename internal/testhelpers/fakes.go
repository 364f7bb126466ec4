package testhelpers

import (
	"context"
	"sync"

	"github.com/poofware/pledge-service/internal/dtos"
	"github.com/poofware/pledge-service/internal/services"
)

// FakeMailer records every message; Err makes sends fail.
type FakeMailer struct {
	mu   sync.Mutex
	Sent []services.VerificationEmail
	Err  error
}

func (m *FakeMailer) SendVerification(_ context.Context, msg services.VerificationEmail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Sent = append(m.Sent, msg)
	return nil
}

func (m *FakeMailer) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Sent)
}

func (m *FakeMailer) Last() services.VerificationEmail {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Sent) == 0 {
		return services.VerificationEmail{}
	}
	return m.Sent[len(m.Sent)-1]
}

type TrackedEvent struct {
	DistinctID string
	Event      string
	Props      map[string]string
}

// FakeTracker records events. Err makes Track fail; Panic makes it panic.
type FakeTracker struct {
	mu     sync.Mutex
	Events []TrackedEvent
	Err    error
	Panic  bool
}

func (t *FakeTracker) Track(_ context.Context, distinctID, event string, props map[string]string) error {
	if t.Panic {
		panic("tracker exploded")
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.Err != nil {
		return t.Err
	}
	t.Events = append(t.Events, TrackedEvent{DistinctID: distinctID, Event: event, Props: props})
	return nil
}

// Names lists recorded event names in order.
func (t *FakeTracker) Names() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, 0, len(t.Events))
	for _, e := range t.Events {
		out = append(out, e.Event)
	}
	return out
}

// FakeStatsCache counts invalidations and stores one snapshot with no TTL.
type FakeStatsCache struct {
	mu            sync.Mutex
	stats         *dtos.Stats
	gen           uint64
	Invalidations int
}

func (c *FakeStatsCache) Get(context.Context) (*dtos.Stats, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stats == nil {
		return nil, false
	}
	s := *c.stats
	return &s, true
}

func (c *FakeStatsCache) Generation(context.Context) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen
}

func (c *FakeStatsCache) Set(_ context.Context, stats *dtos.Stats, gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return false
	}
	s := *stats
	c.stats = &s
	return true
}

func (c *FakeStatsCache) Invalidate(context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats = nil
	c.gen++
	c.Invalidations++
}

func (c *FakeStatsCache) Close() error { return nil }
