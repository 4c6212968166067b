package ratelimit

import (
	"sync"
	"time"
)

// DefaultInterval is the minimum spacing between catalog requests.
// MusicBrainz enforces one request per second per client; 1.1s keeps a
// safety margin.
const DefaultInterval = 1100 * time.Millisecond

// Pacer enforces a minimum interval between dispatches. The zero value is
// not usable; construct with NewPacer.
type Pacer struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
	now      func() time.Time
	sleep    func(time.Duration)
}

// NewPacer creates a pacer with the given minimum interval. A non-positive
// interval falls back to DefaultInterval.
func NewPacer(interval time.Duration) *Pacer {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Pacer{
		interval: interval,
		now:      time.Now,
		sleep:    time.Sleep,
	}
}

// WithClock replaces the pacer's time source and sleep function. Test use.
func (p *Pacer) WithClock(now func() time.Time, sleep func(time.Duration)) *Pacer {
	p.mu.Lock()
	defer p.mu.Unlock()
	if now != nil {
		p.now = now
	}
	if sleep != nil {
		p.sleep = sleep
	}
	return p
}

// Wait blocks until the configured interval has elapsed since the previous
// dispatch, then records the new dispatch time. The timestamp is taken at
// dispatch, not completion, so slow responses do not widen the spacing.
func (p *Pacer) Wait() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.last.IsZero() {
		if elapsed := p.now().Sub(p.last); elapsed < p.interval {
			p.sleep(p.interval - elapsed)
		}
	}
	p.last = p.now()
}

// Interval returns the configured minimum spacing.
func (p *Pacer) Interval() time.Duration {
	return p.interval
}
