package storyframe

import (
	"sync"
	"time"
)

// RateLimiter bounds contact-form submissions per client IP over a sliding
// window.
type RateLimiter struct {
	mu     sync.Mutex
	hits   map[string][]time.Time
	max    int
	window time.Duration
	now    func() time.Time
	stop   chan struct{}
	once   sync.Once
}

// NewRateLimiter allows max submissions per window for each IP. A
// background sweep drops idle IPs until Stop is called.
func NewRateLimiter(max int, window time.Duration) *RateLimiter {
	l := &RateLimiter{
		hits:   make(map[string][]time.Time),
		max:    max,
		window: window,
		now:    time.Now,
		stop:   make(chan struct{}),
	}
	go l.cleanup()
	return l
}

func (l *RateLimiter) cleanup() {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()
	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
			l.sweep()
		}
	}
}

func (l *RateLimiter) sweep() {
	cutoff := l.now().Add(-l.window)
	l.mu.Lock()
	defer l.mu.Unlock()
	for ip, hits := range l.hits {
		kept := prune(hits, cutoff)
		if len(kept) == 0 {
			delete(l.hits, ip)
		} else {
			l.hits[ip] = kept
		}
	}
}

func prune(hits []time.Time, cutoff time.Time) []time.Time {
	kept := hits[:0]
	for _, t := range hits {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}

// Allow reports whether ip is under the limit and, if so, records the
// attempt.
func (l *RateLimiter) Allow(ip string) bool {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()
	kept := prune(l.hits[ip], now.Add(-l.window))
	if len(kept) >= l.max {
		l.hits[ip] = kept
		return false
	}
	l.hits[ip] = append(kept, now)
	return true
}

// Stop ends the background sweep. It is safe to call more than once.
func (l *RateLimiter) Stop() {
	l.once.Do(func() { close(l.stop) })
}
