// Package session holds the page-session objects behind the postdesk views:
// the shared list board and the per-request post detail session.
package session

import (
	"context"
	"sync"
	"time"
)

// tickerFunc returns a tick channel and its stop function.
type tickerFunc func(time.Duration) (<-chan time.Time, func())

func realTicker(interval time.Duration) (<-chan time.Time, func()) {
	ticker := time.NewTicker(interval)
	return ticker.C, ticker.Stop
}

// Poller runs a function on a fixed interval. Starting a running poller is a
// no-op, so at most one timer exists per poller.
type Poller struct {
	interval  time.Duration
	fn        func(context.Context)
	newTicker tickerFunc

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewPoller builds a stopped poller.
func NewPoller(interval time.Duration, fn func(context.Context)) *Poller {
	return &Poller{interval: interval, fn: fn, newTicker: realTicker}
}

// Start begins ticking until ctx ends or Stop is called. It reports whether a
// new loop was started.
func (p *Poller) Start(ctx context.Context) bool {
	if p == nil || p.fn == nil || p.interval <= 0 {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return false
	}

	loopCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	ticks, stopTicker := p.newTicker(p.interval)
	p.cancel = cancel
	p.done = done

	go func() {
		defer close(done)
		defer stopTicker()
		for {
			select {
			case <-loopCtx.Done():
				return
			case <-ticks:
				p.fn(loopCtx)
			}
		}
	}()
	return true
}

// Stop cancels the loop and waits for it to exit.
func (p *Poller) Stop() {
	if p == nil {
		return
	}
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Running reports whether a loop is active.
func (p *Poller) Running() bool {
	if p == nil {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancel != nil
}
